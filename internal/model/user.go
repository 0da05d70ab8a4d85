package model

// Well-known role values. Role is stored as free-form text; these are only
// the values authorization checks compare against.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered user in the database.
type User struct {
	ID             int64
	Username       string
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	Role           string
	IsActive       bool
}

// Principal is the identity reconstructed from a bearer token for the
// lifetime of a single request.
type Principal struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"min=3,max=50"`
	Email     string `json:"email" validate:"min=3,max=50,simple_email"`
	FirstName string `json:"first_name" validate:"min=3,max=50"`
	LastName  string `json:"last_name" validate:"min=3,max=50"`
	Password  string `json:"password" validate:"min=3,max=50"`
	Role      string `json:"role" validate:"min=3,max=50"`
}

// LoginRequest represents a username/password login, sent either as a form
// or as JSON.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by both token endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse represents user data safe for API responses (no hash).
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// ToResponse strips the password hash from u.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
	}
}
