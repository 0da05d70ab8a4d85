package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/todoapp/todo-api/internal/model"
)

var (
	ErrMissingSecret = errors.New("token signing secret is empty")

	// ErrInvalidToken is the single failure callers act on. The reasons below
	// wrap it and exist for logging only.
	ErrInvalidToken   = errors.New("could not validate credentials")
	ErrTokenMalformed = fmt.Errorf("%w: malformed token", ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrInvalidToken)
	ErrTokenClaims    = fmt.Errorf("%w: required claims missing", ErrInvalidToken)
)

// Claims is the exact claim set carried by an access token: sub, id, role, exp.
type Claims struct {
	Subject   *string          `json:"sub,omitempty"`
	UserID    *int64           `json:"id,omitempty"`
	Role      string           `json:"role,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return "", nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

func (c Claims) GetSubject() (string, error) {
	if c.Subject == nil {
		return "", nil
	}
	return *c.Subject, nil
}

// TokenManager issues and resolves HS256 access tokens with a single
// process-wide secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

// NewTokenManager returns a TokenManager signing with secret.
func NewTokenManager(secret []byte, opts ...TokenOption) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	m := &TokenManager{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue creates a signed token for the given identity that expires ttl from now.
func (m *TokenManager) Issue(username string, userID int64, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Subject:   &username,
		UserID:    &userID,
		Role:      role,
		ExpiresAt: jwt.NewNumericDate(m.now().UTC().Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Resolve validates tokenString and returns the principal it names. It does
// not consult the credential store: a token stays valid until exp even if
// its user is later deactivated or removed.
func (m *TokenManager) Resolve(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now().UTC() }),
	)
	if err != nil {
		return model.Principal{}, classify(err)
	}

	// sub and id must be present; an empty sub is still a present claim.
	if claims.Subject == nil || claims.UserID == nil {
		return model.Principal{}, ErrTokenClaims
	}

	return model.Principal{
		Username: *claims.Subject,
		ID:       *claims.UserID,
		Role:     claims.Role,
	}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrTokenClaims
	default:
		return ErrTokenMalformed
	}
}
