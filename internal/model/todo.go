package model

// Todo represents a to-do item owned by a single user.
type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
}

// TodoRequest is the body accepted when creating or replacing a todo.
type TodoRequest struct {
	Title       string `json:"title" validate:"min=3,max=100"`
	Description string `json:"description" validate:"min=3,max=100"`
	Priority    int    `json:"priority" validate:"gte=1,lte=5"`
	Complete    bool   `json:"complete"`
}
