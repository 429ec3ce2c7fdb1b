package types

import "time"

// UserResponse is the public view of a user; the password hash never
// leaves the server.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   *uint     `json:"created_by"`
	AssignedTo  *uint     `json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
}

type BugResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	ProjectID   uint      `json:"project_id"`
	ReportedBy  *uint     `json:"reported_by"`
	AssignedTo  *uint     `json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	BugID     uint      `json:"bug_id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
