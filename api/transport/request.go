package transport

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login. The identifier may
// be a username or an email address.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// TaskCreateRequest is the body of POST /api/tasks.
type TaskCreateRequest struct {
	Title string `json:"title"`
}

// TaskUpdateRequest is the body of PUT /api/tasks/{id}.
type TaskUpdateRequest struct {
	Status string `json:"status"`
}
