package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username"  form:"username"  validate:"required,min=3,max=50"`
	Email    string `json:"email"     form:"email"     validate:"required,email,max=254"`
	Password string `json:"password"  form:"password"  validate:"required,max=72"`
	FullName string `json:"full_name" form:"full_name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Posts ---

type createPostRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Summary string `json:"summary" validate:"max=500"`
}

// updatePostRequest is a partial update; omitted fields are left unchanged.
type updatePostRequest struct {
	Title   *string `json:"title"   validate:"omitempty,max=200"`
	Content *string `json:"content"`
	Summary *string `json:"summary" validate:"omitempty,max=500"`
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary,omitempty"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Comments ---

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Admin ---

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type updateActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
