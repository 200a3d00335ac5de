package dto

// LoginForm is the form body for POST /login/.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// SignupForm is the form body for POST /signup.
type SignupForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Email    string `form:"email"`
}

// UserResponse is returned by GET /api/v1/profile.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
