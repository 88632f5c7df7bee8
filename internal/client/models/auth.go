package models

// LoginRequest is sent to POST /auth/login.
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is sent to POST /auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=APPLICANT STAFF"`
}

// RegisterResponse carries the generated login ID in UserID.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type ForgotIDRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotIDResponse struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
}
