package models

// Envelope is the uniform wrapper every backend response uses.
// Code is a string-typed business status ("200", "201", "401", ...)
// distinct from the transport status; Data is nil on failure.
type Envelope[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// OK reports whether the envelope carries a business success code.
func (e Envelope[T]) OK() bool {
	return e.Code == "200" || e.Code == "201"
}

// Page is the paginated content wrapper matching the backend's
// Spring-style page shape.
type Page[T any] struct {
	// Content holds the items of the current page.
	Content []T `json:"content"`
	// Number is the current page index (0-based).
	Number int `json:"number"`
	// Size is the page size.
	Size int `json:"size"`
	// TotalPages is the total number of pages.
	TotalPages int `json:"totalPages"`
	// TotalElements is the total number of elements.
	TotalElements int64 `json:"totalElements"`
	// First reports whether this is the first page.
	First bool `json:"first"`
	// Last reports whether this is the last page.
	Last bool `json:"last"`
}

// TokenData is the login response payload.
type TokenData struct {
	Token string `json:"token"`
}

// LoginRequest is the credentials payload sent to /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the profile payload sent to /auth/register.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
