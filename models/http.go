package models

// LoginRequest is the JSON body accepted by the register and login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the JSON body returned by the register and login
// endpoints, for both success and failure outcomes.
type LoginResponse struct {
	// Success reports whether the operation completed.
	Success bool `json:"success"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Token is the signed bearer token issued on successful login.
	// Never set on register or on failure.
	Token string `json:"token,omitempty"`
}
