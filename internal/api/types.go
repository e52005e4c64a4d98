// ABOUTME: Request/response models for the Brightwave site API
// ABOUTME: Mirrors the JSON contracts of the auth, contact and lead endpoints

package api

// User is the authenticated identity returned by the API. It is treated
// as an opaque value: always replaced wholesale, never patched.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// LoginRequest represents credentials for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the sign-up payload for POST /register
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Company              string `json:"company,omitempty"`
	RoleID               int    `json:"role_id,omitempty"`
}

// AuthResponse is returned by both login and register on success
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ForgotPasswordRequest starts a password reset for POST /forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse acknowledges a reset request. Token is only
// present in environments where the API returns it directly (dev/test).
type ForgotPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// ResetPasswordRequest completes a password reset for POST /reset-password
type ResetPasswordRequest struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPasswordResponse acknowledges a completed reset
type ResetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactRequest represents the contact form payload for POST /contact
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// ContactResponse acknowledges a contact form submission
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LeadRequest represents the lead-capture payload for POST /leads
type LeadRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Source  string `json:"source,omitempty"`
}

// LeadResponse acknowledges a captured lead
type LeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
