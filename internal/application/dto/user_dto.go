package dto

import "time"

// SignUpRequest formulario de registro.
type SignUpRequest struct {
	Name            string `json:"name" form:"name" validate:"required,max=50"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8,max=32,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
}

// Values campos a repoblar (sin contraseñas).
func (r SignUpRequest) Values() map[string]string {
	return map[string]string{"name": r.Name, "email": r.Email}
}

// SignInRequest formulario de inicio de sesión.
type SignInRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=32,maxbytes=72"`
}

// Values campos a repoblar (sin contraseña).
func (r SignInRequest) Values() map[string]string {
	return map[string]string{"email": r.Email}
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SessionResponse token emitido al iniciar sesión.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// Actor identidad autenticada que origina una acción.
type Actor struct {
	UserID string
	Name   string
	Email  string
}
