package dto

// LoginRequest credenciales del administrador.
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// LoginResponse token de sesión emitido.
type LoginResponse struct {
	Token string `json:"token"`
}
