package entity

// Admin es un administrador de la tienda. Solo lectura para el motor de inventario.
type Admin struct {
	ID         string
	SecretHash string // bcrypt hash, nunca el secreto plano
}
