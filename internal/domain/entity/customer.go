package entity

import "time"

// Customer representa un comprador identificado por su email.
// Se crea con la primera venta y no se modifica después.
type Customer struct {
	Email     string
	Name      string
	City      string
	Address   string
	CreatedAt time.Time
}
