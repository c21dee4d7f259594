package entity

import "time"

// Sale registro inmutable de una venta (id con prefijo "SL").
type Sale struct {
	ID            string
	ProductID     string
	Quantity      int64
	Price         int64 // precio unitario al momento de la venta
	CustomerEmail string
	City          string
	Address       string
	OperationDate time.Time
}

// Total devuelve el importe de la venta.
func (s *Sale) Total() int64 {
	return s.Quantity * s.Price
}
