package entity

import "time"

// Supply registro inmutable de un abastecimiento hecho por un administrador (id con prefijo "SP").
type Supply struct {
	ID            string
	ProductID     string
	AdminID       string
	Quantity      int64
	Price         int64
	OperationDate time.Time
}
