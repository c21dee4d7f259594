package dto

// ProductSummary elemento del catálogo disponible.
type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// ProductDetail producto con sus fotos en base64 (una entrada por ranura, null si está vacía).
type ProductDetail struct {
	ProductSummary
	Photos []*string `json:"photos"`
}

// Photo contenido de una ranura de foto del producto.
type Photo struct {
	Slot int    `json:"slot"`
	Data []byte `json:"-"`
}
