package dto

// SupplyProductRequest producto nuevo que entra al inventario. Photos usa las claves
// photo_1, photo_2 y photo_3 con el contenido en base64; todas son opcionales.
type SupplyProductRequest struct {
	Name     string            `json:"name"`
	Price    int64             `json:"price"`
	Quantity int64             `json:"quantity"`
	Photos   map[string]string `json:"photos"`
}

// SupplyResponse resultado de un abastecimiento.
type SupplyResponse struct {
	ProductID string `json:"product_id"`
	SupplyID  string `json:"supply_id"`
}

// RestockRequest reposición de un producto existente.
type RestockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RestockResponse resultado de una reposición.
type RestockResponse struct {
	ProductID string `json:"product_id"`
	SupplyID  string `json:"supply_id"`
	Quantity  int64  `json:"quantity"`
}

// SaleProduct producto y cantidad que se compra.
type SaleProduct struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

// SaleCustomer datos del comprador y envío.
type SaleCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// SaleRequest cuerpo de POST /sale.
type SaleRequest struct {
	Product  SaleProduct  `json:"product"`
	Customer SaleCustomer `json:"customer"`
}

// SaleResponse confirmación de la venta.
type SaleResponse struct {
	ProductID    string `json:"product_id"`
	CustomerName string `json:"customer_name"`
	SaleID       string `json:"sale_id"`
}
