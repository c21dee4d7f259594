package entity

// MaxPhotos número máximo de fotos por producto.
const MaxPhotos = 3

// Product representa un artículo del catálogo de la tienda.
// Price está en la unidad monetaria mínima; Quantity es el stock disponible y nunca es negativo.
type Product struct {
	ID       string
	Name     string
	Price    int64
	Quantity int64
	// Photos referencias opacas al almacén de fotos, una por ranura (vacío = sin foto).
	Photos [MaxPhotos]string
}

// Available indica si el producto tiene stock para la venta.
func (p *Product) Available() bool {
	return p.Quantity > 0
}
