package catalog

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PhotoReader lectura de fotos desde el almacén.
type PhotoReader interface {
	Get(ctx context.Context, ref string) ([]byte, error)
}

// CatalogUseCase consultas de solo lectura sobre el catálogo.
type CatalogUseCase struct {
	repo   repository.ProductRepository
	photos PhotoReader
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ProductRepository, photos PhotoReader) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, photos: photos}
}

// ListAvailable productos con stock mayor que cero.
func (uc *CatalogUseCase) ListAvailable(ctx context.Context) ([]dto.ProductSummary, error) {
	list, err := uc.repo.ListAvailable(ctx)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]dto.ProductSummary, 0, len(list))
	for _, p := range list {
		out = append(out, toSummary(p))
	}
	return out, nil
}

// GetProduct detalle de un producto con sus fotos.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, productID string) (*dto.ProductDetail, error) {
	product, err := uc.get(ctx, productID)
	if err != nil {
		return nil, err
	}
	photos, err := uc.encodePhotos(ctx, product)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetail{ProductSummary: toSummary(product), Photos: photos}, nil
}

// GetPhotos fotos del producto en base64, una entrada por ranura (nil si está vacía).
func (uc *CatalogUseCase) GetPhotos(ctx context.Context, productID string) ([]*string, error) {
	product, err := uc.get(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.encodePhotos(ctx, product)
}

// GetPhoto contenido binario de una ranura (1..3).
func (uc *CatalogUseCase) GetPhoto(ctx context.Context, productID string, slot int) (*dto.Photo, error) {
	if slot < 1 || slot > entity.MaxPhotos {
		return nil, fmt.Errorf("%w: la ranura debe estar entre 1 y %d", domain.ErrInvalidInput, entity.MaxPhotos)
	}
	product, err := uc.get(ctx, productID)
	if err != nil {
		return nil, err
	}
	ref := product.Photos[slot-1]
	if ref == "" {
		return nil, fmt.Errorf("foto %d de %s: %w", slot, productID, domain.ErrNotFound)
	}
	data, err := uc.photos.Get(ctx, ref)
	if err != nil {
		return nil, domain.Storage(fmt.Errorf("read photo %s: %w", ref, err))
	}
	return &dto.Photo{Slot: slot, Data: data}, nil
}

func (uc *CatalogUseCase) get(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return product, nil
}

func (uc *CatalogUseCase) encodePhotos(ctx context.Context, product *entity.Product) ([]*string, error) {
	out := make([]*string, entity.MaxPhotos)
	for i, ref := range product.Photos {
		if ref == "" {
			continue
		}
		data, err := uc.photos.Get(ctx, ref)
		if err != nil {
			return nil, domain.Storage(fmt.Errorf("read photo %s: %w", ref, err))
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		out[i] = &encoded
	}
	return out, nil
}

func toSummary(p *entity.Product) dto.ProductSummary {
	return dto.ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, Quantity: p.Quantity}
}
