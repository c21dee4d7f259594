package photostore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/spf13/afero"
)

var _ inventory.PhotoStore = (*FileStore)(nil)

// ErrInvalidRef referencia de foto con formato inesperado.
var ErrInvalidRef = errors.New("photostore: referencia inválida")

// ref = <productID>_<ranura>.jpg; no admite separadores de ruta.
var refPattern = regexp.MustCompile(`^[A-Za-z0-9]+_[1-9]\.jpg$`)

// FileStore guarda las fotos como archivos <productID>_<ranura>.jpg en un directorio.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore crea el almacén sobre fsys (afero.NewOsFs en producción, MemMapFs en tests).
func NewFileStore(fsys afero.Fs, dir string) (*FileStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de fotos: %w", err)
	}
	return &FileStore{fs: fsys, dir: dir}, nil
}

// Put escribe la foto de la ranura indicada y devuelve su referencia.
func (s *FileStore) Put(_ context.Context, productID string, slot int, data []byte) (string, error) {
	if slot < 1 || slot > entity.MaxPhotos {
		return "", fmt.Errorf("photostore: ranura %d fuera de rango", slot)
	}
	ref := fmt.Sprintf("%s_%d.jpg", productID, slot)
	if !refPattern.MatchString(ref) {
		return "", ErrInvalidRef
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return ref, nil
}

// Get lee el contenido de una foto.
func (s *FileStore) Get(_ context.Context, ref string) ([]byte, error) {
	if !refPattern.MatchString(ref) {
		return nil, ErrInvalidRef
	}
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, ref))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return data, nil
}

// Delete elimina una foto. Borrar una foto inexistente no es error.
func (s *FileStore) Delete(_ context.Context, ref string) error {
	if !refPattern.MatchString(ref) {
		return ErrInvalidRef
	}
	err := s.fs.Remove(filepath.Join(s.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
