package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want domain.Kind
	}{
		{nil, domain.KindNone},
		{domain.ErrUnauthorized, domain.KindUnauthorized},
		{fmt.Errorf("producto PR1: %w", domain.ErrNotFound), domain.KindNotFound},
		{domain.ErrInsufficientStock, domain.KindInsufficientStock},
		{domain.ErrInvalidQuantity, domain.KindInvalidQuantity},
		{domain.ErrGenerationExhausted, domain.KindGenerationExhausted},
		{errors.New("driver: broken pipe"), domain.KindStorage},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.KindOf(tc.err), "%v", tc.err)
	}
}

func TestStorage_OcultaLaCausa(t *testing.T) {
	cause := errors.New(`pq: relation "sales" does not exist`)
	err := domain.Storage(fmt.Errorf("insert sale: %w", cause))

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause, "la causa debe seguir disponible para los logs")
	assert.Equal(t, domain.ErrStorage.Error(), err.Error())
	assert.NotContains(t, err.Error(), "sales")
}

func TestStorage_RespetaErroresDeDominio(t *testing.T) {
	assert.Nil(t, domain.Storage(nil))
	assert.Same(t, domain.ErrInsufficientStock, domain.Storage(domain.ErrInsufficientStock))
}
