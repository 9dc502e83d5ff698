package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalIsQuantityTimesPriceRounded(t *testing.T) {
	cases := []struct {
		name     string
		cantidad int
		precio   string
		want     string
	}{
		{"round numbers", 3, "10.00", "30"},
		{"cents", 2, "19.99", "39.98"},
		{"rounding up", 3, "33.335", "100.01"},
		{"single unit", 1, "0.01", "0.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			precio, err := decimal.NewFromString(tc.precio)
			assert.NoError(t, err)

			v := Venta{Cantidad: tc.cantidad, PrecioUnitario: precio}
			assert.Equal(t, tc.want, v.Total().String())
		})
	}
}

func TestSetPagadoTransitions(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	v := Venta{}

	v.SetPagado(true, now)
	assert.True(t, v.Pagado)
	assert.NotNil(t, v.PagadoFecha)
	assert.Equal(t, now, *v.PagadoFecha)

	// Re-applying the same target state must not move the timestamp.
	later := now.Add(2 * time.Hour)
	v.SetPagado(true, later)
	assert.Equal(t, now, *v.PagadoFecha)

	ref := "uploads/acme/file.pdf"
	v.ComprobantePath = &ref
	v.SetPagado(false, later)
	assert.False(t, v.Pagado)
	assert.Nil(t, v.PagadoFecha)
	assert.Nil(t, v.ComprobantePath, "reverting to unpaid drops the attachment reference")

	v.SetPagado(false, later)
	assert.Nil(t, v.PagadoFecha)
}

func TestSetEnviadoTransitions(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	v := Venta{}

	v.SetEnviado(true, now)
	assert.True(t, v.Enviado)
	assert.Equal(t, now, *v.EnviadoFecha)

	v.SetEnviado(true, now.Add(time.Hour))
	assert.Equal(t, now, *v.EnviadoFecha)

	v.SetEnviado(false, now.Add(time.Hour))
	assert.False(t, v.Enviado)
	assert.Nil(t, v.EnviadoFecha)
}
