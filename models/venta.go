package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Venta is a single sales-ledger record. Timestamps are stored in UTC;
// conversion to local time happens only at display and export boundaries.
type Venta struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Cliente        string          `json:"cliente" gorm:"type:varchar(120);not null"`
	Producto       string          `json:"producto" gorm:"type:varchar(120);not null"`
	Cantidad       int             `json:"cantidad" gorm:"not null"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" gorm:"type:numeric(12,2);not null"`
	MetodoPago     string          `json:"metodo_pago" gorm:"type:varchar(50);not null"`
	Fecha          time.Time       `json:"fecha" gorm:"index;not null"`

	// State flags. The *_Fecha pointer is non-nil iff its flag is true.
	Pagado       bool       `json:"pagado"`
	PagadoFecha  *time.Time `json:"pagado_fecha"`
	Enviado      bool       `json:"enviado"`
	EnviadoFecha *time.Time `json:"enviado_fecha"`

	// Opaque attachment reference: a local path or a Drive link.
	ComprobantePath *string `json:"comprobante_path" gorm:"type:varchar(300)"`
}

// Total is the derived sale amount: cantidad × precio unitario, rounded to
// 2 decimals. Always recomputed, never stored, so quantity/price edits
// cannot leave a stale figure behind.
func (v *Venta) Total() decimal.Decimal {
	return v.PrecioUnitario.Mul(decimal.NewFromInt(int64(v.Cantidad))).Round(2)
}

// SetPagado moves the paid flag to target. The paid timestamp is set on the
// false→true transition and cleared on the reverse; re-applying the current
// state leaves the timestamp untouched. Reverting to unpaid also drops the
// attachment reference, matching the ledger's manual-correction flow.
func (v *Venta) SetPagado(target bool, now time.Time) {
	if v.Pagado == target {
		return
	}
	v.Pagado = target
	if target {
		t := now.UTC()
		v.PagadoFecha = &t
	} else {
		v.PagadoFecha = nil
		v.ComprobantePath = nil
	}
}

// SetEnviado moves the shipped flag to target with the same timestamp rules
// as SetPagado.
func (v *Venta) SetEnviado(target bool, now time.Time) {
	if v.Enviado == target {
		return
	}
	v.Enviado = target
	if target {
		t := now.UTC()
		v.EnviadoFecha = &t
	} else {
		v.EnviadoFecha = nil
	}
}

// MarshalJSON includes the derived total alongside the stored columns.
func (v Venta) MarshalJSON() ([]byte, error) {
	type alias Venta
	return json.Marshal(struct {
		alias
		Total decimal.Decimal `json:"total"`
	}{alias(v), v.Total()})
}
