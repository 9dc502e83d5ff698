package filters

import (
	"strings"
	"time"

	"github.com/WilLunaj/Ventas-web/models"
	"github.com/WilLunaj/Ventas-web/utils"

	"gorm.io/gorm"
)

// QueryGetter is the subset of *fiber.Ctx the parser needs; tests can back
// it with a plain map.
type QueryGetter interface {
	Query(key string, defaultValue ...string) string
}

// Criteria is a bag of optional filter clauses over the ledger. Zero values
// impose no constraint; present clauses are combined with AND.
type Criteria struct {
	UnpaidOnly bool
	UnsentOnly bool
	Cliente    string
	Producto   string
	MetodoPago string
	DateFrom   *time.Time // inclusive lower bound on fecha, UTC
	DateTo     *time.Time // inclusive upper bound on fecha, UTC
}

// ParseCriteria reads the filter query parameters. Unparsable dates are
// silently dropped rather than rejected (lenient-input policy).
func ParseCriteria(q QueryGetter) Criteria {
	return Criteria{
		UnpaidOnly: q.Query("unpaid") == "1",
		UnsentOnly: q.Query("unsent") == "1",
		Cliente:    strings.TrimSpace(q.Query("cliente")),
		Producto:   strings.TrimSpace(q.Query("producto")),
		MetodoPago: strings.TrimSpace(q.Query("metodo_pago")),
		DateFrom:   parseDate(q.Query("date_from"), false),
		DateTo:     parseDate(q.Query("date_to"), true),
	}
}

// parseDate turns YYYY-MM-DD into a UTC instant: local midnight for lower
// bounds, local 23:59:59 for upper bounds. Returns nil for anything that
// does not parse.
func parseDate(s string, endOfDay bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, utils.LocalTZ)
	if err != nil {
		return nil
	}
	if endOfDay {
		d = d.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	u := d.UTC()
	return &u
}

// Matches is the pure predicate form of the criteria. Substring clauses are
// case-insensitive contains-matches; date bounds are inclusive.
func (cr Criteria) Matches(v models.Venta) bool {
	if cr.UnpaidOnly && v.Pagado {
		return false
	}
	if cr.UnsentOnly && v.Enviado {
		return false
	}
	if !containsFold(v.Cliente, cr.Cliente) {
		return false
	}
	if !containsFold(v.Producto, cr.Producto) {
		return false
	}
	if !containsFold(v.MetodoPago, cr.MetodoPago) {
		return false
	}
	fecha := v.Fecha.UTC()
	if cr.DateFrom != nil && fecha.Before(*cr.DateFrom) {
		return false
	}
	if cr.DateTo != nil && fecha.After(*cr.DateTo) {
		return false
	}
	return true
}

// Scope translates the criteria into SQL conditions, clause for clause the
// same as Matches, for DB-side filtering.
func (cr Criteria) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cr.UnpaidOnly {
			db = db.Where("pagado = ?", false)
		}
		if cr.UnsentOnly {
			db = db.Where("enviado = ?", false)
		}
		if cr.Cliente != "" {
			db = db.Where("cliente ILIKE ?", "%"+cr.Cliente+"%")
		}
		if cr.Producto != "" {
			db = db.Where("producto ILIKE ?", "%"+cr.Producto+"%")
		}
		if cr.MetodoPago != "" {
			db = db.Where("metodo_pago ILIKE ?", "%"+cr.MetodoPago+"%")
		}
		if cr.DateFrom != nil {
			db = db.Where("fecha >= ?", *cr.DateFrom)
		}
		if cr.DateTo != nil {
			db = db.Where("fecha <= ?", *cr.DateTo)
		}
		return db
	}
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
