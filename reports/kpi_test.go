package reports

import (
	"testing"
	"time"

	"github.com/WilLunaj/Ventas-web/models"
	"github.com/WilLunaj/Ventas-web/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func venta(producto string, cantidad int, precio string, fecha time.Time) models.Venta {
	p, _ := decimal.NewFromString(precio)
	return models.Venta{
		Cliente:        "Acme",
		Producto:       producto,
		Cantidad:       cantidad,
		PrecioUnitario: p,
		MetodoPago:     "cash",
		Fecha:          fecha,
	}
}

func TestEmptyInputYieldsDefinedZeros(t *testing.T) {
	s := ComputeKPIs(nil, time.Now())

	assert.Equal(t, 0, s.TotalCount)
	assert.True(t, s.TotalIngresos.IsZero())
	assert.True(t, s.AOV.IsZero())
	assert.Equal(t, 0.0, s.PctUnpaid)
	assert.Equal(t, 0.0, s.PctUnsent)
	assert.Equal(t, "—", s.AvgTimeToPayment)
	assert.Empty(t, s.TopProducts)
	assert.Len(t, s.SalesByDay, 7)
}

func TestRevenueAndAverageOrderValue(t *testing.T) {
	now := time.Now().UTC()
	ventas := []models.Venta{
		venta("Widget", 3, "10.00", now),
		venta("Gadget", 1, "15.50", now),
	}

	s := ComputeKPIs(ventas, now)

	assert.Equal(t, 2, s.TotalCount)
	assert.True(t, s.TotalIngresos.Equal(decimal.RequireFromString("45.50")), s.TotalIngresos.String())
	assert.True(t, s.AOV.Equal(decimal.RequireFromString("22.75")), s.AOV.String())
}

func TestUnpaidAndUnsentPercentages(t *testing.T) {
	now := time.Now().UTC()
	paid := venta("Widget", 1, "10.00", now)
	paid.SetPagado(true, now)

	ventas := []models.Venta{
		paid,
		venta("Widget", 1, "10.00", now),
		venta("Widget", 1, "10.00", now),
	}

	s := ComputeKPIs(ventas, now)

	assert.Equal(t, 66.67, s.PctUnpaid)
	assert.Equal(t, 100.0, s.PctUnsent)
}

func TestAverageTimeToPaymentFormatting(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		delta time.Duration
		want  string
	}{
		{"days", 51*time.Hour + 4*time.Minute, "2d 3h 4m"},
		{"hours", 3*time.Hour + 5*time.Minute, "3h 5m"},
		{"minutes", 45 * time.Minute, "45m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := venta("Widget", 1, "10.00", base)
			v.SetPagado(true, base.Add(tc.delta))

			s := ComputeKPIs([]models.Venta{v}, base)
			assert.Equal(t, tc.want, s.AvgTimeToPayment)
		})
	}
}

func TestAverageTimeIgnoresUnpaidRecords(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	paid := venta("Widget", 1, "10.00", base)
	paid.SetPagado(true, base.Add(30*time.Minute))

	ventas := []models.Venta{paid, venta("Widget", 1, "10.00", base)}
	s := ComputeKPIs(ventas, base)

	assert.Equal(t, "30m", s.AvgTimeToPayment)
}

func TestTopProductsCappedSortedAndStable(t *testing.T) {
	now := time.Now().UTC()
	ventas := []models.Venta{
		venta("A", 1, "10.00", now),
		venta("B", 1, "50.00", now),
		venta("C", 1, "10.00", now), // ties with A; A was seen first
		venta("D", 1, "70.00", now),
		venta("E", 1, "20.00", now),
		venta("F", 1, "30.00", now),
		venta("G", 1, "5.00", now),
		venta("A", 2, "10.00", now), // A now 30, ties with F
	}

	s := ComputeKPIs(ventas, now)

	assert.Len(t, s.TopProducts, 5)
	for i := 1; i < len(s.TopProducts); i++ {
		assert.False(t, s.TopProducts[i].Revenue.GreaterThan(s.TopProducts[i-1].Revenue),
			"revenue must be descending")
	}
	assert.Equal(t, "D", s.TopProducts[0].Producto)
	assert.Equal(t, "B", s.TopProducts[1].Producto)
	// A (30.00) ties with F (30.00); A appeared first in the input.
	assert.Equal(t, "A", s.TopProducts[2].Producto)
	assert.Equal(t, "F", s.TopProducts[3].Producto)
	assert.Equal(t, "E", s.TopProducts[4].Producto)
}

func TestRoundTripContributesToTopProducts(t *testing.T) {
	now := time.Now().UTC()
	v := venta("Widget", 3, "10.00", now)

	s := ComputeKPIs([]models.Venta{v}, now)

	assert.True(t, v.Total().Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "Widget", s.TopProducts[0].Producto)
	assert.True(t, s.TopProducts[0].Revenue.Equal(decimal.NewFromInt(30)))
}

func TestSalesByDayCoversSevenLocalDays(t *testing.T) {
	// Fixed instant: 2024-03-10 15:00 local.
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, utils.LocalTZ)

	ventas := []models.Venta{
		venta("W", 1, "10.00", now.UTC()),                                 // today
		venta("W", 1, "10.00", now.AddDate(0, 0, -3).UTC()),               // 3 days ago
		venta("W", 1, "10.00", now.AddDate(0, 0, -3).UTC()),               // same day
		venta("W", 1, "10.00", now.AddDate(0, 0, -10).UTC()),              // outside window
		venta("W", 1, "10.00", time.Date(2024, 3, 10, 4, 30, 0, 0, time.UTC)), // 2024-03-09 23:30 local
	}

	s := ComputeKPIs(ventas, now)

	assert.Len(t, s.SalesByDay, 7)
	assert.Equal(t, "2024-03-04", s.SalesByDay[0].Date)
	assert.Equal(t, "2024-03-10", s.SalesByDay[6].Date)
	for i := 1; i < 7; i++ {
		assert.Less(t, s.SalesByDay[i-1].Date, s.SalesByDay[i].Date)
	}

	byDate := map[string]int{}
	for _, d := range s.SalesByDay {
		byDate[d.Date] = d.Count
	}
	assert.Equal(t, 1, byDate["2024-03-10"])
	assert.Equal(t, 2, byDate["2024-03-07"])
	assert.Equal(t, 1, byDate["2024-03-09"], "UTC instant must bucket on its local date")
	assert.Equal(t, 0, byDate["2024-03-05"])

	// The out-of-window record is excluded from the series only.
	assert.Equal(t, 5, s.TotalCount)
}
