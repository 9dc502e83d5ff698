package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/WilLunaj/Ventas-web/models"
	"github.com/WilLunaj/Ventas-web/utils"

	"github.com/shopspring/decimal"
)

// Summary holds the aggregate metrics for a filtered set of sales. Every
// field is recomputed on each request; nothing is cached.
type Summary struct {
	TotalCount       int              `json:"total_count"`
	TotalIngresos    decimal.Decimal  `json:"total_ingresos"`
	AOV              decimal.Decimal  `json:"aov"`
	PctUnpaid        float64          `json:"pct_unpaid"`
	PctUnsent        float64          `json:"pct_unsent"`
	AvgTimeToPayment string           `json:"avg_time_to_payment"`
	TopProducts      []ProductRevenue `json:"top_products"`
	SalesByDay       []DayCount       `json:"sales_by_day"`
}

// ProductRevenue is one entry of the top-products ranking.
type ProductRevenue struct {
	Producto string          `json:"producto"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DayCount is one calendar day of the last-7-days series (local dates).
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

const topProductsLimit = 5

// ComputeKPIs derives the summary metrics from an already-filtered list of
// sales. Every ratio guards against an empty input instead of failing.
func ComputeKPIs(ventas []models.Venta, now time.Time) Summary {
	s := Summary{
		TotalCount:       len(ventas),
		TotalIngresos:    decimal.Zero,
		AOV:              decimal.Zero,
		AvgTimeToPayment: "—",
		SalesByDay:       lastSevenDays(now),
	}

	dayIndex := make(map[string]int, len(s.SalesByDay))
	for i, d := range s.SalesByDay {
		dayIndex[d.Date] = i
	}

	unpaid, unsent := 0, 0
	var paidSeconds float64
	paidCount := 0
	revenueByProduct := map[string]decimal.Decimal{}
	var productOrder []string

	for _, v := range ventas {
		total := v.Total()
		s.TotalIngresos = s.TotalIngresos.Add(total)

		if !v.Pagado {
			unpaid++
		}
		if !v.Enviado {
			unsent++
		}
		if v.Pagado && v.PagadoFecha != nil {
			paidSeconds += v.PagadoFecha.UTC().Sub(v.Fecha.UTC()).Seconds()
			paidCount++
		}

		if _, seen := revenueByProduct[v.Producto]; !seen {
			productOrder = append(productOrder, v.Producto)
		}
		revenueByProduct[v.Producto] = revenueByProduct[v.Producto].Add(total)

		localDate := v.Fecha.UTC().In(utils.LocalTZ).Format("2006-01-02")
		if i, ok := dayIndex[localDate]; ok {
			s.SalesByDay[i].Count++
		}
	}

	s.TotalIngresos = s.TotalIngresos.Round(2)
	if s.TotalCount > 0 {
		count := decimal.NewFromInt(int64(s.TotalCount))
		s.AOV = s.TotalIngresos.Div(count).Round(2)
		s.PctUnpaid = utils.Round2(float64(unpaid) / float64(s.TotalCount) * 100)
		s.PctUnsent = utils.Round2(float64(unsent) / float64(s.TotalCount) * 100)
	}
	if paidCount > 0 {
		s.AvgTimeToPayment = formatSeconds(paidSeconds / float64(paidCount))
	}

	s.TopProducts = topProducts(revenueByProduct, productOrder)
	return s
}

// topProducts ranks products by summed revenue, descending, capped at 5.
// Ties keep first-encounter order (stable sort over the encounter list).
func topProducts(revenue map[string]decimal.Decimal, order []string) []ProductRevenue {
	entries := make([]ProductRevenue, 0, len(order))
	for _, p := range order {
		entries = append(entries, ProductRevenue{Producto: p, Revenue: revenue[p].Round(2)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Revenue.GreaterThan(entries[j].Revenue)
	})
	if len(entries) > topProductsLimit {
		entries = entries[:topProductsLimit]
	}
	return entries
}

// lastSevenDays returns the 7 local calendar days ending today, ascending,
// all with a zero count.
func lastSevenDays(now time.Time) []DayCount {
	today := now.UTC().In(utils.LocalTZ)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, utils.LocalTZ).AddDate(0, 0, -6)

	days := make([]DayCount, 7)
	for i := range days {
		days[i] = DayCount{Date: start.AddDate(0, 0, i).Format("2006-01-02")}
	}
	return days
}

// formatSeconds renders a mean duration with the largest applicable units:
// "{d}d {h}h {m}m", "{h}h {m}m" or "{m}m".
func formatSeconds(sec float64) string {
	days := int(sec) / 86400
	rem := int(sec) % 86400
	hours := rem / 3600
	mins := (rem % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
