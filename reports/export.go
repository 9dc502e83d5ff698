package reports

import (
	"fmt"
	"time"

	"github.com/WilLunaj/Ventas-web/models"
	"github.com/WilLunaj/Ventas-web/utils"

	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of the export workbook.
const SheetName = "ventas"

// ContentTypeXLSX is the MIME type served with export downloads.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"id", "cliente", "producto", "cantidad", "precio_unitario", "total",
	"metodo_pago", "fecha", "pagado", "pagado_fecha", "enviado", "enviado_fecha",
}

// BuildExport renders the filtered, ordered sales into an in-memory xlsx
// workbook: fixed column order, one row per record, timestamps as local
// display strings.
func BuildExport(ventas []models.Venta) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, v := range ventas {
		fecha := v.Fecha
		values := []interface{}{
			v.ID,
			v.Cliente,
			v.Producto,
			v.Cantidad,
			v.PrecioUnitario.InexactFloat64(),
			v.Total().InexactFloat64(),
			v.MetodoPago,
			utils.FormatLocal(&fecha),
			v.Pagado,
			utils.FormatLocal(v.PagadoFecha),
			v.Enviado,
			utils.FormatLocal(v.EnviadoFecha),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportFilename embeds the current UTC instant in the download name.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("ventas_%s.xlsx", now.UTC().Format("20060102_150405"))
}
