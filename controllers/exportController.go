package controllers

import (
	"time"

	"github.com/WilLunaj/Ventas-web/reports"

	"github.com/gofiber/fiber/v2"
)

// Export streams the currently filtered ledger as an xlsx download. The
// workbook is built fully in memory before the first byte goes out.
func (ctl *VentaController) Export(c *fiber.Ctx) error {
	ventas, err := ctl.filteredVentas(c)
	if err != nil {
		return err
	}

	f, err := reports.BuildExport(ventas)
	if err != nil {
		return err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, reports.ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+reports.ExportFilename(time.Now()))
	return c.Send(buf.Bytes())
}
