package controllers

import (
	"mime/multipart"
	"strconv"
	"time"

	"github.com/WilLunaj/Ventas-web/database"
	"github.com/WilLunaj/Ventas-web/filters"
	"github.com/WilLunaj/Ventas-web/middlewares"
	"github.com/WilLunaj/Ventas-web/models"
	"github.com/WilLunaj/Ventas-web/reports"
	"github.com/WilLunaj/Ventas-web/storage"
	"github.com/WilLunaj/Ventas-web/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VentaController serves the sales ledger: listing with KPIs, creation,
// paid/shipped toggles, deletion and attachment uploads.
type VentaController struct {
	sink   storage.Sink
	logger *zap.Logger
}

func NewVentaController(sink storage.Sink, logger *zap.Logger) *VentaController {
	return &VentaController{sink: sink, logger: logger}
}

type createVentaRequest struct {
	Cliente        string  `json:"cliente" form:"cliente" validate:"required"`
	Producto       string  `json:"producto" form:"producto" validate:"required"`
	Cantidad       int     `json:"cantidad" form:"cantidad" validate:"required,gt=0"`
	PrecioUnitario float64 `json:"precio_unitario" form:"precio_unitario" validate:"required,gt=0"`
	MetodoPago     string  `json:"metodo_pago" form:"metodo_pago" validate:"required"`
}

// List returns the filtered ledger (newest first) together with its KPIs.
func (ctl *VentaController) List(c *fiber.Ctx) error {
	ventas, err := ctl.filteredVentas(c)
	if err != nil {
		return err
	}

	kpis := reports.ComputeKPIs(ventas, time.Now())
	return c.JSON(fiber.Map{
		"ventas":      ventas,
		"total_count": kpis.TotalCount,
		"kpis":        kpis,
	})
}

// Create registers a new sale from the submission form and redirects back,
// preserving the active filter query string.
func (ctl *VentaController) Create(c *fiber.Ctx) error {
	var req createVentaRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	venta := models.Venta{
		Cliente:        req.Cliente,
		Producto:       req.Producto,
		Cantidad:       req.Cantidad,
		PrecioUnitario: decimal.NewFromFloat(req.PrecioUnitario).Round(2),
		MetodoPago:     req.MetodoPago,
		Fecha:          time.Now().UTC(),
	}

	if err := database.FromCtx(c).Create(&venta).Error; err != nil {
		return err
	}

	ctl.logger.Info("venta registrada",
		zap.Uint("venta_id", venta.ID),
		zap.String("cliente", venta.Cliente),
		zap.String("producto", venta.Producto))
	return redirectBack(c)
}

// Toggle flips the pagado or enviado flag of a sale, maintaining the
// matching timestamp. A pagado false→true transition may carry an optional
// "factura" file that is stored through the attachment sink.
func (ctl *VentaController) Toggle(c *fiber.Ctx) error {
	campo := c.Params("campo")
	if campo != "pagado" && campo != "enviado" {
		return fiber.NewError(fiber.StatusBadRequest, "unknown toggle field")
	}

	db := database.FromCtx(c)
	venta, err := findVenta(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch campo {
	case "pagado":
		venta.SetPagado(!venta.Pagado, now)
		if venta.Pagado {
			if err := ctl.attachFactura(c, venta, now); err != nil {
				return err
			}
		}
	case "enviado":
		venta.SetEnviado(!venta.Enviado, now)
	}

	if err := db.Save(venta).Error; err != nil {
		return err
	}
	return redirectBack(c)
}

// Delete removes a sale permanently.
func (ctl *VentaController) Delete(c *fiber.Ctx) error {
	db := database.FromCtx(c)
	venta, err := findVenta(c)
	if err != nil {
		return err
	}

	if err := db.Delete(venta).Error; err != nil {
		return err
	}

	ctl.logger.Info("venta eliminada", zap.Uint("venta_id", venta.ID))
	return redirectBack(c)
}

// Upload attaches a proof-of-payment file to an existing sale.
func (ctl *VentaController) Upload(c *fiber.Ctx) error {
	db := database.FromCtx(c)
	venta, err := findVenta(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no file provided")
	}
	if !utils.AllowedFile(fh.Filename) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "file type not allowed")
	}

	ref, err := ctl.storeAttachment(c, venta.Cliente, fh.Filename, fh, time.Now())
	if err != nil {
		return err
	}

	venta.ComprobantePath = &ref
	if err := db.Save(venta).Error; err != nil {
		return err
	}
	return redirectBack(c)
}

// attachFactura stores the optional multipart "factura" file accompanying a
// mark-paid transition. Absence of the file is not an error.
func (ctl *VentaController) attachFactura(c *fiber.Ctx, venta *models.Venta, now time.Time) error {
	fh, err := c.FormFile("factura")
	if err != nil || fh.Filename == "" {
		return nil
	}
	if !utils.AllowedFile(fh.Filename) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "file type not allowed")
	}

	ref, err := ctl.storeAttachment(c, venta.Cliente, fh.Filename, fh, now)
	if err != nil {
		return err
	}
	venta.ComprobantePath = &ref
	return nil
}

func (ctl *VentaController) storeAttachment(c *fiber.Ctx, cliente, original string, fh *multipart.FileHeader, now time.Time) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	name := utils.StorageName(cliente, original, now)
	ref, err := ctl.sink.Save(c.Context(), cliente, name, src)
	if err != nil {
		ctl.logger.Error("attachment store failed",
			zap.String("cliente", cliente),
			zap.String("filename", name),
			zap.Error(err))
		return "", fiber.NewError(fiber.StatusBadGateway, "could not store attachment")
	}
	return ref, nil
}

// findVenta loads the sale addressed by the :id route parameter. A
// non-numeric id is a 400; a missing record surfaces as 404 through the
// central error handler.
func findVenta(c *fiber.Ctx) (*models.Venta, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var venta models.Venta
	if err := database.FromCtx(c).First(&venta, id).Error; err != nil {
		return nil, err
	}
	return &venta, nil
}

// filteredVentas loads the ledger through the filter pipeline, newest first.
func (ctl *VentaController) filteredVentas(c *fiber.Ctx) ([]models.Venta, error) {
	crit := filters.ParseCriteria(c)

	var ventas []models.Venta
	err := database.FromCtx(c).
		Scopes(crit.Scope()).
		Order("fecha DESC").
		Find(&ventas).Error
	if err != nil {
		return nil, err
	}
	return ventas, nil
}

// redirectBack sends the browser back to the ledger view, keeping whatever
// filter query string the request carried.
func redirectBack(c *fiber.Ctx) error {
	target := "/"
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		target += "?" + qs
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}
