package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pedidos-api/internal/application/analytics"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
)

// ReportHandler reporte de ventas y su exportación.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func parseReportRequest(c *fiber.Ctx) (dto.SalesReportRequest, error) {
	var req dto.SalesReportRequest
	err := c.QueryParser(&req)
	return req, err
}

// Sales godoc
// @Summary      Reporte de ventas (pedidos entregados)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date_from    query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        date_to      query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        channel      query  string  false  "all | client | company"  default(all)
// @Param        category_id  query  string  false  "Categoría o all"         default(all)
// @Param        top_n        query  int     false  "Tamaño del ranking"      default(10)
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	req, err := parseReportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Sales(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format       query  string  false  "pdf | xlsx"  default(pdf)
// @Param        date_from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        channel      query  string  false  "all | client | company"
// @Param        category_id  query  string  false  "Categoría o all"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	req, err := parseReportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	data, filename, contentType, err := h.uc.Export(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
