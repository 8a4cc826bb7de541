package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pedidos-api/internal/application/analytics"
)

// DashboardHandler KPIs del panel de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve pedidos pendientes, ventas del mes, productos activos y últimos pedidos.
// GET /api/admin/dashboard
//
// No requiere parámetros; el mes se calcula en el servidor con la zona horaria configurada.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
