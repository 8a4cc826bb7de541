package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
)

// ProfileHandler perfil del principal autenticado.
type ProfileHandler struct {
	resolver *auth.Resolver
}

// NewProfileHandler construye el handler.
func NewProfileHandler(resolver *auth.Resolver) *ProfileHandler {
	return &ProfileHandler{resolver: resolver}
}

// Get godoc
// @Summary      Perfil actual
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	return c.JSON(auth.ToUserResponse(GetPrincipal(c)))
}

// Register godoc
// @Summary      Completar perfil
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProfileRequest  true  "nombre, apellidos, rut, email, account_kind"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [post]
func (h *ProfileHandler) Register(c *fiber.Ctx) error {
	var in dto.ProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.resolver.RegisterProfile(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(auth.ToUserResponse(u))
}
