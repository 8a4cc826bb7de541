package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/pkg/jwt"
)

// LocalPrincipal key de c.Locals donde queda el perfil resuelto.
const LocalPrincipal = "principal"

// principalResolver es el contrato mínimo que necesita el middleware. Lo implementa *auth.Resolver.
type principalResolver interface {
	Resolve(ctx context.Context, id jwt.Identity) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token del proveedor de identidad y deja en c.Locals el
// principal (perfil almacenado). El rol nunca se toma del token.
func AuthMiddleware(jwtSecret, issuer string, resolver principalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		principal, err := resolver.Resolve(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		if principal == nil {
			return respondError(c, domain.ErrUnauthenticated)
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay principal en el contexto.
//   - 403 Forbidden    → el rol del perfil no está en la lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHENTICATED",
				Message: "principal no encontrado en el contexto",
			})
		}
		if _, ok := allowed[p.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + p.Role + "' no tiene acceso a este recurso",
			})
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el perfil del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalPrincipal).(*entity.User)
	return u
}

// GetRole devuelve el rol del principal o "" si no hay sesión.
func GetRole(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}
