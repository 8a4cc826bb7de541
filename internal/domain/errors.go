package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Autenticación / autorización
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")

	// Validación de pedidos (antes de cualquier escritura)
	ErrEmptyCart       = errors.New("el carrito está vacío")
	ErrUnresolvedOwner = errors.New("no se pudo resolver la empresa dueña del producto")
	ErrItemInactive    = errors.New("el producto no está disponible")

	// Estado: transición no permitida por la máquina de estados
	ErrInvalidTransition = errors.New("transición de estado inválida")

	// Invariantes de administración de roles
	ErrSingleSuperadmin = errors.New("solo puede existir un superadmin y corresponde al actor actual")
	ErrSelfDeletion     = errors.New("el superadmin no puede eliminarse a sí mismo")
	ErrSelfDemotion     = errors.New("el superadmin no puede quitarse su propio rol")

	// Upstream: el almacén no responde; el llamador decide si reintenta
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
)

// ErrNotVisible se trata como ausencia: un pedido ajeno no se distingue de uno inexistente.
var ErrNotVisible = ErrNotFound
