package entity

import "time"

// Roles válidos para User.
const (
	RoleClient     = "client"
	RoleCompany    = "company"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Tipos de cuenta declarados al registrarse; definen el canal en los reportes.
const (
	AccountKindCliente = "Cliente"
	AccountKindEmpresa = "Empresa"
)

// User es el perfil almacenado de un principal autenticado (colección users).
// El ID coincide con el uid del proveedor de identidad externo.
type User struct {
	ID              string
	Email           string
	DisplayName     string
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno string
	RUT             string // limpio, sin puntos ni guión
	Role            string // client, company, admin, superadmin
	AccountKind     string // Cliente, Empresa
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidRole indica si role pertenece al conjunto definido.
func IsValidRole(role string) bool {
	switch role {
	case RoleClient, RoleCompany, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsValidAccountKind indica si kind es Cliente o Empresa.
func IsValidAccountKind(kind string) bool {
	return kind == AccountKindCliente || kind == AccountKindEmpresa
}

// IsStaff agrupa los roles con visibilidad completa de pedidos.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleSuperadmin
}

// CanSell indica si el rol puede ser dueño de productos del catálogo.
func CanSell(role string) bool {
	return role == RoleCompany || IsStaff(role)
}

// FullName nombre completo para mostrar; cae en DisplayName y luego en Email.
func (u *User) FullName() string {
	if u.Nombre != "" {
		name := u.Nombre
		if u.ApellidoPaterno != "" {
			name += " " + u.ApellidoPaterno
		}
		return name
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
