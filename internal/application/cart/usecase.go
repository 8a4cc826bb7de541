// Package cart acumula por principal los pares (producto, cantidad) antes de enviarlos como pedido.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// UseCase operaciones sobre el carrito de un principal.
type UseCase struct {
	carts   repository.CartRepository
	catalog CatalogReader
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(carts repository.CartRepository, catalog CatalogReader, log zerolog.Logger) *UseCase {
	return &UseCase{carts: carts, catalog: catalog, log: log, now: time.Now}
}

// Get devuelve el carrito con subtotales por línea; resuelve de paso la metadata faltante.
func (uc *UseCase) Get(ctx context.Context, principalID string) (*dto.CartResponse, error) {
	lines, err := uc.ResolvedLines(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(lines), nil
}

// AddItem agrega quantity unidades del producto; si ya está en el carrito suma la cantidad.
// El precio se congela en la primera vez que se agrega.
func (uc *UseCase) AddItem(ctx context.Context, principalID, itemID string, quantity int) (*dto.CartResponse, error) {
	if principalID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	p, err := uc.catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("carrito: leer producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.Active {
		return nil, domain.ErrItemInactive
	}

	line, err := uc.carts.GetLine(ctx, principalID, itemID)
	if err != nil {
		return nil, fmt.Errorf("carrito: leer línea: %w", err)
	}
	if line == nil {
		line = &entity.CartLine{
			PrincipalID:   principalID,
			ItemID:        p.ID,
			Name:          p.Name,
			PriceSnapshot: p.Price,
		}
	}
	line.Quantity += quantity
	enrich(line, p)
	line.UpdatedAt = uc.now()
	if err := uc.carts.SaveLine(ctx, *line); err != nil {
		return nil, fmt.Errorf("carrito: guardar línea: %w", err)
	}
	return uc.Get(ctx, principalID)
}

// ChangeQuantity suma delta a la línea; si la cantidad llega a cero o menos la línea se elimina.
func (uc *UseCase) ChangeQuantity(ctx context.Context, principalID, itemID string, delta int) (*dto.CartResponse, error) {
	line, err := uc.carts.GetLine(ctx, principalID, itemID)
	if err != nil {
		return nil, fmt.Errorf("carrito: leer línea: %w", err)
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		if err := uc.carts.DeleteLine(ctx, principalID, itemID); err != nil {
			return nil, fmt.Errorf("carrito: eliminar línea: %w", err)
		}
		return uc.Get(ctx, principalID)
	}
	line.UpdatedAt = uc.now()
	if err := uc.carts.SaveLine(ctx, *line); err != nil {
		return nil, fmt.Errorf("carrito: guardar línea: %w", err)
	}
	return uc.Get(ctx, principalID)
}

// RemoveItem elimina la línea (no falla si no existe).
func (uc *UseCase) RemoveItem(ctx context.Context, principalID, itemID string) (*dto.CartResponse, error) {
	if err := uc.carts.DeleteLine(ctx, principalID, itemID); err != nil {
		return nil, fmt.Errorf("carrito: eliminar línea: %w", err)
	}
	return uc.Get(ctx, principalID)
}

// Clear vacía el carrito del principal.
func (uc *UseCase) Clear(ctx context.Context, principalID string) error {
	if err := uc.carts.Clear(ctx, principalID); err != nil {
		return fmt.Errorf("carrito: vaciar: %w", err)
	}
	return nil
}

// ResolvedLines devuelve las líneas completando OwnerID y categoría desde el catálogo cuando
// faltan; lo resuelto se guarda para no volver a consultarlo. Si el producto ya no existe la
// línea queda sin resolver y el pedido la rechazará.
func (uc *UseCase) ResolvedLines(ctx context.Context, principalID string) ([]entity.CartLine, error) {
	lines, err := uc.carts.ListLines(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("carrito: listar: %w", err)
	}
	for i := range lines {
		l := &lines[i]
		if l.Resolved() && l.CategoryID != "" {
			continue
		}
		p, err := uc.catalog.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, fmt.Errorf("carrito: resolver %s: %w", l.ItemID, err)
		}
		if p == nil {
			uc.log.Warn().Str("principal_id", principalID).Str("item_id", l.ItemID).Msg("producto del carrito ya no existe en el catálogo")
			continue
		}
		enrich(l, p)
		if err := uc.carts.SaveLine(ctx, *l); err != nil {
			return nil, fmt.Errorf("carrito: guardar metadata: %w", err)
		}
	}
	return lines, nil
}

// enrich completa solo los campos vacíos; lo ya conocido no se sobrescribe.
func enrich(l *entity.CartLine, p *entity.Product) {
	if l.OwnerID == "" {
		l.OwnerID = p.OwnerID
	}
	if l.CategoryID == "" {
		l.CategoryID = p.CategoryID
		l.CategoryName = p.CategoryName
	}
	if l.Name == "" {
		l.Name = p.Name
	}
}

func toCartResponse(lines []entity.CartLine) *dto.CartResponse {
	resp := &dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		amount := l.Amount()
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ItemID:        l.ItemID,
			Name:          l.Name,
			Quantity:      l.Quantity,
			PriceSnapshot: l.PriceSnapshot,
			Subtotal:      amount,
			OwnerID:       l.OwnerID,
			CategoryID:    l.CategoryID,
			CategoryName:  l.CategoryName,
		})
		resp.Total = resp.Total.Add(amount)
		resp.Count += l.Quantity
	}
	return resp
}
