package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// baseCatalogNamespace espacio de nombres para los IDs deterministas del catálogo base;
// reimportar produce los mismos IDs y actualiza en vez de duplicar.
var baseCatalogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pedidos-api/catalogo-base"))

// ProductUseCase catálogo: lectura pública, mantención por el dueño e importación del catálogo base.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
	now        func() time.Time

	// collate.Collator no es seguro para uso concurrente
	mu       sync.Mutex
	collator *collate.Collator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		log:        log,
		now:        time.Now,
		collator:   collate.New(language.Spanish, collate.IgnoreCase),
	}
}

// ListActive productos visibles para compradores, ordenados por categoría y nombre (orden español).
func (uc *ProductUseCase) ListActive(ctx context.Context, categoryID string) ([]*dto.ProductResponse, error) {
	list, err := uc.products.ListActive(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w", err)
	}
	return uc.sorted(list), nil
}

// ListMine productos del dueño, incluidos los inactivos.
func (uc *ProductUseCase) ListMine(ctx context.Context, owner *entity.User) ([]*dto.ProductResponse, error) {
	if owner == nil || !entity.CanSell(owner.Role) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.products.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("listar productos propios: %w", err)
	}
	return uc.sorted(list), nil
}

// ListCategories categorías ordenadas por nombre.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	uc.mu.Lock()
	sort.SliceStable(list, func(i, j int) bool { return uc.collator.CompareString(list[i].Name, list[j].Name) < 0 })
	uc.mu.Unlock()
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

// Create crea un producto del actor (company, admin o superadmin).
func (uc *ProductUseCase) Create(ctx context.Context, owner *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if owner == nil || !entity.CanSell(owner.Role) {
		return nil, domain.ErrForbidden
	}
	p := &entity.Product{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		OwnerEmail:  owner.Email,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Ingredients: strings.TrimSpace(in.Ingredients),
		Conditions:  strings.TrimSpace(in.Conditions),
		Type:        strings.TrimSpace(in.Type),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Price:       in.Price,
		Active:      in.Active == nil || *in.Active,
	}
	if err := uc.validate(ctx, p); err != nil {
		return nil, err
	}
	now := uc.now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	uc.log.Info().Str("product_id", p.ID).Str("owner_id", p.OwnerID).Msg("producto creado")
	return toProductResponse(p), nil
}

// Update modifica un producto; solo su dueño puede hacerlo.
func (uc *ProductUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Ingredients != nil {
		p.Ingredients = strings.TrimSpace(*in.Ingredients)
	}
	if in.Conditions != nil {
		p.Conditions = strings.TrimSpace(*in.Conditions)
	}
	if in.Type != nil {
		p.Type = strings.TrimSpace(*in.Type)
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := uc.validate(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto propio. Los pedidos históricos conservan su copia del ítem.
func (uc *ProductUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	uc.log.Info().Str("product_id", id).Str("owner_id", actor.ID).Msg("producto eliminado")
	return nil
}

// ImportBaseCatalog crea o actualiza las categorías y productos base a nombre del superadmin
// que importa. Es idempotente.
func (uc *ProductUseCase) ImportBaseCatalog(ctx context.Context, actor *entity.User) (*dto.ImportCatalogResponse, error) {
	if actor == nil || actor.Role != entity.RoleSuperadmin {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	resp := &dto.ImportCatalogResponse{}
	for _, c := range baseCatalog {
		if err := uc.categories.Upsert(ctx, &entity.Category{
			ID: c.id, Name: c.name, Description: c.description, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("importar categoría %s: %w", c.id, err)
		}
		resp.Categories++
		for _, it := range c.items {
			p := &entity.Product{
				ID:           BaseProductID(it.id),
				OwnerID:      actor.ID,
				OwnerEmail:   actor.Email,
				CategoryID:   c.id,
				CategoryName: c.name,
				Name:         it.name,
				Description:  it.short,
				Ingredients:  it.ingredients,
				Conditions:   it.conditions,
				Price:        decimal.NewFromInt(it.price),
				Active:       true,
				IsDefault:    true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := uc.products.Upsert(ctx, p); err != nil {
				return nil, fmt.Errorf("importar producto %s: %w", it.id, err)
			}
			resp.Products++
		}
	}
	uc.log.Info().Str("actor_id", actor.ID).Int("categories", resp.Categories).Int("products", resp.Products).Msg("catálogo base importado")
	return resp, nil
}

// BaseProductID ID determinista del producto base con slug dado.
func BaseProductID(slug string) string {
	return uuid.NewSHA1(baseCatalogNamespace, []byte(slug)).String()
}

func (uc *ProductUseCase) owned(ctx context.Context, actor *entity.User, id string) (*entity.Product, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.OwnerID != actor.ID {
		return nil, fmt.Errorf("%w: el producto pertenece a otra empresa", domain.ErrForbidden)
	}
	return p, nil
}

// validate reglas del formulario de productos; además copia el nombre de la categoría.
func (uc *ProductUseCase) validate(ctx context.Context, p *entity.Product) error {
	// el producto ya normalizado pasa por las mismas reglas que el alta
	if err := dto.Validate(dto.CreateProductRequest{
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Ingredients: p.Ingredients,
		Conditions:  p.Conditions,
		Type:        p.Type,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
	}); err != nil {
		return err
	}
	cat, err := uc.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return fmt.Errorf("obtener categoría: %w", err)
	}
	if cat == nil {
		return fmt.Errorf("%w: categoría %q no existe", domain.ErrInvalidInput, p.CategoryID)
	}
	p.CategoryName = cat.Name
	return nil
}

func (uc *ProductUseCase) sorted(list []*entity.Product) []*dto.ProductResponse {
	uc.mu.Lock()
	sort.SliceStable(list, func(i, j int) bool {
		if c := uc.collator.CompareString(list[i].CategoryName, list[j].CategoryName); c != 0 {
			return c < 0
		}
		return uc.collator.CompareString(list[i].Name, list[j].Name) < 0
	})
	uc.mu.Unlock()
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Name:         p.Name,
		Description:  p.Description,
		Ingredients:  p.Ingredients,
		Conditions:   p.Conditions,
		Type:         p.Type,
		ImageURL:     p.ImageURL,
		Price:        p.Price,
		Active:       p.Active,
		IsDefault:    p.IsDefault,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
