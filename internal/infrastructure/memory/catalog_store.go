package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductStore)(nil)
	_ repository.CategoryRepository = (*CategoryStore)(nil)
)

// ProductStore catálogo en memoria.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]entity.Product
	Err      error
}

// NewProductStore crea el store con los productos dados.
func NewProductStore(products ...*entity.Product) *ProductStore {
	s := &ProductStore{products: map[string]entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = *p
	}
	return s
}

func (s *ProductStore) Create(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	s.products[p.ID] = *p
	return nil
}

func (s *ProductStore) Upsert(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.products[p.ID] = *p
	return nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProductStore) Update(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.products, id)
	return nil
}

func (s *ProductStore) ListActive(_ context.Context, categoryID string) ([]*entity.Product, error) {
	return s.filter(func(p entity.Product) bool {
		return p.Active && (categoryID == "" || p.CategoryID == categoryID)
	})
}

func (s *ProductStore) ListByOwner(_ context.Context, ownerID string) ([]*entity.Product, error) {
	return s.filter(func(p entity.Product) bool { return p.OwnerID == ownerID })
}

func (s *ProductStore) CountActive(ctx context.Context) (int, error) {
	list, err := s.ListActive(ctx, "")
	return len(list), err
}

func (s *ProductStore) filter(keep func(entity.Product) bool) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.Product
	for _, p := range s.products {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CategoryStore categorías en memoria.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]entity.Category
}

// NewCategoryStore crea el store con las categorías dadas.
func NewCategoryStore(categories ...*entity.Category) *CategoryStore {
	s := &CategoryStore{categories: map[string]entity.Category{}}
	for _, c := range categories {
		s.categories[c.ID] = *c
	}
	return s
}

func (s *CategoryStore) Upsert(_ context.Context, c *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = *c
	return nil
}

func (s *CategoryStore) GetByID(_ context.Context, id string) (*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *CategoryStore) List(_ context.Context) ([]*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(s.categories))
	for _, c := range s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
