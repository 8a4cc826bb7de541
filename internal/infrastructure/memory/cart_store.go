package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartStore)(nil)

// CartStore carritos en memoria. Las líneas se devuelven en orden de inserción.
type CartStore struct {
	mu    sync.Mutex
	lines map[string][]entity.CartLine
	Err   error
}

// NewCartStore crea un store vacío.
func NewCartStore() *CartStore {
	return &CartStore{lines: map[string][]entity.CartLine{}}
}

func (s *CartStore) ListLines(_ context.Context, principalID string) ([]entity.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]entity.CartLine(nil), s.lines[principalID]...), nil
}

func (s *CartStore) GetLine(_ context.Context, principalID, itemID string) (*entity.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, l := range s.lines[principalID] {
		if l.ItemID == itemID {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (s *CartStore) SaveLine(_ context.Context, line entity.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	lines := s.lines[line.PrincipalID]
	for i := range lines {
		if lines[i].ItemID == line.ItemID {
			lines[i] = line
			return nil
		}
	}
	s.lines[line.PrincipalID] = append(lines, line)
	return nil
}

func (s *CartStore) DeleteLine(_ context.Context, principalID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	lines := s.lines[principalID]
	for i := range lines {
		if lines[i].ItemID == itemID {
			s.lines[principalID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *CartStore) Clear(_ context.Context, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.lines, principalID)
	return nil
}
