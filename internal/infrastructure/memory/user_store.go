package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore perfiles en memoria con las mismas restricciones que la tabla users: id y email
// únicos, un solo superadmin, y Update no toca el rol. Err, si no es nil, se devuelve en
// todas las operaciones.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]entity.User
	Err   error
}

// NewUserStore crea el store con los perfiles dados.
func NewUserStore(users ...*entity.User) *UserStore {
	s := &UserStore{users: map[string]entity.User{}}
	for _, u := range users {
		s.users[u.ID] = *u
	}
	return s
}

func (s *UserStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	if err := s.checkUnique(u.ID, u.Email, u.Role); err != nil {
		return err
	}
	s.users[u.ID] = *u
	return nil
}

// checkUnique replica los índices únicos de la tabla; excludeID es la fila que se escribe.
func (s *UserStore) checkUnique(excludeID, email, role string) error {
	for id, other := range s.users {
		if id == excludeID {
			continue
		}
		if role == entity.RoleSuperadmin && other.Role == entity.RoleSuperadmin {
			return domain.ErrSingleSuperadmin
		}
		if email != "" && strings.EqualFold(other.Email, email) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	current, ok := s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := s.checkUnique(u.ID, u.Email, current.Role); err != nil {
		return err
	}
	next := *u
	next.Role = current.Role
	s.users[u.ID] = next
	return nil
}

func (s *UserStore) UpdateWithRole(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if err := s.checkUnique(u.ID, u.Email, u.Role); err != nil {
		return err
	}
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) UpdateRole(_ context.Context, id, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := s.checkUnique(id, "", role); err != nil {
		return err
	}
	u.Role = role
	s.users[id] = u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// List devuelve los perfiles ordenados por email.
func (s *UserStore) List(_ context.Context) ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *UserStore) ExistsWithRole(_ context.Context, role string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, u := range s.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}
