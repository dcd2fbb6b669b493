package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	do access
}

// Create guarda el usuario. El email es único sin distinguir mayúsculas.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.do(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		cp := *user
		st.users[cp.ID] = &cp
		return nil
	})
}

// GetByID devuelve el usuario o (nil, nil).
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetByEmail devuelve el usuario o (nil, nil).
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}
