// Package memory implementa los puertos de persistencia en memoria del proceso.
// Un solo mutex serializa cada transacción; la transacción trabaja sobre una copia
// que solo se confirma si fn no falla y el contexto sigue vivo.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	products    map[string]*entity.Product
	ingredients map[string]*entity.Ingredient
	users       map[string]*entity.User
	movements   []*entity.StockMovement
}

func newState() *state {
	return &state{
		products:    make(map[string]*entity.Product),
		ingredients: make(map[string]*entity.Ingredient),
		users:       make(map[string]*entity.User),
	}
}

// clone copia ingredientes (el stock cambia dentro de la tx) y los índices; productos,
// usuarios y movimientos ya guardados no se modifican, se comparten.
func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]*entity.Product, len(s.products)),
		ingredients: make(map[string]*entity.Ingredient, len(s.ingredients)),
		users:       make(map[string]*entity.User, len(s.users)),
		movements:   make([]*entity.StockMovement, len(s.movements)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.ingredients {
		cp := *v
		c.ingredients[k] = &cp
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	copy(c.movements, s.movements)
	return c
}

// access ejecuta fn sobre el estado, con o sin tomar el lock del Store.
type access func(fn func(st *state) error) error

// Store base de datos en memoria. Es seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func direct(st *state) access {
	return func(fn func(st *state) error) error { return fn(st) }
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{do: s.locked} }

// Ingredients repositorio de ingredientes fuera de transacción.
func (s *Store) Ingredients() *IngredientRepo { return &IngredientRepo{do: s.locked} }

// Movements repositorio del libro de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{do: s.locked} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{do: s.locked} }

// Run ejecuta fn con repositorios atados a una copia del estado y la confirma al final.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	do := direct(work)
	if err := fn(&ProductRepo{do: do}, &IngredientRepo{do: do}, &MovementRepo{do: do}); err != nil {
		return err
	}
	// Cancelado antes del commit: se descarta la copia.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}
