package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-inventario/internal/domain/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// IngredientUseCase alta y consulta del pool de ingredientes.
type IngredientUseCase struct {
	repo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{repo: repo}
}

// NormalizeName recorta espacios y normaliza a NFC ("Jalapeño" escrito con o sin
// carácter combinado es el mismo ingrediente).
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Create registra un ingrediente. Nombre único; stock, calorías y costo no negativos.
func (uc *IngredientUseCase) Create(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	name := NormalizeName(in.Name)
	if name == "" || in.Stock.IsNegative() || in.CaloriesPerUnit.IsNegative() || in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !domaininv.InRange(in.Stock) || !domaininv.InRange(in.CaloriesPerUnit) || !domaininv.InRange(in.CostPerUnit) {
		return nil, fmt.Errorf("%w: valor mayor que %s", domain.ErrInvalidInput, domaininv.MaxAmount.String())
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	ing := &entity.Ingredient{
		ID:              uuid.New().String(),
		Name:            name,
		Stock:           in.Stock,
		CaloriesPerUnit: in.CaloriesPerUnit,
		CostPerUnit:     in.CostPerUnit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	r := toIngredientResponse(ing)
	return &r, nil
}

// GetByName busca por nombre normalizado; domain.ErrNotFound si no existe.
func (uc *IngredientUseCase) GetByName(ctx context.Context, name string) (*dto.IngredientResponse, error) {
	ing, err := uc.repo.GetByName(ctx, NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	r := toIngredientResponse(ing)
	return &r, nil
}

// List lista todos los ingredientes con su stock actual.
func (uc *IngredientUseCase) List(ctx context.Context) ([]dto.IngredientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, toIngredientResponse(ing))
	}
	return out, nil
}

func toIngredientResponse(ing *entity.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		Stock:           ing.Stock,
		CaloriesPerUnit: ing.CaloriesPerUnit,
		CostPerUnit:     ing.CostPerUnit,
		UpdatedAt:       ing.UpdatedAt,
	}
}
