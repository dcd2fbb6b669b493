package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-inventario/internal/domain/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock se maneja vía InventoryUseCase.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto con su receta. Cada ingrediente debe existir en el inventario.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductDetailResponse, error) {
	name := strings.TrimSpace(in.Name)
	kind := strings.TrimSpace(in.Type)
	if name == "" || kind == "" || in.Price.IsNegative() || !domaininv.InRange(in.Price) || len(in.Recipe) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]entity.RecipeLine, 0, len(in.Recipe))
	for _, l := range in.Recipe {
		lines = append(lines, entity.RecipeLine{IngredientID: l.IngredientID, QuantityRequired: l.QuantityRequired})
	}
	if err := domaininv.ValidateRecipe(lines); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     in.Price,
		Type:      kind,
		Recipe:    lines,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ingredientRepo repository.IngredientRepository,
		_ repository.StockMovementRepository,
	) error {
		for i, l := range product.Recipe {
			ing, err := ingredientRepo.GetByID(ctx, l.IngredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				return fmt.Errorf("%w: el ingrediente %s no existe", domain.ErrInvalidRecipe, l.IngredientID)
			}
			product.Recipe[i].Ingredient = ing
		}
		return productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductDetail(product), nil
}

// GetByID devuelve el resumen del producto o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductSummary, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	s := toProductSummary(product)
	return &s, nil
}

// List lista productos en forma resumida. Sin limit (<= 0) devuelve todos.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]dto.ProductSummary, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSummary, 0, len(list))
	for _, p := range list {
		out = append(out, toProductSummary(p))
	}
	return out, nil
}

func toProductSummary(p *entity.Product) dto.ProductSummary {
	return dto.ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, Type: p.Type}
}

func toProductDetail(p *entity.Product) *dto.ProductDetailResponse {
	recipe := make([]dto.RecipeLineResponse, 0, len(p.Recipe))
	for _, l := range p.Recipe {
		line := dto.RecipeLineResponse{IngredientID: l.IngredientID, QuantityRequired: l.QuantityRequired}
		if l.Ingredient != nil {
			line.IngredientName = l.Ingredient.Name
		}
		recipe = append(recipe, line)
	}
	return &dto.ProductDetailResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Type:      p.Type,
		Recipe:    recipe,
		CreatedAt: p.CreatedAt,
	}
}
