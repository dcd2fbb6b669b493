package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/pos-inventario/internal/application/auth"
	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/domain"
)

// catalog es el archivo YAML de carga inicial. Los números van como texto para no perder precisión.
type catalog struct {
	Ingredients []catalogIngredient `yaml:"ingredients"`
	Products    []catalogProduct    `yaml:"products"`
	Users       []catalogUser       `yaml:"users"`
}

type catalogIngredient struct {
	Name            string `yaml:"name"`
	Stock           string `yaml:"stock"`
	CaloriesPerUnit string `yaml:"calories_per_unit"`
	CostPerUnit     string `yaml:"cost_per_unit"`
}

type catalogProduct struct {
	Name   string              `yaml:"name"`
	Price  string              `yaml:"price"`
	Type   string              `yaml:"type"`
	Recipe []catalogRecipeLine `yaml:"recipe"`
}

type catalogRecipeLine struct {
	Ingredient string `yaml:"ingredient"` // nombre del ingrediente
	Quantity   string `yaml:"quantity"`
}

type catalogUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

// seedResult cuenta lo creado y lo que ya existía.
type seedResult struct {
	IngredientsCreated, IngredientsSkipped int
	ProductsCreated, ProductsSkipped       int
	UsersCreated, UsersSkipped             int
}

func parseCatalog(r io.Reader) (*catalog, error) {
	var c catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	return &c, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: valor numérico inválido %q", field, s)
	}
	return v, nil
}

// seeder aplica un catálogo a través de los casos de uso. Es idempotente:
// ingredientes por nombre, productos por nombre y usuarios por email.
type seeder struct {
	ingredients *usecase.IngredientUseCase
	products    *usecase.ProductUseCase
	auth        *auth.AuthUseCase
}

func (s *seeder) apply(ctx context.Context, c *catalog) (*seedResult, error) {
	res := &seedResult{}
	ids := make(map[string]string, len(c.Ingredients))

	for _, in := range c.Ingredients {
		name := usecase.NormalizeName(in.Name)
		existing, err := s.ingredients.GetByName(ctx, name)
		switch {
		case err == nil:
			ids[name] = existing.ID
			res.IngredientsSkipped++
			continue
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		req := dto.CreateIngredientRequest{Name: name}
		if req.Stock, err = parseDecimal(name+".stock", in.Stock); err != nil {
			return nil, err
		}
		if req.CaloriesPerUnit, err = parseDecimal(name+".calories_per_unit", in.CaloriesPerUnit); err != nil {
			return nil, err
		}
		if req.CostPerUnit, err = parseDecimal(name+".cost_per_unit", in.CostPerUnit); err != nil {
			return nil, err
		}
		created, err := s.ingredients.Create(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("ingrediente %s: %w", name, err)
		}
		ids[name] = created.ID
		res.IngredientsCreated++
	}

	existingProducts, err := s.products.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	productNames := make(map[string]struct{}, len(existingProducts))
	for _, p := range existingProducts {
		productNames[p.Name] = struct{}{}
	}
	for _, p := range c.Products {
		name := strings.TrimSpace(p.Name)
		if _, ok := productNames[name]; ok {
			res.ProductsSkipped++
			continue
		}
		req := dto.CreateProductRequest{Name: name, Type: p.Type}
		if req.Price, err = parseDecimal(name+".price", p.Price); err != nil {
			return nil, err
		}
		for _, l := range p.Recipe {
			ingName := usecase.NormalizeName(l.Ingredient)
			id, ok := ids[ingName]
			if !ok {
				ing, err := s.ingredients.GetByName(ctx, ingName)
				if err != nil {
					return nil, fmt.Errorf("producto %s: ingrediente %s: %w", name, ingName, err)
				}
				id = ing.ID
			}
			q, err := parseDecimal(name+".recipe."+ingName, l.Quantity)
			if err != nil {
				return nil, err
			}
			req.Recipe = append(req.Recipe, dto.RecipeLineRequest{IngredientID: id, QuantityRequired: q})
		}
		if _, err := s.products.Create(ctx, req); err != nil {
			return nil, fmt.Errorf("producto %s: %w", name, err)
		}
		productNames[name] = struct{}{}
		res.ProductsCreated++
	}

	for _, u := range c.Users {
		_, err := s.auth.CreateUserWithRole(ctx, dto.RegisterRequest{Email: u.Email, Password: u.Password, Name: u.Name}, u.Role)
		switch {
		case err == nil:
			res.UsersCreated++
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			res.UsersSkipped++
		default:
			return nil, fmt.Errorf("usuario %s: %w", u.Email, err)
		}
	}
	return res, nil
}
