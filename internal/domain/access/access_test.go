package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-inventario/internal/domain/access"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

func TestAllows_MatrizDeRoles(t *testing.T) {
	tests := []struct {
		role    string
		allowed []access.Capability
		denied  []access.Capability
	}{
		{
			role:    entity.RoleAnonimo,
			allowed: []access.Capability{access.ListProducts},
			denied: []access.Capability{access.ViewProduct, access.ViewCalories, access.SellProduct,
				access.ViewProfitability, access.AdjustStock, access.ManageCatalog, access.ViewReports},
		},
		{
			role:    entity.RoleCliente,
			allowed: []access.Capability{access.ListProducts, access.ViewProduct, access.ViewCalories, access.SellProduct},
			denied:  []access.Capability{access.ViewProfitability, access.AdjustStock, access.ManageCatalog, access.ViewReports},
		},
		{
			role:    entity.RoleEmpleado,
			allowed: []access.Capability{access.ListProducts, access.ViewProduct, access.ViewCalories, access.SellProduct},
			denied:  []access.Capability{access.ViewProfitability, access.AdjustStock, access.ManageCatalog, access.ViewReports},
		},
		{
			role: entity.RoleAdmin,
			allowed: []access.Capability{access.ListProducts, access.ViewProduct, access.ViewCalories, access.SellProduct,
				access.ViewProfitability, access.AdjustStock, access.ManageCatalog, access.ViewReports},
		},
	}
	for _, tt := range tests {
		t.Run("rol="+tt.role, func(t *testing.T) {
			for _, c := range tt.allowed {
				assert.True(t, access.Allows(tt.role, c), "%q debe tener %s", tt.role, c)
			}
			for _, c := range tt.denied {
				assert.False(t, access.Allows(tt.role, c), "%q no debe tener %s", tt.role, c)
			}
		})
	}
}

func TestAllows_RolDesconocidoSinCapacidades(t *testing.T) {
	assert.False(t, access.Allows("bodeguero", access.ListProducts))
	assert.False(t, access.Allows("superuser", access.SellProduct))
}

func TestIsKnownRole(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleEmpleado, entity.RoleCliente} {
		assert.True(t, access.IsKnownRole(role), role)
	}
	assert.False(t, access.IsKnownRole(entity.RoleAnonimo))
	assert.False(t, access.IsKnownRole("superuser"))
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "sell_product", access.SellProduct.String())
	assert.Equal(t, "adjust_stock", access.AdjustStock.String())
	assert.Equal(t, "unknown", access.Capability(99).String())
}
