// Package access define qué puede hacer cada rol: un conjunto de capacidades por rol,
// sin jerarquía. Cada endpoint declara la capacidad que exige.
package access

import "github.com/jhoicas/pos-inventario/internal/domain/entity"

// Capability es una acción autorizable sobre la API.
type Capability int

const (
	ListProducts Capability = iota
	ViewProduct
	ViewCalories
	SellProduct
	ViewProfitability
	AdjustStock
	ManageCatalog
	ViewReports
)

var capabilityNames = map[Capability]string{
	ListProducts:      "list_products",
	ViewProduct:       "view_product",
	ViewCalories:      "view_calories",
	SellProduct:       "sell_product",
	ViewProfitability: "view_profitability",
	AdjustStock:       "adjust_stock",
	ManageCatalog:     "manage_catalog",
	ViewReports:       "view_reports",
}

// String devuelve el nombre estable de la capacidad (mensajes de 403).
func (c Capability) String() string {
	if n, ok := capabilityNames[c]; ok {
		return n
	}
	return "unknown"
}

type capabilitySet map[Capability]struct{}

func setOf(caps ...Capability) capabilitySet {
	s := make(capabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Clientes y empleados comparten capacidades; solo admin ajusta stock y ve rentabilidad.
var roleCapabilities = map[string]capabilitySet{
	entity.RoleAnonimo:  setOf(ListProducts),
	entity.RoleCliente:  setOf(ListProducts, ViewProduct, ViewCalories, SellProduct),
	entity.RoleEmpleado: setOf(ListProducts, ViewProduct, ViewCalories, SellProduct),
	entity.RoleAdmin: setOf(ListProducts, ViewProduct, ViewCalories, SellProduct,
		ViewProfitability, AdjustStock, ManageCatalog, ViewReports),
}

// Allows indica si el rol tiene la capacidad. Roles desconocidos no tienen ninguna.
func Allows(role string, c Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// IsKnownRole indica si el rol se puede asignar a un usuario (el anónimo no).
func IsKnownRole(role string) bool {
	if role == entity.RoleAnonimo {
		return false
	}
	_, ok := roleCapabilities[role]
	return ok
}
