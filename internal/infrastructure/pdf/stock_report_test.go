package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
)

func TestGenerateStockReport_ProducePDF(t *testing.T) {
	g := NewMarotoStockReportGenerator("pos-inventario")
	report := &dto.StockReport{
		Title:       "Reporte de inventario",
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Rows: []dto.StockReportRow{
			{IngredientID: "bun", Name: "Bun", Stock: decimal.NewFromInt(40), CostPerUnit: decimal.NewFromInt(800), CaloriesPerUnit: decimal.NewFromInt(150), StockValue: decimal.NewFromInt(32000)},
			{IngredientID: "patty", Name: "Patty", Stock: decimal.Zero, CostPerUnit: decimal.NewFromInt(2500), CaloriesPerUnit: decimal.NewFromInt(250), StockValue: decimal.Zero},
		},
		TotalValue: decimal.NewFromInt(32000),
	}

	out, err := g.GenerateStockReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStockReport_Nil(t *testing.T) {
	_, err := NewMarotoStockReportGenerator("x").GenerateStockReport(nil)
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"-1500":   "-1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}
