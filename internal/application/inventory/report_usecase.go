package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// ReportUseCase arma el reporte de stock de todos los ingredientes y lo renderiza.
type ReportUseCase struct {
	ingredientRepo repository.IngredientRepository
	generator      StockReportGenerator
	now            func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(ingredientRepo repository.IngredientRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{ingredientRepo: ingredientRepo, generator: generator, now: time.Now}
}

// BuildStockReport devuelve las filas ordenadas por nombre y el valor total del inventario.
func (uc *ReportUseCase) BuildStockReport(ctx context.Context) (*dto.StockReport, error) {
	ingredients, err := uc.ingredientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar ingredientes: %w", err)
	}
	report := &dto.StockReport{
		Title:       "Reporte de inventario",
		GeneratedAt: uc.now(),
		Rows:        make([]dto.StockReportRow, 0, len(ingredients)),
		TotalValue:  decimal.Zero,
	}
	for _, ing := range ingredients {
		value := ing.Stock.Mul(ing.CostPerUnit)
		report.Rows = append(report.Rows, dto.StockReportRow{
			IngredientID:    ing.ID,
			Name:            ing.Name,
			Stock:           ing.Stock,
			CostPerUnit:     ing.CostPerUnit,
			CaloriesPerUnit: ing.CaloriesPerUnit,
			StockValue:      value,
		})
		report.TotalValue = report.TotalValue.Add(value)
	}
	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].Name < report.Rows[j].Name })
	return report, nil
}

// StockReportPDF genera el PDF y su nombre de archivo.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	report, err := uc.BuildStockReport(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateStockReport(report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("inventario_%s.pdf", report.GeneratedAt.Format("20060102_150405")), nil
}
