// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                  │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingrediente | Stock | Costo unit. | Cal. | Valor     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingredientes / Agotados / VALOR DEL INVENTARIO     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/inventory"
)

var _ inventory.StockReportGenerator = (*MarotoStockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoStockReportGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type MarotoStockReportGenerator struct {
	author string
}

// NewMarotoStockReportGenerator construye el generador.
func NewMarotoStockReportGenerator(author string) *MarotoStockReportGenerator {
	return &MarotoStockReportGenerator{author: author}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReport(report *dto.StockReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(strings.ToUpper(report.Title), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock compartido de ingredientes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ingrediente", 4, align.Left),
		h("Stock", 2, align.Right),
		h("Costo unit.", 2, align.Right),
		h("Calorías", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableRows: una fila por ingrediente; los agotados van en rojo.
func tableRows(rows []dto.StockReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		style := props.Text{Size: 8, Top: 1}
		if r.Stock.IsZero() {
			style.Color = colorAlert
		}
		cell := func(s string, a align.Type) core.Component {
			p := style
			p.Align = a
			p.Left, p.Right = 1, 1
			return text.New(s, p)
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(cell(r.Name, align.Left)),
			col.New(2).Add(cell(r.Stock.String(), align.Right)),
			col.New(2).Add(cell("$"+formatMoney(r.CostPerUnit.StringFixed(0)), align.Right)),
			col.New(2).Add(cell(r.CaloriesPerUnit.String(), align.Right)),
			col.New(2).Add(cell("$"+formatMoney(r.StockValue.StringFixed(0)), align.Right)),
		))
	}
	return result
}

func totalsRow(report *dto.StockReport) core.Row {
	outOfStock := 0
	for _, r := range report.Rows {
		if r.Stock.IsZero() {
			outOfStock++
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Ingredientes:"),
			label("Agotados:"),
			text.New("VALOR TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(report.Rows))),
			value(fmt.Sprintf("%d", outOfStock)),
			text.New("$"+formatMoney(report.TotalValue.StringFixed(0)), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
