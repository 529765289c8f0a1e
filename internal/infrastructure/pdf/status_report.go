// Package pdf genera el reporte imprimible del estado del inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / stock total / High / Medium / Low      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Stock | Demanda | Días | RF | Riesgo │
//	│         | Última acción                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: decisiones registradas                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
	"github.com/jhoicas/stockout-agent/internal/application/inventory"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

var _ inventory.StatusReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHigh    = &props.Color{Red: 192, Green: 0, Blue: 0}
	colorMedium  = &props.Color{Red: 204, Green: 122, Blue: 0}
	colorLow     = &props.Color{Red: 0, Green: 128, Blue: 64}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.StatusReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title   string
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador; title aparece en el encabezado y en los metadatos.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Stock Status"
	}
	return &MarotoPDFGenerator{title: title, printer: message.NewPrinter(language.English)}
}

// GenerateStatusPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatusPDF(
	ctx context.Context,
	generatedAt time.Time,
	rows []dto.StatusRow,
	summary dto.StatusSummary,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stockout risk and reorder decisions", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) summaryRow(s dto.StatusSummary) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: c, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Products", g.printer.Sprintf("%d", s.TotalProducts), colorPrimary),
		cell("Total stock", g.printer.Sprintf("%d", s.TotalStock), colorPrimary),
		cell("High", g.printer.Sprintf("%d", s.HighRisk), colorHigh),
		cell("Medium", g.printer.Sprintf("%d", s.MediumRisk), colorMedium),
		cell("Low", g.printer.Sprintf("%d", s.LowRisk), colorLow),
		cell("Decisions", g.printer.Sprintf("%d", s.DecisionsLogged), colorPrimary),
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
		h("ID", 1, align.Left),
		h("Product", 3, align.Left),
		h("Stock", 1, align.Right),
		h("Demand/day", 1, align.Right),
		h("Days", 1, align.Right),
		h("Risk factor", 1, align.Right),
		h("Risk", 1, align.Center),
		h("Last action", 3, align.Left),
	)
}

// tableRows una fila por producto, en el orden del inventario.
func (g *MarotoPDFGenerator) tableRows(rows []dto.StatusRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(r.ProductID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(r.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", r.CurrentStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%.2f", r.DailyDemand), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(ratio(r.DaysOfStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(ratio(r.RiskFactor), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(string(r.RiskLevel), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: riskColor(r.RiskLevel),
			})),
			col.New(3).Add(text.New(r.LastAction, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) footerRow(s dto.StatusSummary) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			g.printer.Sprintf("Risk is recalculated from current stock at generation time. %d decisions in the log.", s.DecisionsLogged),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func riskColor(l entity.RiskLevel) *props.Color {
	switch l {
	case entity.RiskHigh:
		return colorHigh
	case entity.RiskMedium:
		return colorMedium
	default:
		return colorLow
	}
}

// ratio muestra "unbounded" para razones no acotadas y 2 decimales para el resto.
func ratio(r entity.Ratio) string {
	v, ok := r.Value()
	if !ok {
		return "unbounded"
	}
	return fmt.Sprintf("%.2f", v)
}
