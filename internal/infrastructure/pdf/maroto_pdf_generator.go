// Package pdf genera la planilla de inscripciones de un evento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Evento                   │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Equipo | Categoría | Responsable | Estado | Cuota│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: equipos confirmados / total recaudado              │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/torneos-admin-api/internal/application/registration"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

var _ registration.RosterPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa registration.RosterPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	orgName string
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador. orgName sale en el encabezado.
func NewMarotoPDFGenerator(orgName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{orgName: orgName, now: time.Now}
}

// GenerateRosterPDF genera la planilla y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRosterPDF(_ context.Context, event string, regs []*entity.Registration) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inscripciones "+event, true).
		WithAuthor(g.orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.orgName, event, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(regs)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(regs))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(orgName, event string, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(orgName, "Torneos"), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorGray, Top: 1,
			}),
			text.New(event, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("PLANILLA DE INSCRIPCIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generada: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Equipo", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Responsable", 3, align.Left),
		h("Estado", 1, align.Center),
		h("Cuota", 2, align.Right),
	)
}

func tableRows(regs []*entity.Registration) []core.Row {
	rows := make([]core.Row, 0, len(regs))
	for i, r := range regs {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(r.Team, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(r.Category, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(r.LeaderName, r.LeaderID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.Status, props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+formatMoney(r.Fee), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(regs []*entity.Registration) core.Row {
	var confirmed int
	total := decimal.Zero
	for _, r := range regs {
		if r.Status == entity.RegistrationCancelled {
			continue
		}
		if r.Status == entity.RegistrationConfirmed {
			confirmed++
		}
		total = total.Add(r.Fee)
	}
	return row.New(14).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Equipos inscritos: %d   |   Confirmados: %d", len(regs), confirmed),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		)),
		col.New(6).Add(text.New("TOTAL CUOTAS: $"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a pesos e inserta puntos de miles.
// Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if len(s) > 0 && s[0] == '-' {
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
