// Package pdf genera el comprovante de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa  │  N° Venda + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CPF/CNPJ + contacto                      │
//	│  VENDEDOR / PAGAMENTO                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qtd | Produto | P.Unit | Desc. | Subtotal            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Desconto / Acréscimo / TOTAL            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/micro-erp/internal/application/sales"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/pkg/taxid"
)

var _ sales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

var statusLabels = map[entity.SaleStatus]string{
	entity.SaleQuote:     "Orçamento",
	entity.SaleConfirmed: "Confirmada",
	entity.SaleInstalled: "Instalada",
	entity.SaleCancelled: "Cancelada",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	companyName string
}

// NewReceiptGenerator construye el generador; companyName encabeza el documento.
func NewReceiptGenerator(companyName string) *ReceiptGenerator {
	return &ReceiptGenerator{companyName: companyName}
}

// GenerateSaleReceipt genera el PDF y devuelve sus bytes. customer puede ser nil.
func (g *ReceiptGenerator) GenerateSaleReceipt(_ context.Context, sale *entity.Sale, customer *entity.Customer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de venda "+sale.Number, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale, customer))
	m.AddRows(saleInfoRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	if sale.Notes != nil && *sale.Notes != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Observações: "+*sale.Notes, props.Text{Size: 8, Top: 3, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y N° de venda + fecha (der).
func headerRow(company string, sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+sale.SaleDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: nombre y documento del cliente.
func customerRow(sale *entity.Sale, c *entity.Customer) core.Row {
	name := sale.CustomerName
	doc, contact := "-", "-"
	if c != nil {
		name = c.DisplayName()
		doc = customerDocument(c)
		contact = nonEmpty(deref(c.Mobile), nonEmpty(deref(c.Phone), nonEmpty(deref(c.Email), "-")))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   Contato: %s", doc, contact),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// saleInfoRow: vendedor, forma de pagamento y status.
func saleInfoRow(sale *entity.Sale) core.Row {
	payment := sale.PaymentMethod
	if sale.Installments > 1 {
		payment = fmt.Sprintf("%s (%dx)", payment, sale.Installments)
	}
	info := fmt.Sprintf("Vendedor: %s   |   Pagamento: %s   |   Status: %s",
		nonEmpty(sale.SalespersonName, "-"), payment, statusLabels[sale.Status])
	return row.New(9).Add(col.New(12).Add(
		text.New(info, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 5, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Desc.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por item de la venta.
func tableItemRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if it.ProductCode != "" {
			name = it.ProductCode + " - " + name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatBRL(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatBRL(it.ItemDiscount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatBRL(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 20}

	return row.New(28).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Desconto:", 7),
			label("Acréscimo:", 13),
			text.New("TOTAL:", grand),
		),
		col.New(3).Add(
			value(FormatBRL(sale.Subtotal), 1),
			value(FormatBRL(sale.Discount), 7),
			value(FormatBRL(sale.Surcharge), 13),
			text.New(FormatBRL(sale.Total), grand),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatBRL formatea un valor en reais: 1234.5 → "R$ 1.234,50".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + brl.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func customerDocument(c *entity.Customer) string {
	if c.PersonType == entity.PersonCompany {
		return "CNPJ " + taxid.FormatCNPJ(deref(c.CNPJ))
	}
	return "CPF " + taxid.FormatCPF(deref(c.CPF))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
