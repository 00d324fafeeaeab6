package printing

// TotalLabel in the first cell of a row switches the row to the totals style
const TotalLabel = "TOTAL"

// Table is a column layout plus rows. Widths are fractions of the content
// width and should sum to 1.
type Table struct {
	Headers []string
	Widths  []float64
	Aligns  []string // per-column "L", "C" or "R"; empty means left
	Rows    [][]string
}

func (t Table) align(col int) string {
	if col < len(t.Aligns) && t.Aligns[col] != "" {
		return t.Aligns[col]
	}
	return "L"
}

// AddTable renders the table with a repeated header after every page break,
// alternating row shading, and the totals style for rows labeled TOTAL. An
// empty table renders the placeholder line instead.
func (b *Builder) AddTable(t Table) {
	if len(t.Rows) == 0 {
		b.placeholder()
		return
	}

	widths := make([]float64, len(t.Widths))
	for i, w := range t.Widths {
		widths[i] = w * contentWidth
	}

	b.EnsureSpace(tableHeaderH + rowHeight)
	b.tableHeader(t, widths)

	for i, row := range t.Rows {
		isTotal := len(row) > 0 && row[0] == TotalLabel

		if b.pdf.GetY()+rowHeight > pageHeight-footerSpace {
			b.breakPage()
			b.tableHeader(t, widths)
		}

		switch {
		case isTotal:
			f := b.theme.TotalsFill
			b.pdf.SetFillColor(f.R, f.G, f.B)
			b.pdf.SetFont("Helvetica", "B", 15)
		case i%2 == 1:
			f := b.theme.Shade
			b.pdf.SetFillColor(f.R, f.G, f.B)
			b.pdf.SetFont("Helvetica", "", 9)
		default:
			b.pdf.SetFillColor(255, 255, 255)
			b.pdf.SetFont("Helvetica", "", 9)
		}

		b.pdf.SetX(marginX)
		for col, cell := range row {
			last := col == len(row)-1
			ln := 0
			if last {
				ln = 1
			}
			b.pdf.CellFormat(widths[col], rowHeight, cell, "", ln, t.align(col), true, 0, "")
		}
	}
	b.pdf.SetY(b.pdf.GetY() + 6)
}

func (b *Builder) tableHeader(t Table, widths []float64) {
	a := b.theme.Accent
	b.pdf.SetFillColor(a.R, a.G, a.B)
	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.SetFont("Helvetica", "B", 10)

	b.pdf.SetX(marginX)
	for col, h := range t.Headers {
		last := col == len(t.Headers)-1
		ln := 0
		if last {
			ln = 1
		}
		b.pdf.CellFormat(widths[col], tableHeaderH, h, "", ln, t.align(col), true, 0, "")
	}
	b.resetText()
}

// placeholder renders the empty-section line
func (b *Builder) placeholder() {
	b.EnsureSpace(14)
	m := b.theme.MutedText
	b.pdf.SetTextColor(m.R, m.G, m.B)
	b.pdf.SetFont("Helvetica", "I", 10)
	b.pdf.Text(marginX, b.pdf.GetY()+8, "No data available for this section")
	b.resetText()
	b.pdf.SetY(b.pdf.GetY() + 14)
}
