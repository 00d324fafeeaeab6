package printing

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rml/bookkeeper/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// Builder assembles one report document. It owns the page-break policy: every
// block asks for vertical space first, and blocks never intrude into the
// footer band.
type Builder struct {
	pdf     *gofpdf.Fpdf
	theme   Theme
	cfg     config.ReportConfig
	title   string
	hasLogo bool
}

// NewBuilder starts a document. The header band is painted on the first page
// and again on every page break. logo may be nil; the band then renders
// without it.
func NewBuilder(cfg config.ReportConfig, title string, logo []byte) *Builder {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, footerSpace)

	b := &Builder{
		pdf:   pdf,
		theme: DefaultTheme(),
		cfg:   cfg,
		title: title,
	}
	if len(logo) > 0 {
		pdf.RegisterImageOptionsReader("logo",
			gofpdf.ImageOptions{ImageType: "PNG"},
			bytes.NewReader(logo))
		b.hasLogo = pdf.Ok()
		if !b.hasLogo {
			pdf.ClearError()
		}
	}

	pdf.AddPage()
	b.headerBand()
	return b
}

// breakPage starts a new page and repaints the header band on it
func (b *Builder) breakPage() {
	b.pdf.AddPage()
	b.headerBand()
}

// headerBand paints the full-width band with logo and organization identity
func (b *Builder) headerBand() {
	p := b.theme.Primary
	b.pdf.SetFillColor(p.R, p.G, p.B)
	b.pdf.Rect(0, 0, pageWidth, headerBandHeight, "F")

	textX := marginX
	if b.hasLogo {
		b.pdf.ImageOptions("logo", marginX, 8, logoSize, logoSize, false,
			gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		textX = marginX + logoSize + 6
	}

	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.SetFont("Helvetica", "B", 18)
	b.pdf.Text(textX, 18, b.cfg.OrgName)
	b.pdf.SetFont("Helvetica", "", 11)
	b.pdf.Text(textX, 26, b.cfg.OrgTagline)
	b.pdf.SetFont("Helvetica", "B", 14)
	b.pdf.Text(textX, 37, b.title)

	b.resetText()
	b.pdf.SetY(headerBandHeight + 8)
}

func (b *Builder) resetText() {
	t := b.theme.Text
	b.pdf.SetTextColor(t.R, t.G, t.B)
}

// EnsureSpace breaks to a new page when fewer than h millimeters remain above
// the footer band
func (b *Builder) EnsureSpace(h float64) {
	if b.pdf.GetY()+h > pageHeight-footerSpace {
		b.breakPage()
	}
}

// IntroCard renders the report metadata card under the header
func (b *Builder) IntroCard(reportName, period string, generatedAt time.Time) {
	b.EnsureSpace(introCardHeight + 6)
	y := b.pdf.GetY()

	f := b.theme.CardFill
	b.pdf.SetFillColor(f.R, f.G, f.B)
	b.pdf.RoundedRect(marginX, y, contentWidth, introCardHeight, 3, "1234", "F")

	p := b.theme.Primary
	b.pdf.SetTextColor(p.R, p.G, p.B)
	b.pdf.SetFont("Helvetica", "B", 13)
	b.pdf.Text(marginX+8, y+12, reportName)

	b.resetText()
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.Text(marginX+8, y+24, "Period: "+period)
	b.pdf.Text(marginX+8, y+32, "Generated: "+generatedAt.Format("2006-01-02 15:04"))
	b.pdf.Text(marginX+8, y+40, "Prepared for internal review")

	m := b.theme.MutedText
	b.pdf.SetTextColor(m.R, m.G, m.B)
	b.pdf.SetFont("Helvetica", "I", 9)
	b.pdf.Text(marginX+8, y+52, "Figures are drawn from the live books at generation time.")

	b.resetText()
	b.pdf.SetY(y + introCardHeight + 8)
}

// KV is one line in a summary card
type KV struct {
	Key   string
	Value string
}

// SummaryCard renders a titled metrics card sized to its lines
func (b *Builder) SummaryCard(title string, lines []KV) {
	height := 20.0 + float64(len(lines))*rowHeight
	b.EnsureSpace(height + 6)
	y := b.pdf.GetY()

	f := b.theme.CardFill
	b.pdf.SetFillColor(f.R, f.G, f.B)
	b.pdf.RoundedRect(marginX, y, contentWidth, height, 3, "1234", "F")

	p := b.theme.Primary
	b.pdf.SetTextColor(p.R, p.G, p.B)
	b.pdf.SetFont("Helvetica", "B", 12)
	b.pdf.Text(marginX+8, y+11, title)

	b.resetText()
	lineY := y + 20.0
	for _, kv := range lines {
		b.pdf.SetFont("Helvetica", "", 10)
		b.pdf.Text(marginX+8, lineY+5, kv.Key)
		b.pdf.SetFont("Helvetica", "B", 10)
		valueW := b.pdf.GetStringWidth(kv.Value)
		b.pdf.Text(marginX+contentWidth-8-valueW, lineY+5, kv.Value)
		lineY += rowHeight
	}
	b.pdf.SetY(y + height + 8)
}

// SectionTitle renders a heading above a table or card group
func (b *Builder) SectionTitle(title string) {
	b.EnsureSpace(14)
	p := b.theme.Primary
	b.pdf.SetTextColor(p.R, p.G, p.B)
	b.pdf.SetFont("Helvetica", "B", 13)
	b.pdf.Text(marginX, b.pdf.GetY()+8, title)
	b.resetText()
	b.pdf.SetY(b.pdf.GetY() + 12)
}

// ApprovalCard renders the sign-off block with signature lines
func (b *Builder) ApprovalCard() {
	b.EnsureSpace(approvalCardHeight + 6)
	y := b.pdf.GetY()

	f := b.theme.CardFill
	b.pdf.SetFillColor(f.R, f.G, f.B)
	b.pdf.RoundedRect(marginX, y, contentWidth, approvalCardHeight, 3, "1234", "F")

	p := b.theme.Primary
	b.pdf.SetTextColor(p.R, p.G, p.B)
	b.pdf.SetFont("Helvetica", "B", 12)
	b.pdf.Text(marginX+8, y+11, "Approval")

	b.resetText()
	b.pdf.SetFont("Helvetica", "", 10)
	half := contentWidth / 2

	b.pdf.Text(marginX+8, y+28, "Prepared by: "+b.cfg.PreparedBy)
	b.pdf.Text(marginX+8+half, y+28, "Approved by: "+b.cfg.ApprovedBy)

	b.pdf.SetDrawColor(120, 120, 120)
	b.pdf.SetLineWidth(0.3)
	b.pdf.Line(marginX+8, y+50, marginX+half-12, y+50)
	b.pdf.Line(marginX+8+half, y+50, marginX+contentWidth-12, y+50)

	m := b.theme.MutedText
	b.pdf.SetTextColor(m.R, m.G, m.B)
	b.pdf.SetFont("Helvetica", "", 8)
	b.pdf.Text(marginX+8, y+56, "Signature / Date")
	b.pdf.Text(marginX+8+half, y+56, "Signature / Date")

	b.resetText()
	b.pdf.SetY(y + approvalCardHeight + 8)
}

// Finish runs the footer pass over every page and returns the document bytes
func (b *Builder) Finish() ([]byte, error) {
	b.footerPass()

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// footerPass revisits every page once the total count is known
func (b *Builder) footerPass() {
	total := b.pdf.PageCount()
	for i := 1; i <= total; i++ {
		b.pdf.SetPage(i)
		y := pageHeight - 12.0

		m := b.theme.MutedText
		b.pdf.SetDrawColor(m.R, m.G, m.B)
		b.pdf.SetLineWidth(0.2)
		b.pdf.Line(marginX, y-6, pageWidth-marginX, y-6)

		b.pdf.SetTextColor(m.R, m.G, m.B)
		b.pdf.SetFont("Helvetica", "", 8)
		b.pdf.Text(marginX, y, b.cfg.OrgName)

		w := b.theme.Watermark
		b.pdf.SetTextColor(w.R, w.G, w.B)
		b.pdf.SetFont("Helvetica", "B", 8)
		mark := b.cfg.Confidential
		b.pdf.Text((pageWidth-b.pdf.GetStringWidth(mark))/2, y, mark)

		b.pdf.SetTextColor(m.R, m.G, m.B)
		b.pdf.SetFont("Helvetica", "", 8)
		page := fmt.Sprintf("Page %d of %d", i, total)
		b.pdf.Text(pageWidth-marginX-b.pdf.GetStringWidth(page), y, page)
	}
	b.resetText()
}

// Amount formats a decimal with thousands separators and the currency label
func (b *Builder) Amount(d decimal.Decimal) string {
	return formatThousands(d.StringFixed(2)) + " " + b.cfg.Currency
}

// Count formats an integer with thousands separators
func (b *Builder) Count(n int) string {
	return formatThousands(fmt.Sprintf("%d", n))
}

func formatThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	result := out.String() + frac
	if neg {
		result = "-" + result
	}
	return result
}
