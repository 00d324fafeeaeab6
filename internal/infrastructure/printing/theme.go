package printing

// Page geometry in millimeters, A4 portrait
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	marginX    = 15.0
	marginTop  = 15.0

	// Reserved band at the bottom of every page for the footer pass
	footerSpace = 30.0

	headerBandHeight = 45.0
	logoSize         = 28.0

	introCardHeight    = 60.0
	approvalCardHeight = 70.0

	rowHeight    = 8.0
	tableHeaderH = 9.0
)

const contentWidth = pageWidth - 2*marginX

// RGB is a fill or text color
type RGB struct {
	R, G, B int
}

// Theme holds the report palette
type Theme struct {
	Primary    RGB // header band and card titles
	Accent     RGB // table header fill
	Shade      RGB // alternating row fill
	CardFill   RGB
	Text       RGB
	MutedText  RGB
	Watermark  RGB // confidential footer mark
	TotalsFill RGB
}

// DefaultTheme matches the house style of the printed reports
func DefaultTheme() Theme {
	return Theme{
		Primary:    RGB{R: 18, G: 45, B: 82},
		Accent:     RGB{R: 36, G: 94, B: 150},
		Shade:      RGB{R: 238, G: 243, B: 248},
		CardFill:   RGB{R: 246, G: 248, B: 251},
		Text:       RGB{R: 33, G: 37, B: 41},
		MutedText:  RGB{R: 108, G: 117, B: 125},
		Watermark:  RGB{R: 192, G: 32, B: 32},
		TotalsFill: RGB{R: 222, G: 232, B: 242},
	}
}
