// Package layout holds the fixed page geometry of the custody kit.
//
// All values are hundredths of an inch on an A4 sheet, measured from the
// top-left corner. There is no layout engine: every element sits at a fixed
// coordinate and only vertical advance depends on content. Text is measured
// with the same core font metrics the renderer prints with.
package layout

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/ruteri/paper-custody-kit/interfaces"
	"golang.org/x/text/encoding/charmap"
)

const (
	PageWidth  = 827
	PageHeight = 1169

	RightCornerMarginX = 20
	MarginX            = 40
	MarginY            = 40
	WordsMarginX       = 60
	WordsMarginY       = 60
	IntervalY          = 20
	SmallIntervalY     = 14

	// QRSize is the edge of the square box every QR code is scaled into.
	QRSize = 200

	// ShieldPadding is added on every side of the disclosure bounding box.
	ShieldPadding = 10

	FontFamily = "Helvetica"
	FontMain   = 10.0
	FontSmall  = 8.0

	UnitsPerInch  = 100.0
	PointsPerInch = 72.0
)

// Baseline returns the distance from the top of a line to its baseline. A
// full em keeps accented capitals below the line top, and the descenders of
// both font sizes stay within LineHeight.
func Baseline(size float64) float64 {
	return size * UnitsPerInch / PointsPerInch
}

// LineHeight returns the vertical advance used for lines of the given font size.
func LineHeight(size float64) float64 {
	if size <= FontSmall {
		return SmallIntervalY
	}
	return IntervalY
}

// CheckPrintable reports whether every character of text can be printed with
// the core font. Anything else would be silently replaced on paper.
func CheckPrintable(text string) error {
	for i, r := range []rune(text) {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%w: unprintable character %U at position %d", interfaces.ErrConfig, r, i)
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return fmt.Errorf("%w: character %q at position %d cannot be printed", interfaces.ErrConfig, r, i)
		}
	}
	return nil
}

// PrintableArea spans the sheet inside the horizontal margins.
func PrintableArea() interfaces.Rect {
	return interfaces.Rect{X: MarginX, Y: MarginY, W: PageWidth - 2*MarginX, H: PageHeight - 2*MarginY}
}

// Metrics measures text with the Helvetica widths fpdf embeds for its core
// fonts. It is safe for concurrent use.
type Metrics struct {
	mu        sync.Mutex
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func NewMetrics() *Metrics {
	pdf := fpdf.New("P", "in", "A4", "")
	pdf.SetFont(FontFamily, "", FontMain)
	return &Metrics{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Width returns the advance of text at the given font size.
func (m *Metrics) Width(text string, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pdf.SetFontSize(size)
	return m.pdf.GetStringWidth(m.translate(text)) * UnitsPerInch
}

// MaxWidth returns the room on a line starting at x.
func MaxWidth(x float64) float64 {
	return PageWidth - MarginX - x
}

// TextBounds returns the rectangle occupied by a line.
func (m *Metrics) TextBounds(l interfaces.TextLine) interfaces.Rect {
	return interfaces.Rect{
		X: l.X,
		Y: l.Y,
		W: m.Width(l.Text, l.Size),
		H: LineHeight(l.Size),
	}
}

// ContentBounds returns the union of the text and QR rectangles of a page.
// The page counter is not included.
func (m *Metrics) ContentBounds(lines []interfaces.TextLine, qr *interfaces.QRBlock) interfaces.Rect {
	var bounds interfaces.Rect
	for _, l := range lines {
		bounds = bounds.Union(m.TextBounds(l))
	}
	if qr != nil {
		bounds = bounds.Union(qr.Box)
	}
	return bounds
}

// Counter returns the page number line, right aligned in the top-right corner.
func (m *Metrics) Counter(index int) interfaces.TextLine {
	text := strconv.Itoa(index)
	return interfaces.TextLine{
		Text: text,
		X:    PageWidth - RightCornerMarginX - m.Width(text, FontMain),
		Y:    MarginY,
		Size: FontMain,
	}
}

// Wrap breaks text into lines no wider than the room left of x, preferring
// word boundaries and hard-splitting tokens longer than a line. Explicit
// newlines are kept.
func (m *Metrics) Wrap(text string, x, size float64) []string {
	maxWidth := MaxWidth(x)
	fits := func(s string) bool { return m.Width(s, size) <= maxWidth }

	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		out = append(out, wrapParagraph(para, fits)...)
	}
	return out
}

func wrapParagraph(para string, fits func(string) bool) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := ""
	for _, w := range words {
		word := []rune(w)
		for !fits(string(word)) && len(word) > 1 {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			n := longestFittingPrefix(word, fits)
			lines = append(lines, string(word[:n]))
			word = word[n:]
		}
		switch {
		case cur == "":
			cur = string(word)
		case fits(cur + " " + string(word)):
			cur += " " + string(word)
		default:
			lines = append(lines, cur)
			cur = string(word)
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// longestFittingPrefix never returns less than one rune so wrapping always
// makes progress.
func longestFittingPrefix(word []rune, fits func(string) bool) int {
	n := 1
	for n < len(word) && fits(string(word[:n+1])) {
		n++
	}
	return n
}
