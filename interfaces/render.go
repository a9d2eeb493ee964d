package interfaces

import (
	"context"
	"io"
)

// Coordinates and sizes are expressed in hundredths of an inch from the
// top-left corner of the page.

// Rect is an axis aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x, y := min(r.X, o.X), min(r.Y, o.Y)
	return Rect{X: x, Y: y, W: max(r.Right(), o.Right()) - x, H: max(r.Bottom(), o.Bottom()) - y}
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// StrictlyContains reports whether o lies inside r without touching any edge.
func (r Rect) StrictlyContains(o Rect) bool {
	return r.X < o.X && r.Y < o.Y && r.Right() > o.Right() && r.Bottom() > o.Bottom()
}

// TextLine is a single line of text anchored at its top-left corner.
type TextLine struct {
	Text string
	X, Y float64

	// Size is the font size in points.
	Size float64
}

// QRBlock asks the renderer to draw Payload as a QR code scaled into Box.
type QRBlock struct {
	Payload string
	Box     Rect
}

// PageContent is everything the renderer needs to paint one page. It carries
// no drawing logic.
type PageContent struct {
	Spec    PageSpec
	Counter TextLine
	Lines   []TextLine
	QR      *QRBlock

	// Opaque regions are painted solid black before any text.
	Opaque []Rect
}

// PageRenderer paints resolved pages, one call per physical page, in order.
type PageRenderer interface {
	RenderPage(content PageContent) error
}

// Spooler hands a finished document to a printer.
type Spooler interface {
	// Spool blocks until the print system accepted the document.
	Spool(ctx context.Context, title string, document io.Reader) error

	// Name returns the printer identifier for logging.
	Name() string
}
