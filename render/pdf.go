package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/ruteri/paper-custody-kit/layout"
	"github.com/ruteri/paper-custody-kit/qr"
)

var ErrNoPages = errors.New("document has no pages")

// Options configure the generated document.
type Options struct {
	// Rotate180 turns every page upside down so it comes out of printers that
	// feed the sheet face up in reading order.
	Rotate180 bool

	// QRPixels is the edge length of the embedded QR images.
	QRPixels int

	Title string
}

func DefaultOptions() Options {
	return Options{Rotate180: true, QRPixels: qr.DefaultPixels, Title: "Custody kit"}
}

// PDFRenderer draws pages into a single A4 PDF document held in memory.
type PDFRenderer struct {
	pdf       *fpdf.Fpdf
	opts      Options
	translate func(string) string
}

func NewPDFRenderer(opts Options) *PDFRenderer {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: layout.PageWidth / layout.UnitsPerInch, Ht: layout.PageHeight / layout.UnitsPerInch},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("kitprinter", false)

	if opts.QRPixels <= 0 {
		opts.QRPixels = qr.DefaultPixels
	}

	return &PDFRenderer{
		pdf:       pdf,
		opts:      opts,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// RenderPage appends one page. Opaque regions are painted first, then text
// and the QR code.
func (r *PDFRenderer) RenderPage(content interfaces.PageContent) error {
	r.pdf.AddPage()

	if r.opts.Rotate180 {
		r.pdf.TransformBegin()
		r.pdf.TransformRotate(180, inches(layout.PageWidth/2.0), inches(layout.PageHeight/2.0))
	}

	r.pdf.SetFillColor(0, 0, 0)
	for _, rect := range content.Opaque {
		r.pdf.Rect(inches(rect.X), inches(rect.Y), inches(rect.W), inches(rect.H), "F")
	}

	for _, line := range append([]interfaces.TextLine{content.Counter}, content.Lines...) {
		if err := r.text(line); err != nil {
			return fmt.Errorf("page %d: %w", content.Spec.Index, err)
		}
	}

	if content.QR != nil {
		if err := r.image(content.Spec.Index, content.QR); err != nil {
			return err
		}
	}

	if r.opts.Rotate180 {
		r.pdf.TransformEnd()
	}

	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render page %d: %w", content.Spec.Index, err)
	}
	return nil
}

// text refuses characters the core font would replace, so the printed label
// always matches its QR payload.
func (r *PDFRenderer) text(line interfaces.TextLine) error {
	if line.Text == "" {
		return nil
	}
	if err := layout.CheckPrintable(line.Text); err != nil {
		return err
	}
	r.pdf.SetFont(layout.FontFamily, "", line.Size)
	r.pdf.Text(inches(line.X), inches(line.Y+layout.Baseline(line.Size)), r.translate(line.Text))
	return nil
}

func (r *PDFRenderer) image(page int, block *interfaces.QRBlock) error {
	png, err := qr.Encode(block.Payload, r.opts.QRPixels)
	if err != nil {
		return fmt.Errorf("page %d: %w", page, err)
	}

	name := fmt.Sprintf("qr-%d", page)
	options := fpdf.ImageOptions{ImageType: "PNG"}
	r.pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(png))
	r.pdf.ImageOptions(name, inches(block.Box.X), inches(block.Box.Y), inches(block.Box.W), inches(block.Box.H), false, options, 0, "")
	return nil
}

// PageCount returns the number of pages rendered so far.
func (r *PDFRenderer) PageCount() int {
	return r.pdf.PageCount()
}

// Output writes the finished document. The renderer can not be used after.
func (r *PDFRenderer) Output(w io.Writer) error {
	if r.pdf.PageCount() == 0 {
		return ErrNoPages
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func inches(units float64) float64 {
	return units / layout.UnitsPerInch
}
