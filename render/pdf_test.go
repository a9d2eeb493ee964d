package render

import (
	"bytes"
	"testing"

	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/ruteri/paper-custody-kit/layout"
	"github.com/stretchr/testify/require"
)

func testPages() []interfaces.PageContent {
	metrics := layout.NewMetrics()
	shield := interfaces.Rect{X: 50, Y: 50, W: 500, H: 300}
	kinds := []interfaces.PageKind{
		interfaces.IntroPage,
		interfaces.InstructionsPage,
		interfaces.DisclosurePage(0),
		interfaces.CoverPage,
		interfaces.InstructionsPage,
		interfaces.DisclosurePage(1),
		interfaces.CoverPage,
	}

	pages := make([]interfaces.PageContent, len(kinds))
	for i, kind := range kinds {
		spec := interfaces.PageSpec{Index: i + 1, Total: len(kinds), Kind: kind}
		content := interfaces.PageContent{Spec: spec, Counter: metrics.Counter(spec.Index)}
		switch {
		case kind.IsDisclosure():
			content.Lines = []interfaces.TextLine{
				{Text: "abandon abandon abandon über", X: layout.WordsMarginX, Y: layout.WordsMarginY, Size: layout.FontMain},
			}
			content.QR = &interfaces.QRBlock{Payload: "5221aabbcc52ae", Box: interfaces.Rect{X: 60, Y: 120, W: layout.QRSize, H: layout.QRSize}}
		case kind.Shields():
			content.Opaque = []interfaces.Rect{shield}
		default:
			content.Lines = []interfaces.TextLine{{Text: "Custody kit", X: layout.MarginX, Y: layout.MarginY, Size: layout.FontMain}}
		}
		pages[i] = content
	}
	return pages
}

func TestPDFRenderer(t *testing.T) {
	for _, rotate := range []bool{true, false} {
		opts := DefaultOptions()
		opts.Rotate180 = rotate
		r := NewPDFRenderer(opts)

		for _, page := range testPages() {
			require.NoError(t, r.RenderPage(page))
		}
		require.Equal(t, 7, r.PageCount())

		var out bytes.Buffer
		require.NoError(t, r.Output(&out))
		require.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	}
}

func TestPDFRenderer_Empty(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions())
	require.ErrorIs(t, r.Output(&bytes.Buffer{}), ErrNoPages)
}

func TestPDFRenderer_RejectsUnprintableText(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions())
	page := testPages()[0]
	page.Lines[0].Text = "lock→Łódź 合約"

	err := r.RenderPage(page)
	require.ErrorIs(t, err, interfaces.ErrConfig)
}
