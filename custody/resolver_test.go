package custody

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/ruteri/paper-custody-kit/layout"
	"github.com/ruteri/paper-custody-kit/texts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTexts struct{}

func (stubTexts) Intro(addressWithLock string, custodians int) string {
	return fmt.Sprintf("Custody kit for %d custodians\nAddress: %s", custodians, addressWithLock)
}
func (stubTexts) Instructions() string { return "Keep it safe.\nDo not look through." }
func (stubTexts) RedeemScriptLabel(script string) string {
	return "Redeem script: " + script
}

var testMetrics = layout.NewMetrics()

var testArtifact = interfaces.RecoveryArtifact{
	Address:         "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
	AddressWithLock: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu locked until 900000",
	RedeemScript:    "5221" + strings.Repeat("02a1b2c3d4", 14) + "52ae",
}

func newTestResolver(t *testing.T, secret interfaces.Secret, custodians int, artifact interfaces.RecoveryArtifact) (*Resolver, []interfaces.Share) {
	t.Helper()
	shares, err := Split(secret, custodians)
	require.NoError(t, err)
	return NewResolver(shares, artifact, stubTexts{}, testMetrics), shares
}

func resolveAll(t *testing.T, r *Resolver, custodians int) []interfaces.PageContent {
	t.Helper()
	s, err := NewPageSequencer(custodians)
	require.NoError(t, err)

	var pages []interfaces.PageContent
	for spec := range s.Pages() {
		content, err := r.Resolve(spec)
		require.NoError(t, err)
		pages = append(pages, content)
	}
	return pages
}

func TestResolver_Disclosure(t *testing.T) {
	secret := testSecret(24)
	r, shares := newTestResolver(t, secret, 2, testArtifact)

	for c, share := range shares {
		content, err := r.Resolve(interfaces.PageSpec{Index: 3 + 3*c, Total: 7, Kind: interfaces.DisclosurePage(c)})
		require.NoError(t, err)

		first, second := share.Lines()
		require.GreaterOrEqual(t, len(content.Lines), 3)
		assert.Equal(t, first, content.Lines[0].Text)
		assert.Equal(t, second, content.Lines[1].Text)
		assert.Equal(t, strings.Join(share.Words[:6], " "), content.Lines[0].Text)

		var script strings.Builder
		for _, l := range content.Lines[2:] {
			script.WriteString(l.Text)
		}
		assert.Equal(t, "Redeemscript:"+testArtifact.RedeemScript, strings.ReplaceAll(script.String(), " ", ""))

		require.NotNil(t, content.QR)
		assert.Equal(t, testArtifact.RedeemScript, content.QR.Payload)
		assert.Empty(t, content.Opaque)

		for _, l := range content.Lines {
			assert.LessOrEqual(t, testMetrics.TextBounds(l).Right(), float64(layout.PageWidth-layout.MarginX)+0.001)
			for _, w := range secret {
				if !containsWord(share.Words, w) {
					assert.NotContains(t, strings.Fields(l.Text), w, "disclosure %d leaks a foreign word", c)
				}
			}
		}
	}
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func TestResolver_CoverContainsDisclosure(t *testing.T) {
	r, _ := newTestResolver(t, testSecret(24), 2, testArtifact)
	pages := resolveAll(t, r, 2)
	require.Len(t, pages, 7)

	for i, page := range pages {
		if !page.Spec.Kind.IsDisclosure() {
			continue
		}
		bounds := testMetrics.ContentBounds(page.Lines, page.QR)
		require.False(t, bounds.Empty())

		cover := pages[i+1]
		require.Equal(t, interfaces.CoverPage, cover.Spec.Kind)
		require.Len(t, cover.Opaque, 1)
		assert.True(t, cover.Opaque[0].StrictlyContains(bounds), "cover %v must contain %v", cover.Opaque[0], bounds)
		assert.Empty(t, cover.Lines)
		assert.Nil(t, cover.QR)

		instructions := pages[i-1]
		require.Equal(t, interfaces.InstructionsPage, instructions.Spec.Kind)
		require.Len(t, instructions.Opaque, 1)
		assert.True(t, instructions.Opaque[0].StrictlyContains(bounds))
		for _, l := range instructions.Lines {
			assert.GreaterOrEqual(t, l.Y, instructions.Opaque[0].Bottom(), "instructions text must not be covered")
		}
	}
}

func TestResolver_Intro(t *testing.T) {
	r, _ := newTestResolver(t, testSecret(24), 2, testArtifact)

	content, err := r.Resolve(interfaces.PageSpec{Index: 1, Total: 7, Kind: interfaces.IntroPage})
	require.NoError(t, err)

	assert.Equal(t, "Custody kit for 2 custodians", content.Lines[0].Text)
	require.NotNil(t, content.QR)
	assert.Equal(t, testArtifact.AddressWithLock, content.QR.Payload)
	assert.Greater(t, content.QR.Box.Y, content.Lines[len(content.Lines)-1].Y)
	assert.Empty(t, content.Opaque)
}

func TestResolver_CounterOnEveryPage(t *testing.T) {
	r, _ := newTestResolver(t, testSecret(24), 2, testArtifact)
	for _, page := range resolveAll(t, r, 2) {
		assert.Equal(t, testMetrics.Counter(page.Spec.Index), page.Counter)
	}
}

func TestResolver_EmptyRedeemScript(t *testing.T) {
	artifact := testArtifact
	artifact.RedeemScript = ""
	artifact.AddressWithLock = ""
	r, _ := newTestResolver(t, testSecret(12), 2, artifact)

	pages := resolveAll(t, r, 2)
	assert.Nil(t, pages[0].QR)
	assert.Nil(t, pages[2].QR)
	bounds := testMetrics.ContentBounds(pages[2].Lines, pages[2].QR)
	assert.True(t, pages[3].Opaque[0].StrictlyContains(bounds))
}

func TestResolver_Pure(t *testing.T) {
	r, _ := newTestResolver(t, testSecret(24), 2, testArtifact)

	first := resolveAll(t, r, 2)
	first[2].Lines[0].Text = "mutated"
	first[2].QR.Payload = "mutated"
	first[3].Opaque[0].W = 0

	second := resolveAll(t, r, 2)
	third := resolveAll(t, r, 2)
	assert.Equal(t, second, third)
	assert.NotEqual(t, "mutated", second[2].Lines[0].Text)
	assert.NotEqual(t, "mutated", second[2].QR.Payload)
	assert.NotZero(t, second[3].Opaque[0].W)
}

func TestResolver_UnknownKind(t *testing.T) {
	r, _ := newTestResolver(t, testSecret(24), 2, testArtifact)

	_, err := r.Resolve(interfaces.PageSpec{Index: 8, Total: 7, Kind: interfaces.DonePage})
	assert.ErrorIs(t, err, interfaces.ErrUnknownPageKind)

	_, err = r.Resolve(interfaces.PageSpec{Kind: interfaces.PageKind{Type: interfaces.PageType(42)}})
	assert.ErrorIs(t, err, interfaces.ErrUnknownPageKind)

	_, err = r.Resolve(interfaces.PageSpec{Kind: interfaces.DisclosurePage(2)})
	assert.ErrorIs(t, err, interfaces.ErrUnknownPageKind)
}

func TestResolver_LocalizedTexts(t *testing.T) {
	catalog, err := texts.New("de")
	require.NoError(t, err)

	shares, err := Split(testSecret(24), 2)
	require.NoError(t, err)
	r := NewResolver(shares, testArtifact, catalog, testMetrics)

	content, err := r.Resolve(interfaces.PageSpec{Index: 3, Total: 7, Kind: interfaces.DisclosurePage(0)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content.Lines[2].Text, "Redeem-Skript:"))
}

// The shield must hide the ink as the printer font draws it, including wide
// uppercase hex digits.
func TestResolver_ShieldCoversPrintedInk(t *testing.T) {
	pdf := fpdf.New("P", "in", "A4", "")
	inkRight := func(l interfaces.TextLine) float64 {
		pdf.SetFont(layout.FontFamily, "", l.Size)
		return l.X + pdf.GetStringWidth(l.Text)*layout.UnitsPerInch
	}

	for _, script := range []string{
		strings.ToUpper(testArtifact.RedeemScript),
		"5221" + strings.Repeat("DDDDDDDDDD", 16) + "52AE",
		strings.Repeat("W", 150),
	} {
		artifact := testArtifact
		artifact.RedeemScript = script
		r, shares := newTestResolver(t, testSecret(24), 2, artifact)
		shield := r.Shield()

		for c := range shares {
			content, err := r.Resolve(interfaces.PageSpec{Index: 3 + 3*c, Total: 7, Kind: interfaces.DisclosurePage(c)})
			require.NoError(t, err)
			for _, l := range content.Lines {
				assert.Less(t, inkRight(l), shield.Right(), "line %q", l.Text)
				assert.Greater(t, l.X, shield.X)
				assert.Greater(t, l.Y, shield.Y)
				assert.Less(t, l.Y+layout.LineHeight(l.Size), shield.Bottom())
				assert.LessOrEqual(t, inkRight(l), float64(layout.PageWidth-layout.MarginX)+0.001)
			}
		}
	}
}
