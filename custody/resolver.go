package custody

import (
	"fmt"
	"slices"

	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/ruteri/paper-custody-kit/layout"
)

// Texts supplies the localized strings printed on the kit.
type Texts interface {
	Intro(addressWithLock string, custodians int) string
	Instructions() string
	RedeemScriptLabel(script string) string
}

// Resolver decides what each page shows. It is built once per job, keeps no
// mutable state and never draws anything itself.
type Resolver struct {
	artifact     interfaces.RecoveryArtifact
	texts        Texts
	metrics      *layout.Metrics
	disclosures  []interfaces.PageContent
	instructions []interfaces.TextLine
	intro        interfaces.PageContent
	shield       interfaces.Rect
}

// NewResolver lays out every page up front. The shield painted by cover and
// instructions pages strictly contains the bounding box of every disclosure
// page as measured by metrics.
func NewResolver(shares []interfaces.Share, artifact interfaces.RecoveryArtifact, texts Texts, metrics *layout.Metrics) *Resolver {
	r := &Resolver{artifact: artifact, texts: texts, metrics: metrics}

	var disclosed interfaces.Rect
	r.disclosures = make([]interfaces.PageContent, len(shares))
	for _, share := range shares {
		content := r.layoutDisclosure(share)
		disclosed = disclosed.Union(metrics.ContentBounds(content.Lines, content.QR))
		r.disclosures[share.Custodian] = content
	}

	r.shield = disclosed.Expand(layout.ShieldPadding)
	r.intro = r.layoutIntro(len(shares))
	r.instructions = r.layoutInstructions()
	return r
}

// Shield returns the opaque region painted on cover and instructions pages.
func (r *Resolver) Shield() interfaces.Rect {
	return r.shield
}

// Resolve returns the content of the given page. The result shares no memory
// with the resolver, so callers may modify it.
func (r *Resolver) Resolve(spec interfaces.PageSpec) (interfaces.PageContent, error) {
	var content interfaces.PageContent

	switch spec.Kind.Type {
	case interfaces.PageIntro:
		content = cloneContent(r.intro)
	case interfaces.PageInstructions:
		content = interfaces.PageContent{
			Lines:  slices.Clone(r.instructions),
			Opaque: []interfaces.Rect{r.shield},
		}
	case interfaces.PageDisclosure:
		c := spec.Kind.Custodian
		if c < 0 || c >= len(r.disclosures) {
			return interfaces.PageContent{}, fmt.Errorf("%w: %s with %d custodians", interfaces.ErrUnknownPageKind, spec.Kind, len(r.disclosures))
		}
		content = cloneContent(r.disclosures[c])
	case interfaces.PageCover:
		content = interfaces.PageContent{Opaque: []interfaces.Rect{r.shield}}
	default:
		return interfaces.PageContent{}, fmt.Errorf("%w: %s", interfaces.ErrUnknownPageKind, spec.Kind)
	}

	content.Spec = spec
	content.Counter = r.metrics.Counter(spec.Index)
	return content, nil
}

func (r *Resolver) layoutIntro(custodians int) interfaces.PageContent {
	var content interfaces.PageContent
	y := float64(layout.MarginY)
	for _, line := range r.metrics.Wrap(r.texts.Intro(r.artifact.AddressWithLock, custodians), layout.MarginX, layout.FontMain) {
		content.Lines = append(content.Lines, interfaces.TextLine{Text: line, X: layout.MarginX, Y: y, Size: layout.FontMain})
		y += layout.IntervalY
	}
	if r.artifact.AddressWithLock != "" {
		content.QR = &interfaces.QRBlock{
			Payload: r.artifact.AddressWithLock,
			Box:     interfaces.Rect{X: layout.MarginX, Y: y + layout.IntervalY, W: layout.QRSize, H: layout.QRSize},
		}
	}
	return content
}

// layoutDisclosure places the share as two lines, then the redeem script
// wrapped to the printable width, then the redeem script QR code.
func (r *Resolver) layoutDisclosure(share interfaces.Share) interfaces.PageContent {
	var content interfaces.PageContent
	y := float64(layout.WordsMarginY)
	add := func(text string) {
		content.Lines = append(content.Lines, interfaces.TextLine{Text: text, X: layout.WordsMarginX, Y: y, Size: layout.FontMain})
		y += layout.IntervalY
	}

	first, second := share.Lines()
	for _, text := range []string{first, second} {
		for _, line := range r.metrics.Wrap(text, layout.WordsMarginX, layout.FontMain) {
			add(line)
		}
	}
	for _, line := range r.metrics.Wrap(r.texts.RedeemScriptLabel(r.artifact.RedeemScript), layout.WordsMarginX, layout.FontMain) {
		add(line)
	}

	if r.artifact.RedeemScript != "" {
		content.QR = &interfaces.QRBlock{
			Payload: r.artifact.RedeemScript,
			Box:     interfaces.Rect{X: layout.WordsMarginX, Y: y, W: layout.QRSize, H: layout.QRSize},
		}
	}
	return content
}

func (r *Resolver) layoutInstructions() []interfaces.TextLine {
	var lines []interfaces.TextLine
	y := r.shield.Bottom() + layout.SmallIntervalY
	for _, line := range r.metrics.Wrap(r.texts.Instructions(), layout.MarginX, layout.FontSmall) {
		lines = append(lines, interfaces.TextLine{Text: line, X: layout.MarginX, Y: y, Size: layout.FontSmall})
		y += layout.SmallIntervalY
	}
	return lines
}

func cloneContent(c interfaces.PageContent) interfaces.PageContent {
	out := c
	out.Lines = slices.Clone(c.Lines)
	out.Opaque = slices.Clone(c.Opaque)
	if c.QR != nil {
		qr := *c.QR
		out.QR = &qr
	}
	return out
}
