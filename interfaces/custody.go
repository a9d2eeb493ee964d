package interfaces

import (
	"fmt"
	"log/slog"
	"strings"
)

// Secret is the ordered mnemonic word sequence backing the wallet.
// Its String and LogValue forms never reveal the words.
type Secret []string

// Len returns the word count.
func (s Secret) Len() int {
	return len(s)
}

// Words returns a copy of the word sequence.
func (s Secret) Words() []string {
	words := make([]string, len(s))
	copy(words, s)
	return words
}

// Phrase joins the words with single spaces, the form accepted by BIP-39 tooling.
func (s Secret) Phrase() string {
	return strings.Join(s, " ")
}

func (s Secret) String() string {
	return fmt.Sprintf("[redacted secret: %d words]", len(s))
}

func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Share is the contiguous block of Secret words assigned to one custodian.
type Share struct {
	Custodian int
	Words     []string
}

func (s Share) String() string {
	return fmt.Sprintf("[redacted share %d: %d words]", s.Custodian, len(s.Words))
}

func (s Share) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Lines splits the share into two display lines, the first holding the first
// half of the words (rounded down).
func (s Share) Lines() (first, second string) {
	half := len(s.Words) / 2
	return strings.Join(s.Words[:half], " "), strings.Join(s.Words[half:], " ")
}

// RecoveryArtifact is printed unsplit on every disclosure page.
type RecoveryArtifact struct {
	// Address is the derived wallet address, safe to disclose.
	Address string

	// PublicKey is the hex encoded compressed public key of Address.
	PublicKey string

	// AddressWithLock is the operator supplied address/lock description shown on the intro page.
	AddressWithLock string

	// RedeemScript is required together with a share to recover spending capability.
	RedeemScript string
}

// PageType enumerates the sequencer states.
type PageType int

const (
	PageIntro PageType = iota
	PageInstructions
	PageDisclosure
	PageCover
	PageDone
)

func (t PageType) String() string {
	switch t {
	case PageIntro:
		return "Intro"
	case PageInstructions:
		return "Instructions"
	case PageDisclosure:
		return "Disclosure"
	case PageCover:
		return "Cover"
	case PageDone:
		return "Done"
	default:
		return fmt.Sprintf("PageType(%d)", int(t))
	}
}

// PageKind is a sequencer state. Custodian is only meaningful for PageDisclosure.
type PageKind struct {
	Type      PageType
	Custodian int
}

var (
	IntroPage        = PageKind{Type: PageIntro}
	InstructionsPage = PageKind{Type: PageInstructions}
	CoverPage        = PageKind{Type: PageCover}
	DonePage         = PageKind{Type: PageDone}
)

// DisclosurePage returns the kind of the page carrying the given custodian's share.
func DisclosurePage(custodian int) PageKind {
	return PageKind{Type: PageDisclosure, Custodian: custodian}
}

// IsDisclosure reports whether the page carries secret words.
func (k PageKind) IsDisclosure() bool {
	return k.Type == PageDisclosure
}

// Shields reports whether the page paints an opaque region over the secret area.
func (k PageKind) Shields() bool {
	return k.Type == PageCover || k.Type == PageInstructions
}

func (k PageKind) String() string {
	if k.Type == PageDisclosure {
		return fmt.Sprintf("Disclosure(%d)", k.Custodian)
	}
	return k.Type.String()
}

// PageSpec identifies one physical page of the print job.
type PageSpec struct {
	// Index is 1-based.
	Index int
	Total int
	Kind  PageKind
}

// Last reports whether no page follows this one.
func (p PageSpec) Last() bool {
	return p.Index == p.Total
}
