package custody

import (
	"fmt"
	"iter"

	"github.com/ruteri/paper-custody-kit/interfaces"
)

// PageCount returns the number of printed pages for the given custodian count.
func PageCount(custodians int) int {
	return 1 + 3*custodians
}

// States returns the full transition table including the terminal Done state:
//
//	Intro, (Instructions, Disclosure(i), Cover) for i in 0..custodians, Done
func States(custodians int) []interfaces.PageKind {
	states := make([]interfaces.PageKind, 0, PageCount(custodians)+1)
	states = append(states, interfaces.IntroPage)
	for i := 0; i < custodians; i++ {
		states = append(states, interfaces.InstructionsPage, interfaces.DisclosurePage(i), interfaces.CoverPage)
	}
	return append(states, interfaces.DonePage)
}

// CheckCoverAdjacency verifies that every disclosure page is immediately
// followed by a cover, and that disclosures of different custodians are always
// separated by a cover or instructions page.
func CheckCoverAdjacency(kinds []interfaces.PageKind) error {
	lastDisclosure := -1
	shieldedSince := true
	for i, k := range kinds {
		switch {
		case k.IsDisclosure():
			if i+1 >= len(kinds) || kinds[i+1].Type != interfaces.PageCover {
				return fmt.Errorf("%w: %s at position %d is not followed by a cover", interfaces.ErrCoverAdjacency, k, i)
			}
			if lastDisclosure >= 0 && kinds[lastDisclosure].Custodian != k.Custodian && !shieldedSince {
				return fmt.Errorf("%w: %s and %s are adjacent", interfaces.ErrCoverAdjacency, kinds[lastDisclosure], k)
			}
			lastDisclosure = i
			shieldedSince = false
		case k.Shields():
			shieldedSince = true
		}
	}
	return nil
}

// PageSequencer walks the fixed transition table one external signal at a
// time. It carries its position between calls so that a pull-based print loop
// can resume it page by page. It is not safe for concurrent use.
type PageSequencer struct {
	states  []interfaces.PageKind
	pos     int
	started bool
}

// NewPageSequencer returns a sequencer already on page 1 (Intro).
func NewPageSequencer(custodians int) (*PageSequencer, error) {
	if custodians < 1 {
		return nil, fmt.Errorf("%w: custodian count must be at least 1, got %d", interfaces.ErrConfig, custodians)
	}
	states := States(custodians)
	if err := CheckCoverAdjacency(states); err != nil {
		return nil, err
	}
	return &PageSequencer{states: states}, nil
}

// Total returns the number of printed pages.
func (s *PageSequencer) Total() int {
	return len(s.states) - 1
}

// Kinds returns the printed page kinds in order.
func (s *PageSequencer) Kinds() []interfaces.PageKind {
	kinds := make([]interfaces.PageKind, s.Total())
	copy(kinds, s.states)
	return kinds
}

// Done reports whether the sequencer reached its terminal state.
func (s *PageSequencer) Done() bool {
	return s.states[s.pos].Type == interfaces.PageDone
}

// Current returns the page the sequencer is on.
func (s *PageSequencer) Current() (interfaces.PageSpec, error) {
	if s.Done() {
		return interfaces.PageSpec{}, s.exhausted()
	}
	return s.spec(), nil
}

// Next advances exactly one state and returns the page just entered, plus
// whether further signals are expected. Signalling from the last page enters
// Done and fails; so does every signal after that.
func (s *PageSequencer) Next() (interfaces.PageSpec, bool, error) {
	if s.Done() {
		return interfaces.PageSpec{}, false, s.exhausted()
	}
	s.started = true
	s.pos++
	if s.Done() {
		return interfaces.PageSpec{}, false, s.exhausted()
	}
	return s.spec(), s.pos < s.Total()-1, nil
}

// Pages yields the remaining pages, starting with the current one if it has
// not been handed out yet. The sequence is lazy and cannot be restarted: once
// drained, the sequencer is on its last page and a further Pages call yields
// nothing and leaves the sequencer in Done.
func (s *PageSequencer) Pages() iter.Seq[interfaces.PageSpec] {
	return func(yield func(interfaces.PageSpec) bool) {
		if !s.started && !s.Done() {
			s.started = true
			if !yield(s.spec()) {
				return
			}
		}
		for {
			spec, more, err := s.Next()
			if err != nil {
				return
			}
			if !yield(spec) || !more {
				return
			}
		}
	}
}

func (s *PageSequencer) spec() interfaces.PageSpec {
	return interfaces.PageSpec{Index: s.pos + 1, Total: s.Total(), Kind: s.states[s.pos]}
}

func (s *PageSequencer) exhausted() error {
	return fmt.Errorf("%w: all %d pages were already produced", interfaces.ErrSequenceExhausted, s.Total())
}

