package custody

import (
	"fmt"
	"testing"

	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s *PageSequencer) []interfaces.PageSpec {
	t.Helper()
	var specs []interfaces.PageSpec
	for spec := range s.Pages() {
		specs = append(specs, spec)
	}
	return specs
}

func TestSequencer_TwoCustodians(t *testing.T) {
	s, err := NewPageSequencer(2)
	require.NoError(t, err)

	want := []interfaces.PageKind{
		interfaces.IntroPage,
		interfaces.InstructionsPage,
		interfaces.DisclosurePage(0),
		interfaces.CoverPage,
		interfaces.InstructionsPage,
		interfaces.DisclosurePage(1),
		interfaces.CoverPage,
	}

	specs := drain(t, s)
	require.Len(t, specs, 7)
	for i, spec := range specs {
		assert.Equal(t, i+1, spec.Index)
		assert.Equal(t, 7, spec.Total)
		assert.Equal(t, want[i], spec.Kind, "page %d", i+1)
	}
	assert.True(t, specs[6].Last())
}

func TestSequencer_ClosedForm(t *testing.T) {
	for m := 1; m <= 6; m++ {
		t.Run(fmt.Sprintf("%d custodians", m), func(t *testing.T) {
			states := States(m)
			require.Len(t, states, 2+3*m)
			assert.Equal(t, interfaces.IntroPage, states[0])
			assert.Equal(t, interfaces.DonePage, states[len(states)-1])
			for i := 0; i < m; i++ {
				assert.Equal(t, interfaces.InstructionsPage, states[1+3*i])
				assert.Equal(t, interfaces.DisclosurePage(i), states[2+3*i])
				assert.Equal(t, interfaces.CoverPage, states[3+3*i])
			}
			require.NoError(t, CheckCoverAdjacency(states))

			s, err := NewPageSequencer(m)
			require.NoError(t, err)
			assert.Equal(t, PageCount(m), len(drain(t, s)))
		})
	}
}

func TestSequencer_NextSignals(t *testing.T) {
	s, err := NewPageSequencer(2)
	require.NoError(t, err)

	current, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, interfaces.PageSpec{Index: 1, Total: 7, Kind: interfaces.IntroPage}, current)

	for i := 2; i <= 7; i++ {
		spec, more, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, i, spec.Index)
		assert.Equal(t, i < 7, more)
	}
	assert.False(t, s.Done())

	for i := 0; i < 3; i++ {
		spec, more, err := s.Next()
		assert.ErrorIs(t, err, interfaces.ErrSequenceExhausted)
		assert.False(t, more)
		assert.Equal(t, interfaces.PageSpec{}, spec)
		assert.True(t, s.Done())
	}

	_, err = s.Current()
	assert.ErrorIs(t, err, interfaces.ErrSequenceExhausted)
}

func TestSequencer_PagesNotRestartable(t *testing.T) {
	s, err := NewPageSequencer(2)
	require.NoError(t, err)

	assert.Len(t, drain(t, s), 7)
	assert.Empty(t, drain(t, s))
	assert.True(t, s.Done())
}

func TestSequencer_PagesResumesAfterBreak(t *testing.T) {
	s, err := NewPageSequencer(2)
	require.NoError(t, err)

	for spec := range s.Pages() {
		if spec.Index == 3 {
			break
		}
	}
	rest := drain(t, s)
	require.Len(t, rest, 4)
	assert.Equal(t, 4, rest[0].Index)
}

func TestSequencer_InvalidCustodians(t *testing.T) {
	_, err := NewPageSequencer(0)
	assert.ErrorIs(t, err, interfaces.ErrConfig)
}

func TestCheckCoverAdjacency(t *testing.T) {
	d0, d1 := interfaces.DisclosurePage(0), interfaces.DisclosurePage(1)
	cover, instr, intro := interfaces.CoverPage, interfaces.InstructionsPage, interfaces.IntroPage

	testCases := []struct {
		name    string
		kinds   []interfaces.PageKind
		wantErr bool
	}{
		{name: "canonical", kinds: []interfaces.PageKind{intro, instr, d0, cover, instr, d1, cover}},
		{name: "adjacent disclosures", kinds: []interfaces.PageKind{intro, d0, d1, cover}, wantErr: true},
		{name: "disclosure last", kinds: []interfaces.PageKind{intro, instr, d0}, wantErr: true},
		{name: "disclosure followed by instructions", kinds: []interfaces.PageKind{intro, d0, instr, d1, cover}, wantErr: true},
		{name: "no disclosures", kinds: []interfaces.PageKind{intro, cover}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckCoverAdjacency(tc.kinds)
			if tc.wantErr {
				assert.ErrorIs(t, err, interfaces.ErrCoverAdjacency)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
