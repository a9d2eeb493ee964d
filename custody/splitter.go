package custody

import (
	"fmt"

	"github.com/ruteri/paper-custody-kit/interfaces"
)

// ValidateSplit checks that words can be divided into equal blocks for the
// given number of custodians. It runs before any secret exists so that a bad
// custodian count is rejected before derivation and before any page.
func ValidateSplit(words, custodians int) error {
	if custodians < 1 {
		return fmt.Errorf("%w: custodian count must be at least 1, got %d", interfaces.ErrUnevenSplit, custodians)
	}
	if words == 0 || words%custodians != 0 {
		return fmt.Errorf("%w: %d words across %d custodians", interfaces.ErrUnevenSplit, words, custodians)
	}
	return nil
}

// Split partitions the secret into contiguous, order-preserving blocks: the
// first len/custodians words go to custodian 0, the next block to custodian 1
// and so on.
//
// This is an operational custody control and not a secret sharing scheme.
// Each share reads as a natural phrase, and a share together with the redeem
// script narrows the search space considerably.
//
// The returned shares own their word slices.
func Split(secret interfaces.Secret, custodians int) ([]interfaces.Share, error) {
	if err := ValidateSplit(secret.Len(), custodians); err != nil {
		return nil, err
	}

	per := secret.Len() / custodians
	shares := make([]interfaces.Share, custodians)
	for i := range shares {
		words := make([]string, per)
		copy(words, secret[i*per:(i+1)*per])
		shares[i] = interfaces.Share{Custodian: i, Words: words}
	}
	return shares, nil
}

// Join concatenates shares in custodian order, reconstructing the secret.
// It returns nil unless every custodian index in 0..len(shares) appears
// exactly once.
func Join(shares []interfaces.Share) interfaces.Secret {
	ordered := make([]interfaces.Share, len(shares))
	seen := make([]bool, len(shares))
	for _, s := range shares {
		if s.Custodian < 0 || s.Custodian >= len(shares) || seen[s.Custodian] {
			return nil
		}
		seen[s.Custodian] = true
		ordered[s.Custodian] = s
	}

	var secret interfaces.Secret
	for _, s := range ordered {
		secret = append(secret, s.Words...)
	}
	return secret
}
