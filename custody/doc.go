// Package custody turns a wallet secret into the ordered pages of a paper
// custody kit.
//
// # Splitting
//
// Split divides the mnemonic into one contiguous block per custodian. Word
// order is preserved inside every share and across shares, so Join restores
// the secret exactly. The split is a custody control, not Shamir sharing.
//
// # Page sequence
//
// PageSequencer walks a fixed transition table. For M custodians:
//
//	Intro, (Instructions, Disclosure(i), Cover) for i in 0..M, Done
//
// which prints 1+3M pages (7 for two custodians). Every disclosure page is
// followed by a cover page, and an instructions page shields the disclosure
// that follows it, so a custodian holding the stack cannot read a share that
// is not theirs through the paper. The table is checked with
// CheckCoverAdjacency when the sequencer is built.
//
// The sequencer is driven from outside, one Next call per physical page. Once
// the last page has been produced any further signal fails with
// interfaces.ErrSequenceExhausted.
//
// # Content
//
// Resolver maps a page to an interfaces.PageContent value: positioned text,
// an optional QR payload and opaque regions. It computes the bounding box of
// every disclosure page and pads it into the shield painted by cover and
// instructions pages. The resolver never draws; rendering is left to an
// interfaces.PageRenderer.
//
// # Jobs
//
// PrintJob wires the three together:
//
//	job, err := custody.NewPrintJob(secret, artifact, 2, catalog, logger)
//	if err != nil {
//	    return err
//	}
//	pages, err := job.Run(ctx, renderer)
//
// Run only stops between a cover and the next page, never between a disclosure
// and its cover.
package custody
