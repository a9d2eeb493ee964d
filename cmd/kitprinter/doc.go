// Package main (cmd/kitprinter) generates a wallet secret and prints it as a
// custody kit: one intro page, then for every custodian an instructions page,
// the page disclosing that custodian's words and a cover page hiding them.
//
// Commands:
//
//	print [printer]   - derive a new secret, ask for the address-with-lock text and the redeem script, print the kit (default)
//	printers          - list the printers known to the spooler
//	plan              - show the page sequence for a custodian count
//
// Example:
//
//	kitprinter print --custodians 2 --words 24 office
//
// The printer can also be given with --printer or KITPRINTER_PRINTER. Nothing
// is derived before the printer name, the word count and the custodian count
// have been validated, and the rendered document only ever lives in memory.
package main
