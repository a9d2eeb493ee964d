// Package interfaces defines the shared types, contracts and sentinel errors
// of the custody kit printer, separating them from their implementations.
//
// # Custody Types
//
// Secret: the ordered mnemonic words. Share: the contiguous block of words
// assigned to one custodian. RecoveryArtifact: the public address plus the
// operator-entered texts printed on every share page.
//
// # Page Types
//
// PageKind and PageSpec describe the fixed page sequence of a kit.
// PageContent is the pure rendering payload of one page, in 1/100 inch
// units on A4.
//
// # Output Interfaces
//
// PageRenderer draws resolved pages, Spooler hands the finished document to a
// printer.
//
// # Errors
//
// Every failure is reported by wrapping one of the sentinel errors in
// errors.go, so callers test them with errors.Is.
package interfaces
