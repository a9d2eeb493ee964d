// Package render turns resolved page contents into a printable A4 PDF.
package render
