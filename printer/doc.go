// Package printer sends rendered kits to a CUPS printer.
package printer
