// internal/dumper/doc.go

// Package dumper reads a parallel ROM through digital lines and renders it
// as a hex dump.
//
// SetAddress drives the address bus, Sampler reads the data bus after the
// settling delay, FormatGroup renders 16 bytes per line and Controller runs
// the whole scan once: Init, Scanning, then Done with no further output.
package dumper
