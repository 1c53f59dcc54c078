// Package cli wires the pdfpress command line: argument resolution, logging
// setup, the compress command and the HTTP server command. It maps failures
// to process exit codes.
package cli
