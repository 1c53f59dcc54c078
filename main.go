package main

import (
	"context"
	"os"

	"pdfpress/cli"
	"pdfpress/pdf"
)

func main() {
	runner := pdf.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, runner))
}
