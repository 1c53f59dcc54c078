package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pdfpress/logging"
	"pdfpress/pdf"
)

// Version is set at build time with -ldflags "-X pdfpress/cli.Version=..."
var Version = "0.1.0"

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type rootOptions struct {
	mode      pdf.Mode
	verbose   bool
	logFormat string
	noColor   bool
}

// Execute runs the command line with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, runner pdf.Runner) int {
	root := NewRootCommand(runner)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
	if pdf.IsUsage(err) {
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	return ExitFailure
}

// NewRootCommand builds the pdfpress command tree. runner launches the engine.
func NewRootCommand(runner pdf.Runner) *cobra.Command {
	opts := &rootOptions{mode: pdf.DefaultMode}

	cmd := &cobra.Command{
		Use:   "pdfpress <input.pdf> [output.pdf]",
		Short: "Recompress a PDF with Ghostscript",
		Long: `pdfpress shrinks a PDF by rewriting it with Ghostscript at one of four
quality presets. Without an output path the result is written next to the
input as <name>_pressed.pdf.

Ghostscript (gs) must be on PATH. An input file literally named "serve" must
be given as ./serve.`,
		Example: `  pdfpress report.pdf
  pdfpress report.pdf small.pdf --mode screen`,
		Version:           Version,
		Args:              inputArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: opts.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, runner, args, opts.mode)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return pdf.UsageError("invalid flags", err)
	})

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log output format: console or json")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().VarP(&opts.mode, "mode", "m", "compression mode: "+modeHelp())

	// "help" is a file name like any other; --help still works
	cmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	cmd.AddCommand(newServeCommand(runner))
	return cmd
}

// setup configures output and stores the logger in the command context
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	if !logging.ValidFormat(o.logFormat) {
		return pdf.UsageError(fmt.Sprintf("invalid log-format %q: must be console or json", o.logFormat), nil)
	}
	if o.noColor {
		color.NoColor = true
	}

	level := "info"
	if o.verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{
		Level:   level,
		Format:  o.logFormat,
		Output:  cmd.ErrOrStderr(),
		NoColor: o.noColor || color.NoColor,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

func inputArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) < 1:
		return pdf.UsageError("missing required argument <input.pdf>", nil)
	case len(args) > 2:
		return pdf.UsageError(fmt.Sprintf("accepts at most 2 arguments, received %d", len(args)), nil)
	}
	return nil
}

func runCompress(cmd *cobra.Command, runner pdf.Runner, args []string, mode pdf.Mode) error {
	var destination string
	if len(args) > 1 {
		if args[1] == "" {
			return pdf.UsageError("output path must not be empty", nil)
		}
		destination = args[1]
	}

	plan, err := pdf.NewPlan(args[0], destination, mode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	zerolog.Ctx(ctx).Debug().
		Str("source", plan.Source).
		Str("destination", plan.Destination).
		Str("mode", plan.Mode.String()).
		Msg("Resolved plan")

	if err := pdf.Compress(ctx, runner, plan); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s → %s (%s)\n", plan.Source, plan.Destination, plan.Mode)
	return nil
}

func modeHelp() string {
	help := ""
	for i, m := range pdf.Modes() {
		if i > 0 {
			help += ", "
		}
		help += fmt.Sprintf("%s (%s)", m, m.Description())
	}
	return help
}
