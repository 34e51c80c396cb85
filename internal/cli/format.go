package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/internal/parser"
	"github.com/vvka-141/mztabm/internal/writer"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Rewrite an mzTab-M file in canonical layout",
	Long: `Format parses a file and writes it back in canonical layout: metadata in
declaration order with indexed elements sorted, comments after the metadata,
then the SML, SMF and SME sections.

Structural errors are logged to stderr; the document is still written
unless the parse aborted. The exit code is 1 when errors were found.

Examples:
  mztabm format study.mzTab > study.canonical.mzTab
  mztabm format study.mzTab -o study.mzTab`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

type formatFlagValues struct {
	output   string
	encoding string
}

var formatFlags formatFlagValues

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringVarP(&formatFlags.output, "output", "o", "",
		"Write to this file instead of stdout (may be the input file)")
	formatCmd.Flags().StringVar(&formatFlags.encoding, "encoding", mztab.DefaultEncoding,
		"Input character set (IANA name)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	defer func() { _ = logger.Sync() }()

	opts := parser.DefaultOptions()
	opts.Encoding = formatFlags.encoding
	opts.Logger = logger

	res, err := parser.ParseFile(args[0], opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, res.Document); err != nil {
		return fmt.Errorf("format %s: %w", args[0], err)
	}

	if formatFlags.output == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		if err := os.WriteFile(formatFlags.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", formatFlags.output, err)
		}
		logger.Verbose("Wrote %s", formatFlags.output)
	}

	diags := res.Diagnostics()
	for _, d := range diags {
		if d.Level == diag.Error {
			logger.Error("%s", d.Error())
		}
	}
	errs := diag.Count(diags, diag.Error)
	if errs > 0 {
		return fmt.Errorf("%w: %s has %d structural error(s)", mztab.ErrValidationFailed, args[0], errs)
	}
	return nil
}
