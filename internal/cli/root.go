package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vvka-141/mztabm/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mztabm",
	Short: "mzTab-M parser and validator",
	Long: `mztabm reads mzTab-M 2.0 metabolomics result files, checks their structure,
cross references and controlled vocabulary usage, and reports every problem
with its line number.

Settings come from ./mztabm.yaml (or --config), MZTABM_* environment
variables and command line flags, in increasing order of precedence.

Exit Codes:
  0  - Success (no Error-level messages)
  1  - Validation found Error-level messages
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or level
  11 - Ontology lookups timed out
  12 - Too many errors, validation aborted
  13 - Unreadable input, unsupported version or missing section
  14 - Input file not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./mztabm.yaml when present)")
	rootCmd.PersistentFlags().StringSlice("env-file", nil,
		"Load environment variables from .env files (can be specified multiple times)\n"+
			"Variables already set in the environment win")
}

// getVerboseFlag reads the persistent verbose flag from cmd or its parents.
func getVerboseFlag(cmd *cobra.Command) bool {
	f := cmd.Flag("verbose")
	if f == nil {
		return false
	}
	verbose, err := strconv.ParseBool(f.Value.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// loadConfig reads the layered configuration named by the persistent flags.
// Callers apply their own flag overrides and then call Validate.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var configFile string
	var envFiles []string
	if f := cmd.Flag("config"); f != nil {
		configFile = f.Value.String()
	}
	if f := cmd.Flag("env-file"); f != nil {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			envFiles = sv.GetSlice()
		}
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, EnvFiles: envFiles})
	if err != nil {
		return nil, err
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}
	return cfg, nil
}
