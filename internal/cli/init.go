package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"contract-generator/internal/config"
	"contract-generator/internal/gen"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample contract-generator configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			return initRunner(cmd.Context(), cmd.OutOrStdout(), &InitConfig{OutputPath: out, Force: force})
		},
	}

	cmd.Flags().String("out", "contract.yaml", "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(_ context.Context, w io.Writer, cfg *InitConfig) error {
	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = "contract.yaml"
	}

	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := os.Stat(absPath); err == nil && !cfg.Force && st.Mode().IsRegular() {
		return usagef("init", "%q already exists (use --force to overwrite)", absPath)
	}

	body, err := config.Marshal(config.Sample())
	if err != nil {
		return err
	}

	if err := gen.WriteFile(absPath, append([]byte(sampleHeader), body...)); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Wrote sample config to %s\n", absPath)

	return err
}

// sampleHeader precedes the marshaled default options.
const sampleHeader = `# contract-generator configuration (YAML)
# Command-line flags override config values. Relative paths are resolved
# against the directory of this file. The server URL in the document is
# serverUrl joined with endpointPrefix.
#
# Optional lists, each a single value or a sequence:
#   reservedWords: identifiers to escape on top of the JavaScript keywords
#   dateTypes: qualified names of extra types rendered as calendar dates

`
