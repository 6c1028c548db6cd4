// Package cli implements the contract-generator command line.
package cli

import (
	"context"

	"github.com/palantir/witchcraft-go-logging/wlog"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
	"github.com/spf13/cobra"
)

// Execute runs the contract-generator CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract-generator",
		Short: "Generate an OpenAPI contract from annotated Go services",
		Long: "contract-generator scans Go packages for types marked //rpc:service and writes an " +
			"OpenAPI 3 document describing every exposed method and the data types they use.",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: installLogger,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetFlagErrorFunc(flagError)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	for _, sub := range []*cobra.Command{newGenerateCmd(), newInitCmd()} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}

	return cmd
}

// flagError turns cobra flag errors into usage errors carrying the help text.
func flagError(c *cobra.Command, err error) error {
	return usagef(c.Name(), "%v\n\n%s", err, c.UsageString())
}

// installLogger puts a JSON service logger writing to stderr into the command context.
func installLogger(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	level := wlog.InfoLevel
	if verbose {
		level = wlog.DebugLevel
	}

	logger := svc1log.NewFromCreator(
		cmd.ErrOrStderr(),
		level,
		wlog.NewJSONMarshalLoggerProvider().NewLeveledLogger,
		svc1log.Origin("contract-generator"),
	)

	cmd.SetContext(svc1log.WithLogger(cmd.Context(), logger))

	return nil
}
