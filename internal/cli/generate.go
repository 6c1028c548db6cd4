package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"contract-generator/internal/common"
	"contract-generator/internal/config"
	"contract-generator/internal/gen"
)

// GenerateConfig captures all inputs of the generate command after merging
// defaults, config file values and CLI overrides.
type GenerateConfig struct {
	Options    config.Options
	ConfigPath string
	// DryRun prints the document instead of writing it.
	DryRun bool
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [root...]",
		Short: "Write the OpenAPI contract of the services found under the given roots",
		Long: "Write the OpenAPI contract of the services found under the given roots. " +
			"Options can be provided via flags, a config file, or defaults.",
		Example: strings.TrimSpace(`  contract-generator generate ./services --output api/openapi.json
  contract-generator --config contract.yaml generate --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd, args)
			if err != nil {
				return err
			}

			return generateRunner(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "Output file (default "+config.DefaultOutput+")")
	flags.String("title", "", "Document title")
	flags.String("api-version", "", "Document version")
	flags.String("server-url", "", "Base URL of the dispatch server")
	flags.String("server-description", "", "Description of the dispatch server")
	flags.String("endpoint-prefix", "", "Path prefix appended to the server URL")
	flags.StringSlice("reserved-words", nil, "Extra identifiers to treat as reserved")
	flags.StringSlice("date-types", nil, "Extra qualified type names rendered as dates")
	flags.Bool("dry-run", false, "Print the document to stdout instead of writing it")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command, args []string) (*GenerateConfig, error) {
	cfg := GenerateConfig{Options: *config.Default()}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		opts, err := config.LoadFile(configPath)
		if err != nil {
			return nil, usagef("generate", "%v", err)
		}

		cfg.ConfigPath = configPath
		cfg.Options = *opts
	}

	if len(args) > 0 {
		cfg.Options.Roots = args
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Options.Roots) == 0 {
		return nil, usagef("generate", "at least one source root is required (as an argument or in the config file)")
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"output", &cfg.Options.Output},
		{"title", &cfg.Options.Title},
		{"api-version", &cfg.Options.APIVersion},
		{"server-url", &cfg.Options.ServerURL},
		{"server-description", &cfg.Options.ServerDescription},
		{"endpoint-prefix", &cfg.Options.EndpointPrefix},
	}

	for _, s := range strs {
		if !flags.Changed(s.name) {
			continue
		}

		value, err := flags.GetString(s.name)
		if err != nil {
			return err
		}

		if value = strings.TrimSpace(value); value == "" {
			return usagef("generate", "--%s must not be empty", s.name)
		}

		*s.dst = value
	}

	lists := []struct {
		name string
		dst  *config.StringOrArray
	}{
		{"reserved-words", &cfg.Options.ReservedWords},
		{"date-types", &cfg.Options.DateTypes},
	}

	for _, l := range lists {
		if !flags.Changed(l.name) {
			continue
		}

		value, err := flags.GetStringSlice(l.name)
		if err != nil {
			return err
		}

		*l.dst = common.Dedupe(append(*l.dst, value...))
	}

	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}

		cfg.DryRun = value
	}

	return nil
}

func runGenerate(ctx context.Context, out io.Writer, cfg *GenerateConfig) error {
	g := gen.NewGenerator(cfg.Options)

	if cfg.DryRun {
		res, err := g.Build(ctx)
		if err != nil {
			return describe(err)
		}

		_, err = out.Write(res.Content)

		return err
	}

	res, err := g.Generate(ctx)
	if err != nil {
		return describe(err)
	}

	_, err = fmt.Fprintf(out, "Wrote %s (%d paths, %d schemas, %d warnings)\n",
		res.Output, len(res.Document.Paths), len(res.Document.Components.Schemas), len(res.Diagnostics.Warnings))

	return err
}

func describe(err error) error {
	return fmt.Errorf("generate: %w", err)
}
