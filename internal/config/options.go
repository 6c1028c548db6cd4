package config

import (
	"os"
	"path/filepath"
	"slices"

	werror "github.com/palantir/witchcraft-go-error"
	"gopkg.in/yaml.v3"

	"contract-generator/internal/common"
	"contract-generator/internal/contract"
)

// Defaults.
const (
	DefaultTitle             = "RPC API"
	DefaultAPIVersion        = "1.0.0"
	DefaultServerURL         = "http://localhost:8080"
	DefaultServerDescription = "Default server"
	DefaultEndpointPrefix    = "/rpc"
	DefaultOutput            = "openapi.json"
)

// Options configure one generator run.
type Options struct {
	Title             string        `yaml:"title,omitempty"`
	APIVersion        string        `yaml:"apiVersion,omitempty"`
	ServerURL         string        `yaml:"serverUrl,omitempty"`
	ServerDescription string        `yaml:"serverDescription,omitempty"`
	EndpointPrefix    string        `yaml:"endpointPrefix,omitempty"`
	Roots             StringOrArray `yaml:"roots,omitempty"`
	Output            string        `yaml:"output,omitempty"`
	ReservedWords     StringOrArray `yaml:"reservedWords,omitempty"`
	DateTypes         StringOrArray `yaml:"dateTypes,omitempty"`
}

// Default returns options with every default applied.
func Default() *Options {
	var opts Options
	applyDefaults(&opts)

	return &opts
}

// LoadFile loads options from path. Relative roots and output are resolved
// against the directory holding the file.
func LoadFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werror.Wrap(err, "failed to read config file", werror.SafeParam("path", path))
	}

	opts, err := Parse(data)
	if err != nil {
		return nil, werror.Wrap(err, "invalid config file", werror.SafeParam("path", path))
	}

	base := filepath.Dir(path)
	for i, root := range opts.Roots {
		opts.Roots[i] = resolve(base, root)
	}

	opts.Output = resolve(base, opts.Output)

	return opts, nil
}

// Parse parses YAML data into Options.
func Parse(data []byte) (*Options, error) {
	var opts Options

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, werror.Wrap(err, "failed to parse config YAML")
	}

	applyDefaults(&opts)

	return &opts, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(opts *Options) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}

	if opts.ServerURL == "" {
		opts.ServerURL = DefaultServerURL
	}

	if opts.ServerDescription == "" {
		opts.ServerDescription = DefaultServerDescription
	}

	if opts.EndpointPrefix == "" {
		opts.EndpointPrefix = DefaultEndpointPrefix
	}

	if opts.Output == "" {
		opts.Output = DefaultOutput
	}

	opts.ReservedWords = common.Dedupe(opts.ReservedWords)
	opts.DateTypes = common.Dedupe(opts.DateTypes)
}

// Contract returns the settings the document assembler needs.
func (o *Options) Contract() contract.Config {
	return contract.Config{
		Title:             o.Title,
		Version:           o.APIVersion,
		ServerURL:         o.ServerURL,
		ServerDescription: o.ServerDescription,
		EndpointPrefix:    o.EndpointPrefix,
		ReservedWords:     slices.Clone(o.ReservedWords),
		DateTypes:         slices.Clone(o.DateTypes),
	}
}

// Sample returns the options written by a freshly scaffolded config file:
// the defaults, scanning the directory holding the file.
func Sample() *Options {
	opts := Default()
	opts.Roots = StringOrArray{"."}

	return opts
}

// Marshal serializes Options to YAML.
func Marshal(opts *Options) ([]byte, error) {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return nil, werror.Wrap(err, "failed to marshal config")
	}

	return data, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(base, path)
}
