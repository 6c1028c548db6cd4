package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-generator/internal/contract"
)

func TestParse_Defaults(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), opts)
	assert.Equal(t, contract.Config{
		Title:             "RPC API",
		Version:           "1.0.0",
		ServerURL:         "http://localhost:8080",
		ServerDescription: "Default server",
		EndpointPrefix:    "/rpc",
	}, opts.Contract())
	assert.Equal(t, "openapi.json", opts.Output)
}

func TestParse_Values(t *testing.T) {
	data := []byte(`
title: Shop API
apiVersion: 2.1.0
serverUrl: https://shop.example.com
endpointPrefix: /api
roots: ./services
reservedWords: [query, query, select]
dateTypes:
  - example.com/calendar.Day
`)

	opts, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Shop API", opts.Title)
	assert.Equal(t, "2.1.0", opts.APIVersion)
	assert.Equal(t, "https://shop.example.com", opts.ServerURL)
	assert.Equal(t, DefaultServerDescription, opts.ServerDescription)
	assert.Equal(t, "/api", opts.EndpointPrefix)
	assert.Equal(t, StringOrArray{"./services"}, opts.Roots)
	assert.Equal(t, StringOrArray{"query", "select"}, opts.ReservedWords)
	assert.Equal(t, StringOrArray{"example.com/calendar.Day"}, opts.DateTypes)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("roots: {a: b}"))
	require.Error(t, err)

	_, err = Parse([]byte("title: [unterminated"))
	require.Error(t, err)
}

func TestLoadFile_RelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.yaml")

	abs := filepath.Join(dir, "elsewhere")
	require.NoError(t, os.WriteFile(path, []byte("roots: [services, "+abs+"]\noutput: out/api.json\n"), 0o644))

	opts, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, StringOrArray{filepath.Join(dir, "services"), abs}, opts.Roots)
	assert.Equal(t, filepath.Join(dir, "out", "api.json"), opts.Output)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestMarshal_Sample(t *testing.T) {
	data, err := Marshal(Sample())
	require.NoError(t, err)
	assert.Contains(t, string(data), "roots:")
	assert.Contains(t, string(data), "endpointPrefix: /rpc\n")

	loaded, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Sample(), loaded)
}

func TestMarshal_Lists(t *testing.T) {
	opts := Default()
	opts.Roots = StringOrArray{"services"}
	opts.ReservedWords = StringOrArray{"query", "select"}

	data, err := Marshal(opts)
	require.NoError(t, err)
	assert.Contains(t, string(data), "roots: services\n")
	assert.Contains(t, string(data), "- query\n")

	loaded, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, opts, loaded)
}
