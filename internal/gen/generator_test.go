package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/palantir/witchcraft-go-logging/wlog"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-generator/internal/config"
	"contract-generator/internal/diagnostic"
)

func testContext(buf *bytes.Buffer) context.Context {
	return svc1log.WithLogger(context.Background(),
		svc1log.NewFromCreator(buf, wlog.DebugLevel, wlog.NewJSONMarshalLoggerProvider().NewLeveledLogger, svc1log.Origin("")))
}

func options(t *testing.T, roots ...string) config.Options {
	t.Helper()

	opts := config.Default()
	opts.Roots = roots
	opts.Output = filepath.Join(t.TempDir(), "out", "openapi.json")

	return *opts
}

func TestGenerate_Greeter(t *testing.T) {
	var logs bytes.Buffer

	opts := options(t, "../../examples/greeter")

	res, err := NewGenerator(opts).Generate(testContext(&logs))
	require.NoError(t, err)
	assert.Equal(t, opts.Output, res.Output)

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, res.Content, data)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw["paths"], "/Greeter/hello")

	assert.Contains(t, logs.String(), "Wrote contract")
}

func TestGenerate_Deterministic(t *testing.T) {
	var logs bytes.Buffer

	first, err := NewGenerator(options(t, "../../examples/shop", "../../examples/greeter")).Build(testContext(&logs))
	require.NoError(t, err)

	second, err := NewGenerator(options(t, "../../examples/greeter", "../../examples/shop")).Build(testContext(&logs))
	require.NoError(t, err)

	assert.Equal(t, string(first.Content), string(second.Content))
	assert.Len(t, first.Document.Paths, 8)
	assert.Len(t, first.Diagnostics.WithCode(diagnostic.CodeMultipleTags), 2)
}

func TestGenerate_FatalLeavesNoOutput(t *testing.T) {
	var logs bytes.Buffer

	opts := options(t, "../../examples/reserved")

	_, err := NewGenerator(opts).Generate(testContext(&logs))
	require.Error(t, err)
	assert.True(t, diagnostic.IsKind(err, diagnostic.KindReservedName))

	_, err = os.Stat(filepath.Dir(opts.Output))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_KeepsPreviousOutputOnFailure(t *testing.T) {
	var logs bytes.Buffer

	opts := options(t, "../../examples/conflict")
	require.NoError(t, WriteFile(opts.Output, []byte("previous")))

	_, err := NewGenerator(opts).Generate(testContext(&logs))
	require.Error(t, err)

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestGenerate_NoRoots(t *testing.T) {
	var logs bytes.Buffer

	_, err := NewGenerator(options(t)).Build(testContext(&logs))
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "api.json")

	require.NoError(t, WriteFile(path, []byte("one")))
	require.NoError(t, WriteFile(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}
