package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "shop", PkgAlias("contract-generator/examples/shop"))
	assert.Empty(t, PkgAlias(""))
}

func TestWithinModule(t *testing.T) {
	assert.True(t, WithinModule("contract-generator", "contract-generator"))
	assert.True(t, WithinModule("contract-generator/examples/shop", "contract-generator"))
	assert.False(t, WithinModule("contract-generator-extra/x", "contract-generator"))
	assert.False(t, WithinModule("time", ""))
}

func TestLooksStandard(t *testing.T) {
	assert.True(t, LooksStandard("time"))
	assert.True(t, LooksStandard("encoding/json"))
	assert.False(t, LooksStandard("github.com/google/uuid"))
	assert.False(t, LooksStandard("cloud.google.com/go/civil"))
	assert.False(t, LooksStandard(""))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Dedupe([]string{"a", "b", "a", "b"}))
	assert.Equal(t, []string{"x"}, Dedupe([]string{"x"}))
}
