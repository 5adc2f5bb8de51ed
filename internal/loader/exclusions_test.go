package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixSetMatchesAnyPrefix(t *testing.T) {
	t.Parallel()
	var s prefixSet
	s.add("std.")
	s.add("vendor.lib.")

	assert.True(t, s.matches("std.io.Buffer"))
	assert.True(t, s.matches("vendor.lib.Blob"))
	assert.True(t, s.matches("std."), "a name equal to a prefix matches")
	assert.False(t, s.matches("st"))
	assert.False(t, s.matches("app.Main"))
}

func TestPrefixSetDeduplicatesAndIgnoresEmpty(t *testing.T) {
	t.Parallel()
	var s prefixSet
	s.add("std.")
	s.add("std.")
	s.add("")

	assert.Equal(t, []string{"std."}, s.entries())
	assert.False(t, s.matches("anything"), "an empty prefix must never be admitted")
}

func TestUnitCacheInstallKeepsFirstWinner(t *testing.T) {
	t.Parallel()
	var c unitCache
	first := &Unit{Name: "app.Main"}
	second := &Unit{Name: "app.Main"}

	winner, lost := c.install(first)
	assert.Same(t, first, winner)
	assert.False(t, lost)

	winner, lost = c.install(second)
	assert.Same(t, first, winner)
	assert.True(t, lost)
	assert.Equal(t, 1, c.len())
}

func TestNamespaceOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a.b", namespaceOf("a.b.C"))
	assert.Equal(t, "", namespaceOf("Main"))
}
