package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/testutil"
)

func TestPathKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a/b/C.bin", loader.PathKey("a.b.C"))
	assert.Equal(t, "Main.bin", loader.PathKey("Main"))
}

func TestBinaryCacheReadsStorageOnce(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"app.core.Main": []byte("payload"),
	}, testutil.Options{})

	img, ok := h.Engine.RawImage(ctx, "app.core.Main")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), img)

	again, ok := h.Engine.RawImage(ctx, "app.core.Main")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), again)
	assert.EqualValues(t, 1, h.Source.OpenCalls.Load())
}

func TestBinaryCacheHandsOutDefensiveCopies(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"app.core.Main": []byte("payload"),
	}, testutil.Options{})

	img, ok := h.Engine.RawImage(ctx, "app.core.Main")
	require.True(t, ok)
	for i := range img {
		img[i] = 'x'
	}

	again, ok := h.Engine.RawImage(ctx, "app.core.Main")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), again, "caller mutation must not reach the cached original")
}

func TestNegativeCachePersistsUntilCleared(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, nil, testutil.Options{})

	_, ok := h.Engine.RawImage(ctx, "late.Arrival")
	require.False(t, ok)
	contains := h.Source.ContainsCalls.Load()

	_, ok = h.Engine.RawImage(ctx, "late.Arrival")
	require.False(t, ok)
	assert.Equal(t, contains, h.Source.ContainsCalls.Load(),
		"negative cache must short-circuit repeated misses")

	// Content appearing later is still invisible until the negative entry is
	// explicitly cleared.
	testutil.WriteUnits(t, h.Fs, map[string][]byte{"late.Arrival": []byte("here now")})
	_, ok = h.Engine.RawImage(ctx, "late.Arrival")
	require.False(t, ok)

	h.Engine.ClearNegativeEntries("late.Arrival")
	img, ok := h.Engine.RawImage(ctx, "late.Arrival")
	require.True(t, ok)
	assert.Equal(t, []byte("here now"), img)
}

func TestReservedNameIndirection(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"_com3": []byte("device payload"),
	}, testutil.Options{})

	img, ok := h.Engine.RawImage(ctx, "com3")
	require.True(t, ok)
	assert.Equal(t, []byte("device payload"), img)

	// The result is cached under the original name, not the variant.
	opens := h.Source.OpenCalls.Load()
	img, ok = h.Engine.RawImage(ctx, "com3")
	require.True(t, ok)
	assert.Equal(t, []byte("device payload"), img)
	assert.Equal(t, opens, h.Source.OpenCalls.Load())
}

func TestReservedNameMissIsNegativeCachedUnderOriginal(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, nil, testutil.Options{})

	_, ok := h.Engine.RawImage(ctx, "NUL")
	require.False(t, ok)

	stats := h.Engine.Stats()
	assert.Equal(t, 2, stats.Negative, "both the original and the underscore variant miss")
}

func TestNonReservedShortNamesAreNotIndirected(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"misc": []byte("plain"),
	}, testutil.Options{})

	img, ok := h.Engine.RawImage(ctx, "misc")
	require.True(t, ok)
	assert.Equal(t, []byte("plain"), img)
}

func TestParentResourceFallback(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	parent := &testutil.RecordingParent{
		Resources: map[string][]byte{"sys/Trace.bin": []byte("from parent")},
	}
	h := testutil.NewHarness(t, nil, testutil.Options{Parent: parent})

	unit, err := h.Engine.Resolve(ctx, "sys.Trace")
	require.NoError(t, err)
	assert.Equal(t, []byte("from parent"), unit.Image)
	assert.EqualValues(t, 1, parent.ImageCalls.Load())

	// The parent fallback feeds the binary cache like any other hit.
	_, ok := h.Engine.RawImage(ctx, "sys.Trace")
	require.True(t, ok)
	assert.EqualValues(t, 1, parent.ImageCalls.Load())
}
