package loader_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/testutil"
)

func TestPipelineAppliesTransformsInRegistrationOrder(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"app.core.Main": []byte("base"),
	}, testutil.Options{})
	h.Engine.RegisterTransform(ctx, "stamp", map[string]cty.Value{"marker": cty.StringVal("|T1")})
	h.Engine.RegisterTransform(ctx, "stamp", map[string]cty.Value{"marker": cty.StringVal("|T2")})

	unit, err := h.Engine.Resolve(ctx, "app.core.Main")
	require.NoError(t, err)
	assert.Equal(t, []byte("base|T1|T2"), unit.Image, "T2 must receive T1's output")
}

func TestUnsupportedImageSkipsTransformAndContinues(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"app.core.Main": []byte("base"),
	}, testutil.Options{})
	tooNew := &testutil.FuncTransform{ID: "too-new", Fn: func(_, _ string, _ []byte) ([]byte, error) {
		return nil, fmt.Errorf("image version 99: %w", loader.ErrUnsupportedImage)
	}}
	h.Engine.AddTransform(tooNew)
	h.Engine.RegisterTransform(ctx, "stamp", map[string]cty.Value{"marker": cty.StringVal("|T2")})

	unit, err := h.Engine.Resolve(ctx, "app.core.Main")
	require.NoError(t, err)
	assert.EqualValues(t, 1, tooNew.Calls.Load())
	assert.Equal(t, []byte("base|T2"), unit.Image,
		"the skipped transform must leave the image unchanged for its successor")
}

func TestPipelineFatalErrorMarksNamePermanentlyFailed(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"app.core.Main": []byte("base"),
	}, testutil.Options{})
	broken := &testutil.FuncTransform{ID: "broken", Fn: func(_, _ string, _ []byte) ([]byte, error) {
		return nil, errors.New("internal corruption")
	}}
	h.Engine.AddTransform(broken)

	_, err := h.Engine.Resolve(ctx, "app.core.Main")
	var nfe *loader.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "app.core.Main", nfe.Name)

	// Not retried: the second attempt fails fast without reaching the pipeline.
	_, err = h.Engine.Resolve(ctx, "app.core.Main")
	require.ErrorAs(t, err, &nfe)
	assert.EqualValues(t, 1, broken.Calls.Load())
}

func TestTransformMaterializesAbsentImage(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, nil, testutil.Options{})
	synth := &testutil.FuncTransform{ID: "synth", Fn: func(_, finalName string, image []byte) ([]byte, error) {
		if image == nil && finalName == "gen.Synthetic" {
			return []byte("generated"), nil
		}
		return image, nil
	}}
	h.Engine.AddTransform(synth)

	unit, err := h.Engine.Resolve(ctx, "gen.Synthetic")
	require.NoError(t, err)
	assert.Equal(t, []byte("generated"), unit.Image)
}

func TestTransformWithdrawsPresentImage(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"secret.Keys": []byte("sensitive"),
	}, testutil.Options{})
	h.Engine.RegisterTransform(ctx, "nullify", map[string]cty.Value{
		"prefixes": cty.ListVal([]cty.Value{cty.StringVal("secret.")}),
	})

	_, err := h.Engine.Resolve(ctx, "secret.Keys")
	var nfe *loader.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "secret.Keys", nfe.Name)
}

func TestReentrantTransformMayResolvePeers(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	h := testutil.NewHarness(t, map[string][]byte{
		"app.Main":   []byte("main:"),
		"app.Header": []byte("hdr"),
	}, testutil.Options{})
	inline := &testutil.FuncTransform{ID: "inline", Fn: nil}
	inline.Fn = func(_, finalName string, image []byte) ([]byte, error) {
		if finalName != "app.Main" {
			return image, nil
		}
		peer, ok := h.Engine.RawImage(ctx, "app.Header")
		if !ok {
			return nil, errors.New("peer content missing")
		}
		return append(image, peer...), nil
	}
	h.Engine.AddTransform(inline)

	unit, err := h.Engine.Resolve(ctx, "app.Main")
	require.NoError(t, err)
	assert.Equal(t, []byte("main:hdr"), unit.Image)
}
