package stamp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/transforms/stamp"
)

func TestStampAppendsMarker(t *testing.T) {
	t.Parallel()
	tr, err := stamp.New(context.Background(), map[string]cty.Value{
		"marker": cty.StringVal("|v1"),
	})
	require.NoError(t, err)

	out, err := tr.Transform("a.B", "a.B", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data|v1"), out)
}

func TestStampPassesAbsentImageThrough(t *testing.T) {
	t.Parallel()
	tr, err := stamp.New(context.Background(), map[string]cty.Value{
		"marker": cty.StringVal("|v1"),
	})
	require.NoError(t, err)

	out, err := tr.Transform("a.B", "a.B", nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestStampRequiresMarker(t *testing.T) {
	t.Parallel()
	_, err := stamp.New(context.Background(), nil)
	require.Error(t, err)

	_, err = stamp.New(context.Background(), map[string]cty.Value{
		"marker": cty.StringVal(""),
	})
	require.Error(t, err)
}
