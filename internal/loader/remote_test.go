package loader_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/testutil"
)

func newMirror(t *testing.T, units map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		img, ok := units[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(img)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteSourceServesPathKeys(t *testing.T) {
	t.Parallel()
	srv := newMirror(t, map[string][]byte{
		"/a/b/C.bin": []byte("mirrored"),
	})
	src := loader.NewRemoteSource("mirror", srv.URL, nil)

	assert.True(t, src.Contains("a/b/C.bin"))
	assert.False(t, src.Contains("a/b/Missing.bin"))

	rc, err := src.Open("a/b/C.bin")
	require.NoError(t, err)
	defer rc.Close()
	buf := make([]byte, 16)
	n, _ := rc.Read(buf)
	assert.Equal(t, []byte("mirrored"), buf[:n])
}

func TestRemoteSourceOpenReportsStatus(t *testing.T) {
	t.Parallel()
	srv := newMirror(t, nil)
	src := loader.NewRemoteSource("mirror", srv.URL, nil)

	_, err := src.Open("gone/Unit.bin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEngineResolvesThroughRemoteSource(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context()
	srv := newMirror(t, map[string][]byte{
		"/app/Main.bin": []byte("remote payload"),
	})
	engine := loader.New(loader.Options{
		Sources: []loader.Source{loader.NewRemoteSource("mirror", srv.URL, &loader.Origin{Label: "mirror"})},
	})

	unit, err := engine.Resolve(ctx, "app.Main")
	require.NoError(t, err)
	assert.Equal(t, []byte("remote payload"), unit.Image)
	assert.Equal(t, "mirror", unit.Origin.Label)
}
