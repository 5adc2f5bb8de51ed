package loader

import (
	"bytes"
	"fmt"
	"io"

	"resty.dev/v3"
)

// RemoteSource fetches unit images from an HTTP mirror. It sits in the search
// path like any other source; a unit at name a.b.C is fetched from
// <base URL>/a/b/C.bin with a one-shot GET.
type RemoteSource struct {
	name   string
	client *resty.Client
	origin *Origin
}

// NewRemoteSource creates a source backed by the given base URL.
func NewRemoteSource(name, baseURL string, origin *Origin) *RemoteSource {
	return &RemoteSource{
		name:   name,
		client: resty.New().SetBaseURL(baseURL),
		origin: origin,
	}
}

func (s *RemoteSource) Name() string { return s.name }

func (s *RemoteSource) Contains(key string) bool {
	res, err := s.client.R().Head("/" + key)
	return err == nil && res.IsSuccess()
}

func (s *RemoteSource) Open(key string) (io.ReadCloser, error) {
	res, err := s.client.R().Get("/" + key)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("remote source %s: status %d for %q", s.name, res.StatusCode(), key)
	}
	return io.NopCloser(bytes.NewReader(res.Bytes())), nil
}

func (s *RemoteSource) Origin() *Origin { return s.origin }
