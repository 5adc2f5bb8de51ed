package testutil

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/vk/modforge/internal/loader"
)

// CountingSource wraps a Source and counts how often the underlying storage
// is consulted.
type CountingSource struct {
	Inner         loader.Source
	ContainsCalls atomic.Int64
	OpenCalls     atomic.Int64
}

func (s *CountingSource) Name() string { return s.Inner.Name() }

func (s *CountingSource) Contains(key string) bool {
	s.ContainsCalls.Add(1)
	return s.Inner.Contains(key)
}

func (s *CountingSource) Open(key string) (io.ReadCloser, error) {
	s.OpenCalls.Add(1)
	return s.Inner.Open(key)
}

func (s *CountingSource) Origin() *loader.Origin { return s.Inner.Origin() }

// RecordingParent is a scripted parent loader that records every delegated
// call.
type RecordingParent struct {
	Units     map[string]*loader.Unit
	Resources map[string][]byte

	LoadCalls  atomic.Int64
	ImageCalls atomic.Int64
}

func (p *RecordingParent) Load(_ context.Context, name string) (*loader.Unit, error) {
	p.LoadCalls.Add(1)
	if u, ok := p.Units[name]; ok {
		return u, nil
	}
	return nil, &loader.NotFoundError{Name: name}
}

func (p *RecordingParent) Image(_ context.Context, key string) ([]byte, bool) {
	p.ImageCalls.Add(1)
	img, ok := p.Resources[key]
	return img, ok
}

// FuncTransform adapts a plain function into a loader.Transform, counting
// invocations.
type FuncTransform struct {
	ID    string
	Fn    func(internalName, finalName string, image []byte) ([]byte, error)
	Calls atomic.Int64
}

func (t *FuncTransform) Name() string { return t.ID }

func (t *FuncTransform) Transform(internalName, finalName string, image []byte) ([]byte, error) {
	t.Calls.Add(1)
	return t.Fn(internalName, finalName, image)
}
