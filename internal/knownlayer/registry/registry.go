package registry

import (
	"fmt"
	"slices"
	"sync"

	"mapportal/internal/knownlayer"
	"mapportal/pkg/platform/sentinel"
)

// Registry is the ordered set of known layers the portal groups records
// against. Reads hand out copies so a grouping never observes a layer
// being added or removed halfway through.
type Registry struct {
	mu     sync.RWMutex
	layers []*knownlayer.KnownLayer
}

// New builds a registry from layers in order. Duplicate IDs are rejected.
func New(layers ...*knownlayer.KnownLayer) (*Registry, error) {
	r := &Registry{}
	for _, l := range layers {
		if err := r.Add(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends layer to the end of the registry.
func (r *Registry) Add(layer *knownlayer.KnownLayer) error {
	if layer == nil {
		return fmt.Errorf("known layer is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(layer.ID()) >= 0 {
		return fmt.Errorf("known layer %q: %w", layer.ID(), sentinel.ErrConflict)
	}
	r.layers = append(r.layers, layer)
	return nil
}

// Remove deletes the layer with the given id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("known layer %q: %w", id, sentinel.ErrNotFound)
	}
	r.layers = slices.Delete(r.layers, i, i+1)
	return nil
}

// Get returns the layer with the given id.
func (r *Registry) Get(id string) (*knownlayer.KnownLayer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("known layer %q: %w", id, sentinel.ErrNotFound)
	}
	return r.layers[i], nil
}

// Layers returns a copy of the registry in order.
func (r *Registry) Layers() []*knownlayer.KnownLayer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.layers)
}

// Kinds lists the distinct kinds present, in first-seen order.
func (r *Registry) Kinds() []knownlayer.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var kinds []knownlayer.Kind
	for _, l := range r.layers {
		if !slices.Contains(kinds, l.Kind()) {
			kinds = append(kinds, l.Kind())
		}
	}
	return kinds
}

// Len returns the number of registered layers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.layers)
}

func (r *Registry) indexOf(id string) int {
	return slices.IndexFunc(r.layers, func(l *knownlayer.KnownLayer) bool {
		return l.ID() == id
	})
}
