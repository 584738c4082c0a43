// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"
)

// ErrUnknownAllocator is returned when no allocator is registered under a name.
var ErrUnknownAllocator = errors.New("surface: unknown allocator")

// Allocator creates surfaces for a filter chain.
//
// Implementations must return a zeroed surface holding one reference.
type Allocator interface {
	Allocate(width, height int, format Format) (*Surface, error)
}

// AllocatorFunc adapts a function to the Allocator interface.
type AllocatorFunc func(width, height int, format Format) (*Surface, error)

// Allocate calls f(width, height, format).
func (f AllocatorFunc) Allocate(width, height int, format Format) (*Surface, error) {
	return f(width, height, format)
}

// Simple allocates every surface with New.
var Simple Allocator = AllocatorFunc(New)

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry maps names to allocators.
//
// Example registration:
//
//	func init() {
//	    surface.Register("arena", myArenaAllocator)
//	}
//
// Example usage:
//
//	a, err := surface.Lookup("pooled")
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Allocator
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Lookup.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Allocator),
	}
}

// Register adds an allocator to the global registry. Registering a name that
// already exists replaces the previous entry.
func Register(name string, a Allocator) {
	globalRegistry.Register(name, a)
}

// Unregister removes an allocator from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// Lookup returns the allocator registered under name in the global registry.
func Lookup(name string) (Allocator, error) {
	return globalRegistry.Lookup(name)
}

// List returns all registered allocator names in lexical order.
func List() []string {
	return globalRegistry.List()
}

// Register adds an allocator to this registry.
func (r *Registry) Register(name string, a Allocator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]Allocator)
	}
	r.entries[name] = a
}

// Unregister removes an allocator from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// Lookup returns the allocator registered under name.
func (r *Registry) Lookup(name string) (Allocator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.entries[name]
	if !ok {
		return nil, &AllocatorNotFoundError{Name: name}
	}
	return a, nil
}

// List returns all registered names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllocatorNotFoundError indicates a named allocator is not registered.
// It matches ErrUnknownAllocator with errors.Is.
type AllocatorNotFoundError struct {
	Name string
}

func (e *AllocatorNotFoundError) Error() string {
	return "surface: allocator not found: " + e.Name
}

// Is reports whether target is ErrUnknownAllocator.
func (e *AllocatorNotFoundError) Is(target error) bool {
	return target == ErrUnknownAllocator
}

// defaultPool backs the "pooled" allocator.
var defaultPool = NewPool(8)

// init registers the built-in allocators.
func init() {
	Register("simple", Simple)
	Register("pooled", AllocatorFunc(defaultPool.Get))
}
