// Package registry is the in-process mirror of the probe's export table: it
// maps the C symbol names external tools hook to callable thunks, so the
// harness and tests can reach every surface by the same names the foreign
// lookup uses.
package registry

import (
	"fmt"
	"sync"

	"github.com/skiy/tertest"
)

// Surface describes one probe export reachable by name. Call invokes the
// surface with the driver's fixed inputs and renders the result for humans.
type Surface struct {
	Name        string
	Description string
	Call        func() string
}

// Registry holds surfaces keyed by export name, preserving registration
// order for listings.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
	order    []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register adds a surface. Registering a duplicate or incomplete surface is
// an error.
func (registry *Registry) Register(surface Surface) error {
	if surface.Name == "" {
		return fmt.Errorf("registry: surface name required")
	}
	if surface.Call == nil {
		return fmt.Errorf("registry: surface %q has no call thunk", surface.Name)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.surfaces[surface.Name]; exists {
		return fmt.Errorf("registry: surface %q already registered", surface.Name)
	}
	registry.surfaces[surface.Name] = surface
	registry.order = append(registry.order, surface.Name)
	return nil
}

// Lookup returns the surface registered under name.
func (registry *Registry) Lookup(name string) (Surface, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	surface, ok := registry.surfaces[name]
	if !ok {
		return Surface{}, fmt.Errorf("registry: no surface named %q", name)
	}
	return surface, nil
}

// Names returns the export names in registration order.
func (registry *Registry) Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, len(registry.order))
	copy(names, registry.order)
	return names
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry holding the five probe surfaces under their
// C export names, in the driver's invocation order.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
		for _, surface := range []Surface{
			{
				Name:        "test_simple_function",
				Description: "add two integers",
				Call: func() string {
					return fmt.Sprintf("%d", tertest.Add(5, 7))
				},
			},
			{
				Name:        "test_struct_by_pointer",
				Description: "increment a record's id and double its value, in place",
				Call: func() string {
					data := tertest.TestData{ID: 10, Value: 42.5}
					tertest.MutateData(&data)
					return fmt.Sprintf("id=%d value=%g", data.ID, data.Value)
				},
			},
			{
				Name:        "test_pointer_args",
				Description: "echo a string and report a sentinel through an out parameter",
				Call: func() string {
					var out int32
					echoed := tertest.Echo("Hello from Go", &out)
					return fmt.Sprintf("%s out=%d", echoed, out)
				},
			},
			{
				Name:        "test_instance_method",
				Description: "multiply a constructed object's stored value",
				Call: func() string {
					return fmt.Sprintf("%d", tertest.NewTestObject(42).InstanceMethod(10))
				},
			},
			{
				Name:        "test_static_method",
				Description: "return a fixed constant string",
				Call:        tertest.StaticString,
			},
		} {
			if err := defaultRegistry.Register(surface); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}
