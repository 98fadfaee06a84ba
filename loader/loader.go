//go:build darwin || linux

// Package loader opens a built probe artifact and resolves its exports by
// name, which is all the harness needs to trigger and observe a probe run.
package loader

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ebitengine/purego"
)

var ErrLibraryClosed = errors.New("loader: library is closed")

// Library is a probe artifact mapped into this process.
type Library struct {
	mu     sync.RWMutex
	handle uintptr
	closed bool
}

// Open maps the shared library at path into the current process.
func Open(path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("loader: stat library: %w", err)
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("loader: dlopen %s: %w", path, err)
	}
	return &Library{handle: handle}, nil
}

// CallExport resolves and calls a zero-argument exported function.
func (library *Library) CallExport(name string) error {
	library.mu.RLock()
	defer library.mu.RUnlock()

	if library.closed {
		return ErrLibraryClosed
	}

	address, err := purego.Dlsym(library.handle, name)
	if err != nil {
		return fmt.Errorf("loader: resolve export %q: %w", name, err)
	}

	var fn func()
	purego.RegisterFunc(&fn, address)
	fn()
	return nil
}

// Probes are the pure probe surfaces bound over the foreign-function
// boundary. The mutating surfaces are exercised by the probe's own driver
// rather than from here.
type Probes struct {
	Add            func(a, b int32) int32
	InstanceMethod func(initial, multiplier int32) int32
	StaticString   func() string
}

// Probes resolves the pure surfaces by their C export names.
func (library *Library) Probes() (*Probes, error) {
	library.mu.RLock()
	defer library.mu.RUnlock()

	if library.closed {
		return nil, ErrLibraryClosed
	}

	probes := &Probes{}
	for _, binding := range []struct {
		name string
		fn   any
	}{
		{name: "test_simple_function", fn: &probes.Add},
		{name: "test_instance_method", fn: &probes.InstanceMethod},
		{name: "test_static_method", fn: &probes.StaticString},
	} {
		address, err := purego.Dlsym(library.handle, binding.name)
		if err != nil {
			return nil, fmt.Errorf("loader: resolve export %q: %w", binding.name, err)
		}
		purego.RegisterFunc(binding.fn, address)
	}
	return probes, nil
}

// Close unmaps the library. Never call this while a Go c-shared module's
// runtime is still live (for example after triggering initialize); unmapping
// it can crash the host process.
func (library *Library) Close() error {
	library.mu.Lock()
	defer library.mu.Unlock()

	if library.closed {
		return nil
	}
	library.closed = true

	if library.handle != 0 {
		if err := purego.Dlclose(library.handle); err != nil {
			return fmt.Errorf("loader: dlclose: %w", err)
		}
		library.handle = 0
	}
	return nil
}
