//go:build !darwin && !linux

package loader

import "errors"

var ErrLibraryClosed = errors.New("loader: library is closed")

var errUnsupported = errors.New("loader: only supported on linux and darwin")

type Library struct{}

func Open(path string) (*Library, error) {
	_ = path
	return nil, errUnsupported
}

func (library *Library) CallExport(name string) error {
	_ = name
	return errUnsupported
}

type Probes struct {
	Add            func(a, b int32) int32
	InstanceMethod func(initial, multiplier int32) int32
	StaticString   func() string
}

func (library *Library) Probes() (*Probes, error) {
	return nil, errUnsupported
}

func (library *Library) Close() error {
	return nil
}
