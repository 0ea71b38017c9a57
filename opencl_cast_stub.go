//go:build !opencl

package main

import (
	"errors"

	"raycaster/internal/raycast"
)

type openCLCaster struct{}

func newOpenCLCaster(*raycast.Grid) (*openCLCaster, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (c *openCLCaster) CastColumns(*raycast.Camera, []raycast.Hit) error {
	return errors.New("OpenCL caster unavailable")
}

func (c *openCLCaster) Close() {}

func (c *openCLCaster) DeviceName() string { return "" }
