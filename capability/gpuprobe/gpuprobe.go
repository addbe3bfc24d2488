// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Package gpuprobe registers a wgpu-backed GPU prober with the capability
// package.
//
// Import it for its side effect:
//
//	import _ "github.com/gogpu/fx/capability/gpuprobe"
//
// The prober creates a wgpu instance, requests a low-power adapter and
// compiles a minimal shader with naga. Any adapter counts as the baseline
// level; an adapter that is not a CPU rasterizer counts as advanced.
// Everything acquired during the probe is released before it returns.
package gpuprobe

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
	_ "github.com/gogpu/wgpu/hal/allbackends" // platform GPU backends
)

// probeShader is compiled to confirm that the shader toolchain works.
const probeShader = `
@vertex
fn main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

// Prober is a capability.GPUProber backed by wgpu.
type Prober struct {
	requestAdapter func() (gputypes.AdapterInfo, error)
}

// New returns a Prober using the platform's wgpu backends.
func New() *Prober {
	return &Prober{requestAdapter: requestAdapter}
}

// Name implements capability.GPUProber.
func (p *Prober) Name() string { return "wgpu" }

// Probe implements capability.GPUProber.
func (p *Prober) Probe() (capability.GPULevel, error) {
	if _, err := naga.CompileWithOptions(probeShader, naga.CompileOptions{}); err != nil {
		return capability.GPUNone, fmt.Errorf("gpuprobe: compile probe shader: %w", err)
	}
	info, err := p.requestAdapter()
	if err != nil {
		return capability.GPUNone, err
	}
	level := levelFor(info)
	fx.Logger().Info("gpu adapter probed",
		"name", info.Name,
		"device_type", info.DeviceType.String(),
		"level", level.String(),
	)
	return level, nil
}

func levelFor(info gputypes.AdapterInfo) capability.GPULevel {
	if info.DeviceType == gputypes.DeviceTypeCPU {
		return capability.GPUBaseline
	}
	return capability.GPUAdvanced
}

func requestAdapter() (gputypes.AdapterInfo, error) {
	inst, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: wgpu.BackendsAll})
	if err != nil {
		return gputypes.AdapterInfo{}, fmt.Errorf("gpuprobe: create instance: %w", err)
	}
	defer inst.Release()

	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceLowPower,
	})
	if err != nil {
		return gputypes.AdapterInfo{}, fmt.Errorf("gpuprobe: request adapter: %w", err)
	}
	if adapter == nil {
		return gputypes.AdapterInfo{}, errors.New("gpuprobe: no adapter")
	}
	defer adapter.Release()
	return adapter.Info(), nil
}

func init() {
	if err := capability.RegisterGPUProber(New()); err != nil {
		fx.Logger().Warn("GPU prober not available", "err", err)
	}
}
