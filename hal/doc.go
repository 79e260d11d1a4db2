// Package hal provides the Hardware Abstraction Layer for the Kryne Engine
// graphics runtime (spec.md §6, "External Interfaces").
//
// The HAL defines backend-agnostic, frame-id-threaded interfaces for GPU
// operations, allowing different concrete backends (Vulkan, DirectX 12,
// Metal) to be used interchangeably behind a single public contract. Only
// the in-repo reference backend, hal/noop, ships a concrete implementation;
// the uniform contract is what is specified, per the runtime's
// purpose-and-scope statement excluding real backend drivers.
//
// # Architecture
//
//  1. Provider - factory registered per backend variant (entry point)
//  2. Instance - adapter enumeration and surface creation
//  3. Adapter - physical GPU representation
//  4. Device - frame-pacing, resource creation, command-encoder creation
//  5. Queue - command-buffer submission and presentation
//  6. CommandEncoder / RenderPassEncoder / ComputePassEncoder - recording
//
// # Design principles
//
// The HAL prioritizes portability over safety, delegating validation to the
// higher-level resource registry (package registry). Most methods are unsafe
// in terms of GPU state validation; only unrecoverable errors are returned
// (out of memory, device lost).
//
// # Frame pacing
//
// Every Device method that depends on frame pacing threads an explicit
// frame id rather than relying on internal state: EndFrame(frameID),
// WaitForFrame(frameID), IsFrameExecuted(frameID). Frame ids are monotonic,
// starting at 1 (spec.md §3).
//
// # Backend registration
//
// Backend packages register themselves using RegisterProvider from an
// init() function. The root façade queries the registry to select a
// backend at construction:
//
//	provider, ok := hal.GetProvider(hal.BackendVulkan)
//	if !ok {
//		return fmt.Errorf("vulkan backend not available")
//	}
//	instance, err := provider.CreateInstance(desc)
//
// # Thread safety
//
// Unless stated otherwise, HAL interfaces are not thread-safe; the caller
// serialises access (the root kryne2 package runs its device calls on one
// internal/thread.Thread). Provider registration (RegisterProvider, GetProvider) is
// thread-safe.
package hal
