package descriptor

import (
	"github.com/kryne-engine/kryne2/core/pool"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
)

// bindingTypeBits is wide enough for hal.BindingType's five values.
const bindingTypeBits = 4
const bindingTypeMask = 1<<bindingTypeBits - 1

// BindingID packs a binding's type into its low bits and its binding
// index into the high bits (spec.md §4.E "Layout creation returns a
// packed per-binding id ... the packing dedicates the low bits to type
// and the high bits to the binding offset").
type BindingID uint32

func packBindingID(t hal.BindingType, binding uint32) BindingID {
	return BindingID(uint32(t)&bindingTypeMask | (binding << bindingTypeBits))
}

// Type returns the binding's resource kind.
func (id BindingID) Type() hal.BindingType { return hal.BindingType(uint32(id) & bindingTypeMask) }

// Binding returns the binding's index within its layout.
func (id BindingID) Binding() uint32 { return uint32(id) >> bindingTypeBits }

// Layout is a created descriptor-set layout together with the packed
// binding ids for each of its entries, in the same order as the
// descriptor's Entries.
type Layout struct {
	Handle   pool.DescriptorSetLayoutHandle
	Native   hal.BindGroupLayout
	Bindings []BindingID
}

// CreateLayout registers desc with reg. Binding indices left at zero
// across every entry are treated as implicit and assigned densely from 0;
// any non-zero binding index marks the whole descriptor as explicit
// (spec.md §4.E: "Binding indices may be explicit or implicit (dense from
// 0)").
func CreateLayout(reg *registry.Registry, desc hal.BindGroupLayoutDescriptor) (*Layout, error) {
	implicit := true
	for _, e := range desc.Entries {
		if e.Binding != 0 {
			implicit = false
			break
		}
	}

	entries := make([]hal.BindGroupLayoutEntry, len(desc.Entries))
	copy(entries, desc.Entries)
	if implicit {
		for i := range entries {
			entries[i].Binding = uint32(i)
		}
	}
	desc.Entries = entries

	h, err := reg.CreateBindGroupLayout(desc)
	if err != nil {
		return nil, err
	}
	native, _, _ := reg.GetBindGroupLayout(h)

	bindings := make([]BindingID, len(entries))
	for i, e := range entries {
		bindings[i] = packBindingID(e.Type, e.Binding)
	}

	return &Layout{Handle: h, Native: native, Bindings: bindings}, nil
}
