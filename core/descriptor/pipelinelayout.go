package descriptor

import "github.com/kryne-engine/kryne2/hal"

// ImplicitConstantBinding describes one constant-buffer binding synthesized
// in place of a push-constant range, for backends with no native push
// constants (spec.md §4.F).
type ImplicitConstantBinding struct {
	Stage    hal.ShaderStages
	SetIndex uint32
	Binding  uint32
	Range    hal.PushConstantRange
}

// BuildPipelineLayout assembles a hal.PipelineLayoutDescriptor from a list
// of descriptor-set layouts and push-constant ranges (spec.md §4.F).
//
// When supportsPushConstants is true, ranges pass through unchanged. When
// it is false, the builder instead synthesises one implicit constant-buffer
// binding per distinct stage visibility mask among the ranges, placed in a
// set one past the last supplied set-layout index — reproducing the
// binding-index rule SPIR-V cross uses for push-constant emulation (slot =
// last descriptor-set index + 1, per stage). The caller is responsible for
// actually creating that extra set layout and binding the corresponding
// uniform buffers; this function only computes where they go.
func BuildPipelineLayout(setLayouts []hal.BindGroupLayout, ranges []hal.PushConstantRange, supportsPushConstants bool) (hal.PipelineLayoutDescriptor, []ImplicitConstantBinding) {
	desc := hal.PipelineLayoutDescriptor{BindGroupLayouts: setLayouts}

	if supportsPushConstants {
		desc.PushConstantRanges = ranges
		return desc, nil
	}
	if len(ranges) == 0 {
		return desc, nil
	}

	implicitSet := uint32(len(setLayouts))
	var stages []hal.ShaderStages
	byStage := map[hal.ShaderStages]hal.PushConstantRange{}
	for _, r := range ranges {
		if _, seen := byStage[r.Visibility]; !seen {
			stages = append(stages, r.Visibility)
		}
		byStage[r.Visibility] = mergeRange(byStage[r.Visibility], r)
	}

	implicit := make([]ImplicitConstantBinding, len(stages))
	for i, stage := range stages {
		implicit[i] = ImplicitConstantBinding{
			Stage:    stage,
			SetIndex: implicitSet,
			Binding:  uint32(i),
			Range:    byStage[stage],
		}
	}
	return desc, implicit
}

// mergeRange widens a per-stage range to cover every byte requested for
// that stage across multiple push-constant ranges.
func mergeRange(acc, r hal.PushConstantRange) hal.PushConstantRange {
	if acc.Size == 0 {
		return r
	}
	lo := acc.Offset
	if r.Offset < lo {
		lo = r.Offset
	}
	hiAcc := acc.Offset + acc.Size
	hiR := r.Offset + r.Size
	hi := hiAcc
	if hiR > hi {
		hi = hiR
	}
	return hal.PushConstantRange{Offset: lo, Size: hi - lo, Visibility: acc.Visibility}
}
