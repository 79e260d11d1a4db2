package registry

import "github.com/kryne-engine/kryne2/hal"

// rowPitchAlignment is the byte alignment row pitches are padded to before
// a staging buffer upload, matching the common GPU copy-alignment
// requirement (Vulkan's optimalBufferCopyRowPitchAlignment / D3D12's
// D3D12_TEXTURE_DATA_PITCH_ALIGNMENT are both 256-byte in practice).
const rowPitchAlignment = 256

// SubResourceFootprint describes where one mip level of one array layer
// lands within a staging buffer upload, and how large it is.
type SubResourceFootprint struct {
	MipLevel   uint32
	ArrayLayer uint32
	Width      uint32
	Height     uint32
	Depth      uint32
	RowPitch   uint64
	SlicePitch uint64
	Offset     uint64
}

func texelSize(f hal.Format) uint64 {
	switch f {
	case hal.FormatR8Unorm:
		return 1
	case hal.FormatRG8Unorm:
		return 2
	case hal.FormatRGBA8Unorm, hal.FormatRGBA8UnormSRGB, hal.FormatBGRA8Unorm, hal.FormatBGRA8UnormSRGB:
		return 4
	case hal.FormatR16Float:
		return 2
	case hal.FormatRG16Float:
		return 4
	case hal.FormatRGBA16Float:
		return 8
	case hal.FormatR32Float, hal.FormatR32Uint:
		return 4
	case hal.FormatRG32Float:
		return 8
	case hal.FormatRGBA32Float, hal.FormatRGBA32Uint:
		return 16
	case hal.FormatDepth32Float:
		return 4
	case hal.FormatDepth24PlusStencil8:
		return 4
	default:
		return 4
	}
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

func mipExtent(v, level uint32) uint32 {
	e := v >> level
	if e == 0 {
		e = 1
	}
	return e
}

// FetchTextureSubResourcesMemoryFootprints returns the per-mip, per-array
// layout required to populate a staging buffer for desc (spec.md §4.D),
// in (array layer, mip level) order with layers as the outer loop —
// matching the order a backend's CopyBufferToTexture region list expects.
func FetchTextureSubResourcesMemoryFootprints(desc *hal.TextureDescriptor) []SubResourceFootprint {
	layers := uint32(1)
	depth := uint32(1)
	if desc.Dimension == hal.Texture3D {
		depth = desc.DepthOrLayers
	} else {
		layers = desc.DepthOrLayers
	}

	texel := texelSize(desc.Format)
	var out []SubResourceFootprint
	var offset uint64

	for layer := uint32(0); layer < layers; layer++ {
		for mip := uint32(0); mip < desc.MipLevelCount; mip++ {
			w := mipExtent(desc.Width, mip)
			h := mipExtent(desc.Height, mip)
			d := uint32(1)
			if desc.Dimension == hal.Texture3D {
				d = mipExtent(depth, mip)
			}

			rowPitch := alignUp(uint64(w)*texel, rowPitchAlignment)
			slicePitch := rowPitch * uint64(h)

			out = append(out, SubResourceFootprint{
				MipLevel:   mip,
				ArrayLayer: layer,
				Width:      w,
				Height:     h,
				Depth:      d,
				RowPitch:   rowPitch,
				SlicePitch: slicePitch,
				Offset:     offset,
			})
			offset += slicePitch * uint64(d)
		}
	}
	return out
}
