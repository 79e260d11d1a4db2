package rendergraph

import "github.com/kryne-engine/kryne2/internal/util"

// renderPassHash computes the render-pass signature spec.md §4.I calls for
// ("GetRenderPassHash") so the executor can recognise when two passes would
// open structurally identical render passes and let the backend reuse a
// native render-pass object instead of rebuilding one. The hash covers the
// pass name and each attachment's view handle and load/store ops; clear
// values are not included. Compute and transfer passes hash
// to zero — neither ever opens a render pass.
func renderPassHash(p *Pass) uint64 {
	if p.kind != PassRender {
		return 0
	}
	h := util.Hash64String(fnvSeed, p.name)
	for _, a := range p.colorAttachments {
		h = util.Hash64Uint32(h, uint32(a.View))
		h = util.Hash64Uint32(h, uint32(a.Load)<<8|uint32(a.Store))
	}
	if d := p.depthAttachment; d != nil {
		h = util.Hash64Uint32(h, uint32(d.View))
		h = util.Hash64Uint32(h, uint32(d.DepthLoad)<<8|uint32(d.DepthStore))
	}
	return h
}

// fnvSeed is the FNV-1a offset basis; Hash64String needs an explicit seed
// since this hash folds several fields in sequence rather than hashing one
// contiguous buffer.
const fnvSeed = 14695981039346656037

// Hash returns the pass's render-pass signature (meaningful only for
// PassRender passes; always zero for PassCompute and PassTransfer).
func (p *Pass) Hash() uint64 { return p.hash }
