package rendergraph

import (
	"fmt"

	"github.com/kryne-engine/kryne2/core/pool"
)

// Builder collects pass declarations in declaration order and resolves them
// into a Graph, grounded on the original Builder.hpp's DeclarePass +
// SimplePool<PassDeclaration>.
type Builder struct {
	registry *Registry
	passes   []*Pass
	versions map[ResourceHandle]uint32
	targets  map[ResourceHandle]bool
}

// NewBuilder creates a builder for one frame's render graph, fronting reg
// for dependency resolution.
func NewBuilder(reg *Registry) *Builder {
	return &Builder{
		registry: reg,
		versions: make(map[ResourceHandle]uint32),
		targets:  make(map[ResourceHandle]bool),
	}
}

// DeclarePass appends a new pass of the given type and returns its fluent
// builder.
func (b *Builder) DeclarePass(kind PassType, name string) *PassBuilder {
	p := &Pass{name: name, kind: kind}
	b.passes = append(b.passes, p)
	return &PassBuilder{b: b, pass: p}
}

// DeclareTargetResource marks resource as a graph output: BuildDag keeps
// every pass that is a transitive ancestor of one that last wrote it, and
// culls everything else (spec.md §4.I "dead-pass culling").
func (b *Builder) DeclareTargetResource(resource ResourceHandle) {
	b.targets[resource] = true
}

// producerKey identifies one (resource, version) pair's producing pass.
type producerKey struct {
	resource ResourceHandle
	version  uint32
}

// BuildDag resolves the declared passes into a Graph: it connects
// read/write-after-write edges by matching each dependency's
// (resource, version) against the pass that produced that version, culls
// every pass that neither writes a DeclareTargetResource resource nor is an
// ancestor of one that does, and computes each surviving pass's topological execution order.
//
// A read against a version with no recorded producer is treated as an
// externally-supplied resource (version 0, e.g. content uploaded before the
// graph ran) and creates no edge. A read against a version greater than
// zero with no producer is a builder misuse and is a hard error — the
// original's failure model surfaces these through assertions during build,
// not partial execution (spec.md §4.J "hard-error-only: no partial-submit
// mode").
func (b *Builder) BuildDag() (*Graph, error) {
	for _, p := range b.passes {
		for _, d := range p.reads {
			if b.registry.GetUnderlyingResource(d.resource) == pool.Invalid {
				return nil, fmt.Errorf("rendergraph: pass %q reads unregistered resource %v", p.name, d.resource)
			}
		}
		for _, d := range p.writes {
			if b.registry.GetUnderlyingResource(d.resource) == pool.Invalid {
				return nil, fmt.Errorf("rendergraph: pass %q writes unregistered resource %v", p.name, d.resource)
			}
		}
	}

	producer := make(map[producerKey]int)

	for i, p := range b.passes {
		for _, w := range p.writes {
			if w.version > 1 {
				key := producerKey{w.resource, w.version - 1}
				if parent, ok := producer[key]; ok {
					b.passes[parent].children = append(b.passes[parent].children, i)
				} else {
					return nil, fmt.Errorf("rendergraph: pass %q writes resource %v version %d with no prior producer", p.name, w.resource, w.version)
				}
			}
			producer[producerKey{w.resource, w.version}] = i
		}
		for _, r := range p.reads {
			if r.version == 0 {
				continue
			}
			key := producerKey{r.resource, r.version}
			parent, ok := producer[key]
			if !ok {
				return nil, fmt.Errorf("rendergraph: pass %q reads resource %v version %d with no producer", p.name, r.resource, r.version)
			}
			if parent != i {
				b.passes[parent].children = append(b.passes[parent].children, i)
			}
		}
	}

	// A pass is alive if it writes a target resource, or is an ancestor
	// (via children edges, traversed backward) of an alive pass.
	alive := make([]bool, len(b.passes))
	for i, p := range b.passes {
		for _, w := range p.writes {
			if b.targets[w.resource] {
				alive[i] = true
				break
			}
		}
	}
	// parents[i] is every pass with i in its children list.
	parents := make([][]int, len(b.passes))
	for i, p := range b.passes {
		for _, c := range p.children {
			parents[c] = append(parents[c], i)
		}
	}
	queue := make([]int, 0, len(b.passes))
	for i, live := range alive {
		if live {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, parent := range parents[i] {
			if !alive[parent] {
				alive[parent] = true
				queue = append(queue, parent)
			}
		}
	}
	for i, p := range b.passes {
		p.alive = alive[i]
	}

	order, err := topologicalOrder(b.passes, alive)
	if err != nil {
		return nil, err
	}
	for _, i := range order {
		b.passes[i].hash = renderPassHash(b.passes[i])
	}

	return &Graph{passes: b.passes, order: order}, nil
}

// topologicalOrder returns the indices of alive passes in an order that
// respects every children edge, via Kahn's algorithm.
func topologicalOrder(passes []*Pass, alive []bool) ([]int, error) {
	indegree := make([]int, len(passes))
	for i, p := range passes {
		if !alive[i] {
			continue
		}
		for _, c := range p.children {
			if alive[c] {
				indegree[c]++
			}
		}
	}
	queue := make([]int, 0, len(passes))
	for i, live := range alive {
		if live && indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, len(passes))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, c := range passes[i].children {
			if !alive[c] {
				continue
			}
			indegree[c]--
			if indegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	aliveCount := 0
	for _, live := range alive {
		if live {
			aliveCount++
		}
	}
	if len(order) != aliveCount {
		return nil, fmt.Errorf("rendergraph: dependency cycle detected among declared passes")
	}
	return order, nil
}
