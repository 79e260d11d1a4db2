package rendergraph

import "fmt"

// Graph is the resolved output of Builder.BuildDag: every declared pass,
// plus a topological order over the ones that survived dead-pass culling.
type Graph struct {
	passes []*Pass
	order  []int
}

// AlivePasses returns the surviving passes in an order that respects every
// declared dependency.
func (g *Graph) AlivePasses() []*Pass {
	out := make([]*Pass, len(g.order))
	for i, idx := range g.order {
		out[i] = g.passes[idx]
	}
	return out
}

// CulledCount reports how many declared passes were dropped as dead.
func (g *Graph) CulledCount() int {
	return len(g.passes) - len(g.order)
}

// DumpDot renders the graph (including culled passes, marked dashed) as
// Graphviz DOT source, for the debug DAG dump spec.md §4.I calls for.
func (g *Graph) DumpDot() string {
	out := "digraph rendergraph {\n"
	for i, p := range g.passes {
		style := "solid"
		if !p.alive {
			style = "dashed"
		}
		out += fmt.Sprintf("  p%d [label=%q style=%s];\n", i, p.name, style)
		for _, c := range p.children {
			out += fmt.Sprintf("  p%d -> p%d;\n", i, c)
		}
	}
	out += "}\n"
	return out
}
