// Package depgraph owns the directed module-import graph that contracts
// are checked against. Modules are fully-qualified dotted names; an edge
// importer→imported means the importer's source pulls in the imported
// module directly.
package depgraph

import (
	"errors"
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"

	"github.com/stratalint/stratalint/internal/contract"
)

// Graph is a module-import graph. Build it fully, then treat it as
// read-only: lookups are safe to share across concurrent contract
// checks, mutation is not.
type Graph struct {
	g       graphlib.Graph[string, string]
	modules map[string]struct{}

	// adj caches sorted adjacency lists; invalidated on mutation.
	adj map[string][]string
}

// New creates an empty import graph.
func New() *Graph {
	return &Graph{
		g:       graphlib.New(graphlib.StringHash, graphlib.Directed()),
		modules: make(map[string]struct{}),
	}
}

// AddModule registers a module. Idempotent.
func (dg *Graph) AddModule(name string) {
	if name == "" {
		return
	}
	if _, ok := dg.modules[name]; ok {
		return
	}
	dg.modules[name] = struct{}{}
	_ = dg.g.AddVertex(name)
	dg.adj = nil
}

// AddImport records that importer imports imported. Both modules are
// registered as a side effect. Self-imports and duplicates are dropped.
func (dg *Graph) AddImport(importer, imported string) {
	if importer == "" || imported == "" || importer == imported {
		return
	}
	dg.AddModule(importer)
	dg.AddModule(imported)
	if err := dg.g.AddEdge(importer, imported); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		// Vertices exist and the graph is not acyclic-constrained, so
		// the only reachable error is the duplicate edge handled above.
		panic("depgraph: " + err.Error())
	}
	dg.adj = nil
}

// Modules returns every known module, sorted.
func (dg *Graph) Modules() []string {
	out := make([]string, 0, len(dg.modules))
	for m := range dg.modules {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// ImportCount returns the number of import edges.
func (dg *Graph) ImportCount() int {
	n, _ := dg.g.Size()
	return n
}

// Imports returns the modules directly imported by importer, sorted.
func (dg *Graph) Imports(importer string) []string {
	return dg.adjacency()[importer]
}

// Descendants returns every module strictly nested under module, any
// depth, sorted. An unknown module simply has no descendants.
func (dg *Graph) Descendants(module string) []string {
	prefix := module + "."
	var out []string
	for m := range dg.modules {
		if strings.HasPrefix(m, prefix) {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// FindPath returns one import chain showing that importer imports
// imported, directly or transitively, skipping any edge in ignore.
// The chain starts at importer and ends at imported; nil means no
// chain exists. Breadth-first with sorted adjacency, so the witness
// is a shortest chain and deterministic.
func (dg *Graph) FindPath(importer, imported string, ignore []contract.ImportPath) []string {
	if importer == imported {
		return nil
	}
	if _, ok := dg.modules[importer]; !ok {
		return nil
	}
	if _, ok := dg.modules[imported]; !ok {
		return nil
	}

	ignored := make(map[contract.ImportPath]struct{}, len(ignore))
	for _, p := range ignore {
		ignored[p] = struct{}{}
	}

	adj := dg.adjacency()
	parent := map[string]string{importer: ""}
	queue := []string{importer}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adj[current] {
			if _, skip := ignored[contract.ImportPath{Importer: current, Imported: next}]; skip {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == imported {
				return rebuild(parent, importer, imported)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func rebuild(parent map[string]string, from, to string) []string {
	var reversed []string
	for m := to; m != ""; m = parent[m] {
		reversed = append(reversed, m)
		if m == from {
			break
		}
	}
	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

func (dg *Graph) adjacency() map[string][]string {
	if dg.adj != nil {
		return dg.adj
	}
	raw, err := dg.g.AdjacencyMap()
	if err != nil {
		panic("depgraph: " + err.Error())
	}
	adj := make(map[string][]string, len(raw))
	for from, edges := range raw {
		if len(edges) == 0 {
			continue
		}
		targets := make([]string, 0, len(edges))
		for to := range edges {
			targets = append(targets, to)
		}
		sort.Strings(targets)
		adj[from] = targets
	}
	dg.adj = adj
	return adj
}
