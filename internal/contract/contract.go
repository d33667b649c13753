package contract

import (
	"fmt"

	"github.com/stratalint/stratalint/internal/trace"
)

// Layer is one stratum of a layering stack. Lower index = more
// fundamental (most depended upon).
type Layer struct {
	Name string
}

// Module returns the fully-qualified module for this layer under pkg.
func (l Layer) Module(pkg string) string {
	return pkg + "." + l.Name
}

func (l Layer) String() string {
	return l.Name
}

// ImportPath is a single importer→imported edge. Used only as a
// whitelist entry: an edge the path search must ignore.
type ImportPath struct {
	Importer string
	Imported string
}

func (p ImportPath) String() string {
	return p.Importer + " <- " + p.Imported
}

// Graph is the dependency graph contract consumed by the checker.
// The graph is built elsewhere (scan, snapshot) and must be read-only
// for the duration of a check.
type Graph interface {
	// Descendants returns every module strictly nested under module,
	// any depth. Empty if the module is unknown or a leaf.
	Descendants(module string) []string

	// FindPath returns one import chain showing that importer imports
	// imported, directly or transitively, ignoring the given edges.
	// The first element is the importer, the last the imported.
	// Returns nil if no such chain exists.
	FindPath(importer, imported string, ignore []ImportPath) []string
}

// Contract is a named layering rule set applied to one or more packages.
// Immutable after construction except for the single Check operation.
type Contract struct {
	Name             string
	Packages         []string
	Layers           []Layer
	WhitelistedPaths []ImportPath

	// Recursive is accepted from configuration and stored but not
	// consulted by detection, matching the declared config surface.
	Recursive bool

	result *Result
}

// New constructs a Contract from configuration values.
func New(name string, packages []string, layers []Layer, whitelisted []ImportPath, recursive bool) *Contract {
	return &Contract{
		Name:             name,
		Packages:         packages,
		Layers:           layers,
		WhitelistedPaths: whitelisted,
		Recursive:        recursive,
	}
}

func (c *Contract) String() string {
	return c.Name
}

// Checked reports whether Check has run on this contract.
func (c *Contract) Checked() bool {
	return c.result != nil
}

// IsKept reports whether the last check found no illegal dependencies.
// Panics if called before Check: that is a programming error, not a
// runtime condition.
func (c *Contract) IsKept() bool {
	return c.mustResult("IsKept").Kept()
}

// IllegalDependencies returns the violation chains found by the last
// check. Panics if called before Check.
func (c *Contract) IllegalDependencies() [][]string {
	return c.mustResult("IllegalDependencies").Paths()
}

func (c *Contract) mustResult(op string) *Result {
	if c.result == nil {
		panic(fmt.Sprintf("contract %q: %s called before Check", c.Name, op))
	}
	return c.result
}

// Check walks every package and layer of the contract against the
// import graph and records each illegal dependency chain. Re-running
// overwrites the previous result.
func (c *Contract) Check(deps Graph) {
	c.CheckWithTrace(deps, trace.Nop())
}

// CheckWithTrace is Check with a structured event sink for observing
// layer-by-layer progress.
func (c *Contract) CheckWithTrace(deps Graph, sink trace.Sink) {
	res := &Result{}
	for _, pkg := range c.Packages {
		// Highest layer first: violations against the top of the stack
		// surface before those lower down.
		for i := len(c.Layers) - 1; i >= 0; i-- {
			c.checkLayer(deps, res, pkg, i, sink)
		}
	}
	c.result = res
}

// checkLayer finds every module of lower layers that reaches back up
// into the layer at index idx.
func (c *Contract) checkLayer(deps Graph, res *Result, pkg string, idx int, sink trace.Sink) {
	layer := c.Layers[idx]
	sink.Emit(trace.Event{
		Kind:     trace.KindLayerCheck,
		Contract: c.Name,
		Package:  pkg,
		Layer:    layer.Name,
	})

	upper := c.modulesInLayer(deps, pkg, layer)
	lower := c.downstreamModules(pkg, idx)

	for _, u := range upper {
		for _, d := range lower {
			path := deps.FindPath(d, u, c.WhitelistedPaths)
			if path == nil {
				continue
			}
			if c.viaAnotherLayer(path, idx, pkg) {
				sink.Emit(trace.Event{
					Kind:     trace.KindViolationSuppressed,
					Contract: c.Name,
					Package:  pkg,
					Layer:    layer.Name,
					Importer: d,
					Imported: u,
					Path:     path,
				})
				continue
			}
			sink.Emit(trace.Event{
				Kind:     trace.KindViolationFound,
				Contract: c.Name,
				Package:  pkg,
				Layer:    layer.Name,
				Importer: d,
				Imported: u,
				Path:     path,
			})
			res.record(path)
		}
	}
}

// modulesInLayer returns the layer's own module plus every descendant,
// grandchildren included.
func (c *Contract) modulesInLayer(deps Graph, pkg string, layer Layer) []string {
	root := layer.Module(pkg)
	return append([]string{root}, deps.Descendants(root)...)
}

// downstreamModules returns the root module of every layer below idx,
// nearest first. Root modules only: descendants of a lower layer are
// covered by that layer's own check.
func (c *Contract) downstreamModules(pkg string, idx int) []string {
	var modules []string
	for j := idx - 1; j >= 0; j-- {
		modules = append(modules, c.Layers[j].Module(pkg))
	}
	return modules
}

// viaAnotherLayer reports whether any interior node of path is the root
// module of one of the contract's other layers. Such a chain is
// attributed to the intermediate layer's own check instead.
func (c *Contract) viaAnotherLayer(path []string, idx int, pkg string) bool {
	if len(path) < 3 {
		return false
	}
	for _, m := range path[1 : len(path)-1] {
		for j, l := range c.Layers {
			if j == idx {
				continue
			}
			if m == l.Module(pkg) {
				return true
			}
		}
	}
	return false
}
