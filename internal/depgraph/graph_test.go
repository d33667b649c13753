package depgraph

import (
	"reflect"
	"testing"

	"github.com/stratalint/stratalint/internal/contract"
)

func buildGraph(edges map[string][]string) *Graph {
	dg := New()
	for importer, imports := range edges {
		dg.AddModule(importer)
		for _, imported := range imports {
			dg.AddImport(importer, imported)
		}
	}
	return dg
}

func TestFindPathDirect(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.low": {"app.high"},
	})

	path := dg.FindPath("app.low", "app.high", nil)
	want := []string{"app.low", "app.high"}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
}

func TestFindPathTransitive(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.low": {"app.mid"},
		"app.mid": {"app.high"},
	})

	path := dg.FindPath("app.low", "app.high", nil)
	want := []string{"app.low", "app.mid", "app.high"}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
}

func TestFindPathPrefersShortestChain(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.low": {"app.mid", "app.high"},
		"app.mid": {"app.high"},
	})

	path := dg.FindPath("app.low", "app.high", nil)
	want := []string{"app.low", "app.high"}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("expected shortest witness %v, got %v", want, path)
	}
}

func TestFindPathNone(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.high": {"app.low"},
	})

	if path := dg.FindPath("app.low", "app.high", nil); path != nil {
		t.Fatalf("expected no path, got %v", path)
	}
}

func TestFindPathRespectsIgnoredEdges(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.low": {"app.mid"},
		"app.mid": {"app.high"},
	})
	ignore := []contract.ImportPath{{Importer: "app.low", Imported: "app.mid"}}

	if path := dg.FindPath("app.low", "app.high", ignore); path != nil {
		t.Fatalf("ignored edge was the only route, got %v", path)
	}
}

func TestFindPathReroutesAroundIgnoredEdge(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.low":   {"app.high", "app.other"},
		"app.other": {"app.high"},
	})
	ignore := []contract.ImportPath{{Importer: "app.low", Imported: "app.high"}}

	path := dg.FindPath("app.low", "app.high", ignore)
	want := []string{"app.low", "app.other", "app.high"}
	if !reflect.DeepEqual(path, want) {
		t.Fatalf("expected detour %v, got %v", want, path)
	}
}

func TestFindPathUnknownModules(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.low": {"app.high"},
	})

	if path := dg.FindPath("app.low", "app.nowhere", nil); path != nil {
		t.Fatalf("unknown target must yield no path, got %v", path)
	}
	if path := dg.FindPath("app.nowhere", "app.high", nil); path != nil {
		t.Fatalf("unknown source must yield no path, got %v", path)
	}
}

func TestDescendants(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.high":              {},
		"app.high.handlers":     {},
		"app.high.handlers.api": {},
		"app.highlander":        {},
	})

	got := dg.Descendants("app.high")
	want := []string{"app.high.handlers", "app.high.handlers.api"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDescendantsOfUnknownModule(t *testing.T) {
	dg := New()
	if got := dg.Descendants("app.ghost"); len(got) != 0 {
		t.Fatalf("expected no descendants, got %v", got)
	}
}

func TestSelfImportIsDropped(t *testing.T) {
	dg := New()
	dg.AddImport("app.low", "app.low")

	if n := dg.ImportCount(); n != 0 {
		t.Fatalf("expected 0 edges, got %d", n)
	}
}

func TestDuplicateImportIsDropped(t *testing.T) {
	dg := New()
	dg.AddImport("app.low", "app.high")
	dg.AddImport("app.low", "app.high")

	if n := dg.ImportCount(); n != 1 {
		t.Fatalf("expected 1 edge, got %d", n)
	}
}

func TestModulesSorted(t *testing.T) {
	dg := buildGraph(map[string][]string{
		"app.c": {"app.a"},
		"app.b": {},
	})

	want := []string{"app.a", "app.b", "app.c"}
	if got := dg.Modules(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestImportsSorted(t *testing.T) {
	dg := New()
	dg.AddImport("app.low", "app.z")
	dg.AddImport("app.low", "app.a")

	want := []string{"app.a", "app.z"}
	if got := dg.Imports("app.low"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
