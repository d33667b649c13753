package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stratalint/stratalint/internal/contract"
	"github.com/stratalint/stratalint/internal/depgraph"
)

func checkedContracts(t *testing.T) []*contract.Contract {
	t.Helper()
	dg := depgraph.New()
	dg.AddImport("app.low", "app.high")
	dg.AddModule("lib.core")
	dg.AddModule("lib.transport")

	broken := contract.New("app layers", []string{"app"},
		[]contract.Layer{{Name: "low"}, {Name: "high"}}, nil, false)
	kept := contract.New("lib layers", []string{"lib"},
		[]contract.Layer{{Name: "core"}, {Name: "transport"}}, nil, false)
	broken.Check(dg)
	kept.Check(dg)
	return []*contract.Contract{broken, kept}
}

func TestCollect(t *testing.T) {
	results := Collect(checkedContracts(t))

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Kept || len(results[0].Violations) != 1 {
		t.Fatalf("unexpected broken result %+v", results[0])
	}
	if !results[1].Kept || results[1].Violations != nil {
		t.Fatalf("unexpected kept result %+v", results[1])
	}
}

func TestAllKept(t *testing.T) {
	results := Collect(checkedContracts(t))
	if AllKept(results) {
		t.Fatal("expected AllKept to be false with a broken contract")
	}
	if !AllKept(results[1:]) {
		t.Fatal("expected AllKept to be true for kept contracts")
	}
	if !AllKept(nil) {
		t.Fatal("expected AllKept to be true for no contracts")
	}
}

func TestChain(t *testing.T) {
	got := Chain([]string{"app.low", "app.mid", "app.high"})
	if got != "app.low -> app.mid -> app.high" {
		t.Fatalf("unexpected chain %q", got)
	}
}

func TestFormatText(t *testing.T) {
	out := FormatText(Collect(checkedContracts(t)))

	for _, want := range []string{
		"Checking 2 contracts...",
		"FAIL  app layers (1 violation)",
		"app.low -> app.high",
		"PASS  lib layers (packages: lib)",
		"1 of 2 contracts kept.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTextSingular(t *testing.T) {
	out := FormatText(Collect(checkedContracts(t)[:1]))
	if !strings.Contains(out, "Checking 1 contract...") {
		t.Fatalf("expected singular heading:\n%s", out)
	}
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(Collect(checkedContracts(t)))
	if err != nil {
		t.Fatalf("format json: %v", err)
	}

	var decoded []ContractResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Name != "app layers" {
		t.Fatalf("unexpected decoded results %+v", decoded)
	}
}
