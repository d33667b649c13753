package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stratalint/stratalint/internal/contract"
)

const sampleConfig = `
web layers:
  packages:
    - app
  layers:
    - low
    - mid
    - high
  whitelisted_paths:
    - "app.low <- app.mid"
  recursive: true

api layers:
  packages:
    - api
  layers:
    - core
    - transport
`

func TestParseContracts(t *testing.T) {
	contracts, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(contracts))
	}

	// Sorted by name for deterministic runs.
	if contracts[0].Name != "api layers" || contracts[1].Name != "web layers" {
		t.Fatalf("expected name-sorted contracts, got %q, %q", contracts[0].Name, contracts[1].Name)
	}

	web := contracts[1]
	if !reflect.DeepEqual(web.Packages, []string{"app"}) {
		t.Fatalf("unexpected packages %v", web.Packages)
	}
	wantLayers := []contract.Layer{{Name: "low"}, {Name: "mid"}, {Name: "high"}}
	if !reflect.DeepEqual(web.Layers, wantLayers) {
		t.Fatalf("unexpected layers %v", web.Layers)
	}
	wantWhitelist := []contract.ImportPath{{Importer: "app.low", Imported: "app.mid"}}
	if !reflect.DeepEqual(web.WhitelistedPaths, wantWhitelist) {
		t.Fatalf("unexpected whitelist %v", web.WhitelistedPaths)
	}
	if !web.Recursive {
		t.Fatal("expected recursive flag to be stored")
	}
	if contracts[0].Recursive {
		t.Fatal("recursive must default to false")
	}
}

func TestParseMalformedWhitelistEntry(t *testing.T) {
	data := []byte(`
bad:
  packages: [app]
  layers: [low, high]
  whitelisted_paths:
    - "app.low -> app.high"
`)
	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected malformed whitelist entry to fail")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Contract != "bad" {
		t.Fatalf("unexpected contract name %q", verr.Contract)
	}
	if !strings.Contains(verr.Detail, "importer.module <- imported.module") {
		t.Fatalf("error must state the expected format, got %q", verr.Detail)
	}
}

func TestParseDuplicateLayer(t *testing.T) {
	data := []byte(`
dup:
  packages: [app]
  layers: [low, low]
`)
	var verr *ValidationError
	if _, err := Parse(data); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for duplicate layer, got %v", err)
	}
}

func TestParseEmptySections(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"no packages", "c:\n  layers: [low, high]\n"},
		{"no layers", "c:\n  packages: [app]\n"},
		{"empty layer name", "c:\n  packages: [app]\n  layers: [low, \"\"]\n"},
		{"no contracts", "{}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *ValidationError
			if _, err := Parse([]byte(tc.data)); !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	data := []byte(`
c:
  packages: [app]
  layers: [low, high]
  allow_cycles: true
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	contracts, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(contracts))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), DefaultFile)); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
