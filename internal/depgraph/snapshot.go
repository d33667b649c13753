package depgraph

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// snapshot is the YAML shape of a pre-extracted import graph:
//
//	modules:
//	  - app.low
//	imports:
//	  app.low: [app.high]
type snapshot struct {
	Modules []string            `yaml:"modules"`
	Imports map[string][]string `yaml:"imports"`
}

// LoadSnapshot reads an import graph from a YAML snapshot file.
// Unknown keys are rejected.
func LoadSnapshot(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot builds a graph from YAML snapshot bytes.
func ParseSnapshot(data []byte) (*Graph, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var snap snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("parse graph snapshot: %w", err)
	}

	dg := New()
	for _, m := range snap.Modules {
		dg.AddModule(m)
	}
	for importer, imports := range snap.Imports {
		dg.AddModule(importer)
		for _, imported := range imports {
			dg.AddImport(importer, imported)
		}
	}
	return dg, nil
}
