// Package config loads contract definitions from a layers.yml file.
// The schema is strict: unknown keys, empty sections, and malformed
// whitelist entries fail at load time, before any contract is checked.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stratalint/stratalint/internal/contract"
)

// DefaultFile is the contract file looked up when no path is given.
const DefaultFile = "layers.yml"

// whitelistSeparator splits a whitelist entry into importer and imported.
const whitelistSeparator = " <- "

// ValidationError reports a contract definition that failed validation.
type ValidationError struct {
	Contract string
	Detail   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contract %q: %s", e.Contract, e.Detail)
}

// rawContract mirrors one contract entry in layers.yml.
type rawContract struct {
	Packages         []string `yaml:"packages"`
	Layers           []string `yaml:"layers"`
	WhitelistedPaths []string `yaml:"whitelisted_paths"`
	Recursive        bool     `yaml:"recursive"`
}

// Load reads contracts from a layers.yml file, sorted by name.
func Load(path string) ([]*contract.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contracts: %w", err)
	}
	contracts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return contracts, nil
}

// Parse builds contracts from layers.yml bytes. Contract order is by
// name so runs are deterministic regardless of file order.
func Parse(data []byte) ([]*contract.Contract, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw map[string]rawContract
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse contracts: %w", err)
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Detail: "no contracts defined"}
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	contracts := make([]*contract.Contract, 0, len(names))
	for _, name := range names {
		c, err := build(name, raw[name])
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

func build(name string, raw rawContract) (*contract.Contract, error) {
	if len(raw.Packages) == 0 {
		return nil, &ValidationError{Contract: name, Detail: "packages must not be empty"}
	}
	if len(raw.Layers) == 0 {
		return nil, &ValidationError{Contract: name, Detail: "layers must not be empty"}
	}

	layers := make([]contract.Layer, 0, len(raw.Layers))
	seen := make(map[string]struct{}, len(raw.Layers))
	for _, l := range raw.Layers {
		if l == "" {
			return nil, &ValidationError{Contract: name, Detail: "layer name must not be empty"}
		}
		if _, dup := seen[l]; dup {
			return nil, &ValidationError{Contract: name, Detail: fmt.Sprintf("duplicate layer %q", l)}
		}
		seen[l] = struct{}{}
		layers = append(layers, contract.Layer{Name: l})
	}

	whitelisted := make([]contract.ImportPath, 0, len(raw.WhitelistedPaths))
	for _, entry := range raw.WhitelistedPaths {
		p, err := parseWhitelistEntry(name, entry)
		if err != nil {
			return nil, err
		}
		whitelisted = append(whitelisted, p)
	}

	return contract.New(name, raw.Packages, layers, whitelisted, raw.Recursive), nil
}

// parseWhitelistEntry parses "importer.module <- imported.module".
func parseWhitelistEntry(contractName, entry string) (contract.ImportPath, error) {
	importer, imported, ok := strings.Cut(entry, whitelistSeparator)
	if !ok || importer == "" || imported == "" {
		return contract.ImportPath{}, &ValidationError{
			Contract: contractName,
			Detail:   fmt.Sprintf("whitelisted path %q must be in the format \"importer.module <- imported.module\"", entry),
		}
	}
	return contract.ImportPath{Importer: importer, Imported: imported}, nil
}
