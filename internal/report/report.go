// Package report renders contract check outcomes for humans and CI.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stratalint/stratalint/internal/contract"
)

// ContractResult is the reportable outcome of checking one contract.
type ContractResult struct {
	Name       string     `json:"name"`
	Packages   []string   `json:"packages"`
	Kept       bool       `json:"kept"`
	Violations [][]string `json:"violations,omitempty"`
}

// Collect extracts results from checked contracts.
func Collect(contracts []*contract.Contract) []ContractResult {
	results := make([]ContractResult, 0, len(contracts))
	for _, c := range contracts {
		r := ContractResult{
			Name:     c.Name,
			Packages: c.Packages,
			Kept:     c.IsKept(),
		}
		if !r.Kept {
			r.Violations = c.IllegalDependencies()
		}
		results = append(results, r)
	}
	return results
}

// AllKept reports whether every contract held.
func AllKept(results []ContractResult) bool {
	for _, r := range results {
		if !r.Kept {
			return false
		}
	}
	return true
}

// Chain renders a violation path as an import chain, importer first.
func Chain(path []string) string {
	return strings.Join(path, " -> ")
}

// FormatText renders results as human-readable text.
func FormatText(results []ContractResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Checking %d contract", len(results))
	if len(results) != 1 {
		b.WriteString("s")
	}
	b.WriteString("...\n\n")

	kept := 0
	for _, r := range results {
		if r.Kept {
			kept++
			fmt.Fprintf(&b, "  PASS  %s (packages: %s)\n", r.Name, strings.Join(r.Packages, ", "))
			continue
		}
		fmt.Fprintf(&b, "  FAIL  %s (%d violation", r.Name, len(r.Violations))
		if len(r.Violations) != 1 {
			b.WriteString("s")
		}
		b.WriteString(")\n")
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "        %s\n", Chain(v))
		}
	}

	fmt.Fprintf(&b, "\n%d of %d contracts kept.\n", kept, len(results))
	return b.String()
}

// FormatJSON renders results as JSON.
func FormatJSON(results []ContractResult) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	return string(data), nil
}
