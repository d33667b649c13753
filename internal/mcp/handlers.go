package mcp

import (
	"context"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stratalint/stratalint/internal/config"
	"github.com/stratalint/stratalint/internal/depgraph"
	"github.com/stratalint/stratalint/internal/report"
	"github.com/stratalint/stratalint/internal/scan"
)

// CheckInput defines parameters for the stratalint_check tool.
type CheckInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"path to layers.yml (defaults to <root>/layers.yml)"`
	Root       string `json:"root,omitempty" jsonschema:"Go module root to scan for imports"`
	GraphPath  string `json:"graph_path,omitempty" jsonschema:"YAML import-graph snapshot, used instead of scanning"`
}

// ContractOutcome is one contract's check result.
type ContractOutcome struct {
	Name       string   `json:"name"`
	Kept       bool     `json:"kept"`
	Violations []string `json:"violations,omitempty"`
}

// CheckOutput contains the overall check result.
type CheckOutput struct {
	Kept      bool              `json:"kept"`
	Contracts []ContractOutcome `json:"contracts"`
}

// GraphInput defines parameters for the stratalint_graph tool.
type GraphInput struct {
	Root      string `json:"root,omitempty" jsonschema:"Go module root to scan for imports"`
	GraphPath string `json:"graph_path,omitempty" jsonschema:"YAML import-graph snapshot, used instead of scanning"`
}

// GraphOutput summarizes the import graph.
type GraphOutput struct {
	ModuleCount int      `json:"module_count"`
	ImportEdges int      `json:"import_edges"`
	Modules     []string `json:"modules"`
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	root := firstOf(input.Root, s.cfg.Root)
	configPath := firstOf(input.ConfigPath, s.cfg.ConfigPath)
	if configPath == "" {
		configPath = filepath.Join(root, config.DefaultFile)
	}

	contracts, err := config.Load(configPath)
	if err != nil {
		return nil, CheckOutput{}, err
	}

	graph, err := s.buildGraph(root, firstOf(input.GraphPath, s.cfg.GraphPath))
	if err != nil {
		return nil, CheckOutput{}, err
	}

	out := CheckOutput{Kept: true}
	for _, c := range contracts {
		c.Check(graph)
		outcome := ContractOutcome{Name: c.Name, Kept: c.IsKept()}
		if !outcome.Kept {
			out.Kept = false
			for _, path := range c.IllegalDependencies() {
				outcome.Violations = append(outcome.Violations, report.Chain(path))
			}
		}
		out.Contracts = append(out.Contracts, outcome)
	}
	return nil, out, nil
}

func (s *Server) handleGraph(ctx context.Context, req *mcpsdk.CallToolRequest, input GraphInput) (*mcpsdk.CallToolResult, GraphOutput, error) {
	root := firstOf(input.Root, s.cfg.Root)
	dg, err := s.buildGraph(root, firstOf(input.GraphPath, s.cfg.GraphPath))
	if err != nil {
		return nil, GraphOutput{}, err
	}

	modules := dg.Modules()
	return nil, GraphOutput{
		ModuleCount: len(modules),
		ImportEdges: dg.ImportCount(),
		Modules:     modules,
	}, nil
}

func (s *Server) buildGraph(root, graphPath string) (*depgraph.Graph, error) {
	if graphPath != "" {
		return depgraph.LoadSnapshot(graphPath)
	}
	return scan.Build(root)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
