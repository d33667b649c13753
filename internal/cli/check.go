package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stratalint/stratalint/internal/config"
	"github.com/stratalint/stratalint/internal/contract"
	"github.com/stratalint/stratalint/internal/depgraph"
	"github.com/stratalint/stratalint/internal/report"
	"github.com/stratalint/stratalint/internal/scan"
	"github.com/stratalint/stratalint/internal/trace"
)

var (
	checkConfig string
	checkRoot   string
	checkGraph  string
	checkFormat string
	checkTrace  string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkConfig, "config", "c", "", "Path to layers.yml (default <root>/layers.yml)")
	checkCmd.Flags().StringVar(&checkRoot, "root", ".", "Go module root to scan for imports")
	checkCmd.Flags().StringVar(&checkGraph, "graph", "", "Path to a YAML import-graph snapshot (skips source scanning)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	checkCmd.Flags().StringVar(&checkTrace, "trace", "", "Write check events as JSONL to this file")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check layering contracts against the import graph",
	Long: "Loads contracts from layers.yml, builds the import graph from the\n" +
		"module root (or a graph snapshot), and checks every contract.\n\n" +
		"Exit code 0 if all contracts are kept, 1 if any is broken.\n" +
		"Use in CI to gate merges on architecture rules.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	sink := trace.Sink(trace.Nop())
	if checkTrace != "" {
		f, err := os.Create(checkTrace)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer func() { _ = f.Close() }()
		sink = trace.NewWriterSink(f)
	}

	results, err := runContracts(checkConfig, checkRoot, checkGraph, sink)
	if err != nil {
		return err
	}

	switch checkFormat {
	case "json":
		out, err := report.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(report.FormatText(results))
	}

	if !report.AllKept(results) {
		os.Exit(1)
	}
	return nil
}

// runContracts loads contracts and the graph, checks everything, and
// returns per-contract results. Shared by check and watch.
func runContracts(configPath, root, graphPath string, sink trace.Sink) ([]report.ContractResult, error) {
	if configPath == "" {
		configPath = filepath.Join(root, config.DefaultFile)
	}

	contracts, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	graph, err := buildGraph(root, graphPath)
	if err != nil {
		return nil, err
	}

	for _, c := range contracts {
		c.CheckWithTrace(graph, sink)
	}
	return report.Collect(contracts), nil
}

// buildGraph builds the import graph from a snapshot when given one,
// otherwise by scanning the module root.
func buildGraph(root, graphPath string) (contract.Graph, error) {
	if graphPath != "" {
		return depgraph.LoadSnapshot(graphPath)
	}
	return scan.Build(root)
}
