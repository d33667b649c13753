package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratalint/stratalint/internal/depgraph"
	"github.com/stratalint/stratalint/internal/scan"
)

var (
	graphRoot     string
	graphSnapshot string
	graphFormat   string
)

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringVar(&graphRoot, "root", ".", "Go module root to scan for imports")
	graphCmd.Flags().StringVar(&graphSnapshot, "graph", "", "Path to a YAML import-graph snapshot (skips source scanning)")
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "text", "Output format (text|json)")
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Dump the module-import graph",
	Long: "Builds the import graph the checker would use and prints every\n" +
		"module with its direct imports. Debugging aid for contract authors.",
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	var (
		dg  *depgraph.Graph
		err error
	)
	if graphSnapshot != "" {
		dg, err = depgraph.LoadSnapshot(graphSnapshot)
	} else {
		dg, err = scan.Build(graphRoot)
	}
	if err != nil {
		return err
	}

	modules := dg.Modules()

	if graphFormat == "json" {
		imports := make(map[string][]string, len(modules))
		for _, m := range modules {
			if targets := dg.Imports(m); len(targets) > 0 {
				imports[m] = targets
			}
		}
		out, err := json.MarshalIndent(map[string]any{
			"modules": modules,
			"imports": imports,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%d modules, %d import edges\n\n", len(modules), dg.ImportCount())
	for _, m := range modules {
		targets := dg.Imports(m)
		if len(targets) == 0 {
			fmt.Printf("  %s\n", m)
			continue
		}
		fmt.Printf("  %s -> %s\n", m, strings.Join(targets, ", "))
	}
	return nil
}
