package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stratalint/stratalint/internal/report"
	"github.com/stratalint/stratalint/internal/trace"
	"github.com/stratalint/stratalint/internal/watch"
)

var (
	watchConfig string
	watchRoot   string
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchConfig, "config", "c", "", "Path to layers.yml (default <root>/layers.yml)")
	watchCmd.Flags().StringVar(&watchRoot, "root", ".", "Go module root to scan for imports")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check contracts whenever sources change",
	Long: "Watches the module tree and re-runs the contract check after each\n" +
		"settled burst of changes to Go sources or YAML files.\n" +
		"Runs until interrupted.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nStopping watch...")
		cancel()
	}()

	run := func() {
		fmt.Printf("-- %s\n", time.Now().Format("15:04:05"))
		results, err := runContracts(watchConfig, watchRoot, "", trace.Nop())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		fmt.Print(report.FormatText(results))
	}

	run()
	return watch.New(watchRoot, run).Run(ctx)
}
