// Package cli wires the filtering pipeline into a Cobra command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/daipham1210/lintsift/internal/domain"
	"github.com/daipham1210/lintsift/internal/usecase/filter"
)

// ErrVersionRequested indicates the user requested the CLI version and no
// further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Pipeline defines the dependency required to run the root command.
type Pipeline interface {
	Run(ctx context.Context, req filter.Request) (filter.Result, error)
}

// HistoryLister defines the dependency required by the history command.
type HistoryLister interface {
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Pipeline          Pipeline
	History           HistoryLister // nil when the store is disabled
	Args              Arguments
	DefaultLogPath    string
	DefaultSourceRoot string
	Version           string
}

// NewRootCommand constructs the root Cobra command. The bare invocation
// runs the filtering pipeline; behavior without flags is fully determined
// by repository state and the configured log path.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	var logPath string
	var sourceRoot string

	root := &cobra.Command{
		Use:   "lintsift",
		Short: "Filter captured pre-commit lint output down to staged lines",
		Long: "lintsift reads the staged git diff and a previously captured " +
			"lint/format log, and prints only the findings that touch lines " +
			"staged for commit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := deps.Pipeline.Run(cmd.Context(), filter.Request{
				LogPath:    logPath,
				SourceRoot: sourceRoot,
			})
			return err
		},
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.Flags().StringVar(&logPath, "log", deps.DefaultLogPath, "Path to the captured lint/format log")
	root.Flags().StringVar(&sourceRoot, "source-root", deps.DefaultSourceRoot, "Path marker used to normalise tool-reported paths")

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler

	root.AddCommand(historyCommand(deps.History))

	return root
}

func historyCommand(history HistoryLister) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent filter runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if history == nil {
				return fmt.Errorf("run history is disabled; enable store in the configuration")
			}

			runs, err := history.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tBRANCH\tFILES\tSTAGED\tREAD\tKEPT")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
					run.Timestamp.Format(time.RFC3339),
					orDash(run.Branch),
					run.FilesChanged,
					run.LinesStaged,
					run.LinesRead,
					run.LinesKept,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
