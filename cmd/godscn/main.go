package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/godscn/internal/version"
	"github.com/ludo-technologies/godscn/service"
)

// NewRootCmd builds the godscn command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "godscn",
		Short: "God Class detection and Extract Class refactoring",
		Long: `godscn finds God Classes in Java and Python code and proposes Extract Class
refactorings for them.

Every member of a class is described by the set of members it accesses. The
members are clustered by the Jaccard distance of those sets, and every cluster
that is more cohesive than the rest of the class becomes a ranked candidate
for a new class. A candidate can then be applied to the structural model.

Commands:
  analyze   report God Classes and their Extract Class candidates
  apply     apply one candidate and write the resulting model
  init      write a default .godscn.toml`,
		Version:       version.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewApplyCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

// reportError prints err with its category and recovery suggestions
func reportError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %v\n", err)
	if categorized == nil {
		return
	}
	fmt.Fprintf(w, "\n%s: %s\n", categorized.Category, categorized.Message)
	fmt.Fprintf(w, "\nSuggestions:\n")
	for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
