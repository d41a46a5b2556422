// Command web serves the Kalakruti Associates site.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kalakrutiassociates.com/web/internal/config"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg config.Config
		log *zap.Logger
	)
	root := &cobra.Command{
		Use:           "web",
		Short:         "Kalakruti Associates website server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(cmd.Flags()); err != nil {
				return err
			}
			if log, err = observability.NewLogger(cfg.LogLevel); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg, log)
		},
	}
	routes := &cobra.Command{
		Use:   "routes",
		Short: "Print the page table: key, path, title",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	}
	root.AddCommand(serve, routes)
	root.RunE = serve.RunE
	return root
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	return a.run(ctx)
}

func printRoutes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tPATH\tALIAS\tTITLE")
	aliases := map[nav.Page]string{}
	for alias, p := range nav.Aliases() {
		aliases[p] = alias
	}
	for _, p := range nav.Pages() {
		alias := aliases[p]
		if alias == "" {
			alias = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p, p.Path(), alias, p.Title())
	}
	return tw.Flush()
}
