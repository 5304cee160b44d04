package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kzmshx/php-graph/internal/config"
	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/graph"
	graphio "github.com/kzmshx/php-graph/pkg/io"
	"github.com/kzmshx/php-graph/pkg/observability"
	"github.com/kzmshx/php-graph/pkg/scan"
)

// sourceFlags holds the flags shared by commands that build a graph.
type sourceFlags struct {
	configPath string
	from       string
	exts       []string
	exclude    []string
	noCache    bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	fl.StringVar(&f.from, "from", "", "load a graph exported with 'phpgraph graph' instead of scanning")
	fl.StringSliceVar(&f.exts, "ext", nil, "file extension to scan, repeatable (default .php)")
	fl.StringArrayVar(&f.exclude, "exclude", nil, "gitignore-style pattern to skip, repeatable")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the extraction cache")
}

// resolve loads the config file and applies flags that were set explicitly.
func (f *sourceFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = f.exts
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if f.noCache {
		cfg.Cache = false
	}
	return cfg, cfg.Validate()
}

// loadGraph returns the graph from --from if set, otherwise scans roots.
func (c *CLI) loadGraph(ctx context.Context, f *sourceFlags, cfg config.Config, roots []string) (*graph.Graph, error) {
	if f.from == "" {
		return c.scanSources(ctx, roots, cfg)
	}
	if len(roots) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--from cannot be combined with source directories")
	}
	g, err := graphio.ImportJSON(f.from)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "load graph")
	}
	loggerFromContext(ctx).Debug("loaded graph", "from", f.from, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// scanSources discovers source files under roots and builds their graph.
func (c *CLI) scanSources(ctx context.Context, roots []string, cfg config.Config) (*graph.Graph, error) {
	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one source directory is required")
	}
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	files, err := scan.Discover(roots, cfg.DiscoverOptions())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		printWarning("No %s files found under %s", strings.Join(cfg.Extensions, ", "), strings.Join(roots, ", "))
	}

	store := c.newCache(cfg.Cache)
	defer store.Close()

	var sp *Spinner
	if c.showSpinner() && logger.GetLevel() > LogDebug {
		sp = newSpinner(ctx, os.Stderr, fmt.Sprintf("Scanning %d files...", len(files)))
		prev := observability.SetScanHooks(&spinnerHooks{sp: sp, total: len(files)})
		defer observability.SetScanHooks(prev)
		sp.Start()
	}

	b := scan.NewBuilder(scan.Options{Cache: store, Logger: logger})
	g, err := b.Build(ctx, files)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return nil, err
	}

	st := b.Stats()
	prog.done("Scanned sources", "files", st.Files)
	printStats(st.Files, g.NodeCount(), g.EdgeCount(), st.CacheHits)
	if st.Degenerate > 0 {
		printWarning("%d files lack a single namespace or class declaration", st.Degenerate)
	}
	return g, nil
}
