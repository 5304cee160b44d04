package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kzmshx/php-graph/internal/config"
	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/graph"
	graphio "github.com/kzmshx/php-graph/pkg/io"
	"github.com/kzmshx/php-graph/pkg/render/nodelink"
	"github.com/kzmshx/php-graph/pkg/render/plantuml"
	"github.com/kzmshx/php-graph/pkg/scan"
)

// dependentsOptions holds flags for the dependents command.
type dependentsOptions struct {
	sourceFlags
	output      string
	format      string
	breakCycles bool
	fullNames   bool
	watch       bool
}

// dependentsCommand creates the dependents command.
func (c *CLI) dependentsCommand() *cobra.Command {
	opts := &dependentsOptions{}

	cmd := &cobra.Command{
		Use:   "dependents <dir>... <class>",
		Short: "Print a class and every class that depends on it",
		Long: `Scan the given directories for PHP files and print the target class and
every class that transitively imports it.

The last argument is the fully-qualified class name, for example
'App\Models\User'. Quote it so the shell keeps the backslashes. If every
argument is a directory and stdin is a terminal, a class picker opens
instead.

The default output is a PlantUML class diagram. Classes are visited depth
first; a class reached along several paths is printed once per path. Import
cycles are followed without limit unless --break-cycles is set.

With --watch the sources are rescanned and the output file rewritten every
time a source file changes, until interrupted.`,
		Example: `  phpgraph dependents src 'App\Models\User'
  phpgraph dependents src lib 'Lib\Http\Kernel' -o kernel.puml
  phpgraph dependents src 'App\Models\User' -f svg -o user.svg
  phpgraph dependents --from graph.json 'App\Models\User'
  phpgraph dependents src 'App\Models\User' -o user.puml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDependents(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: plantuml, dot, svg, json (default plantuml)")
	cmd.Flags().BoolVar(&opts.breakCycles, "break-cycles", false, "do not revisit a class already on the current path")
	cmd.Flags().BoolVar(&opts.fullNames, "full-names", false, "label dot and svg nodes with fully-qualified names")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rewrite the output file whenever a source file changes")

	return cmd
}

func (c *CLI) runDependents(cmd *cobra.Command, args []string, opts *dependentsOptions) error {
	ctx := cmd.Context()

	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		if err := config.ValidateFormat(opts.format); err != nil {
			return err
		}
		cfg.Format = opts.format
	}
	if opts.breakCycles {
		cfg.BreakCycles = true
	}

	if opts.watch {
		if opts.output == "" {
			return errors.New(errors.ErrCodeInvalidInput, "--watch requires --output")
		}
		if opts.from != "" {
			return errors.New(errors.ErrCodeInvalidInput, "--watch cannot be combined with --from")
		}
	}

	roots, target := splitTargetArgs(args, opts.from != "")
	if target == "" && !c.interactive() {
		return errors.New(errors.ErrCodeInvalidInput, "missing class name, pass it as the last argument")
	}
	if target != "" {
		if err := errors.ValidateIdentity(target); err != nil {
			return err
		}
	}

	g, err := c.loadGraph(ctx, &opts.sourceFlags, cfg, roots)
	if err != nil {
		return err
	}

	if target == "" {
		target, err = pickClass(g)
		if err != nil {
			return err
		}
		if target == "" {
			printInfo("No class selected")
			return nil
		}
	}

	if err := emitDependents(cmd, g, target, cfg, opts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	printInfo("Watching %s for changes, press Ctrl+C to stop", strings.Join(roots, ", "))
	wopts := scan.WatchOptions{DiscoverOptions: cfg.DiscoverOptions(), Logger: loggerFromContext(ctx)}
	err = scan.Watch(ctx, roots, wopts, func(changed []string) error {
		for _, path := range changed {
			printDetail("changed %s", path)
		}
		g, err := c.scanSources(ctx, roots, cfg)
		if err != nil {
			return err
		}
		return emitDependents(cmd, g, target, cfg, opts)
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// emitDependents looks up target and writes its dependents to the
// configured output.
func emitDependents(cmd *cobra.Command, g *graph.Graph, target string, cfg config.Config, opts *dependentsOptions) error {
	// Lookup before opening the output so an unknown class writes nothing.
	if _, err := g.Lookup(target); err != nil {
		return errors.Wrap(errors.ErrCodeClassNotFound, err, "class %s not found in scanned sources", target)
	}

	if cfg.Format == config.FormatPlantUML && !cfg.BreakCycles {
		if msg := cycleWarning(g, target); msg != "" {
			printWarning("%s", msg)
		}
	}

	err := writeOutput(cmd, opts.output, func(w io.Writer) error {
		return renderDependents(cmd.Context(), w, g, target, cfg, opts.fullNames)
	})
	if err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Rendered dependents of %s", target)
		printFile(opts.output)
	}
	return nil
}

// splitTargetArgs separates source roots from the target class. The last
// argument is the target unless the graph is scanned and it names an
// existing directory.
func splitTargetArgs(args []string, loaded bool) (roots []string, target string) {
	last := args[len(args)-1]
	if !loaded {
		if info, err := os.Stat(last); err == nil && info.IsDir() {
			return args, ""
		}
	}
	return args[:len(args)-1], last
}

// cycleWarning describes the first import cycle reachable from target, or
// returns "" if the dependents walk terminates.
func cycleWarning(g *graph.Graph, target string) string {
	back := g.BackEdges(target)
	if len(back) == 0 {
		return ""
	}
	return fmt.Sprintf("Import cycle at %s -> %s, the diagram will not end without --break-cycles",
		back[0].From, back[0].To)
}

// renderDependents writes the dependents of target in cfg.Format.
func renderDependents(ctx context.Context, w io.Writer, g *graph.Graph, target string, cfg config.Config, fullNames bool) error {
	if cfg.Format == config.FormatPlantUML {
		return plantuml.WriteDependents(w, g, target, plantuml.Options{BreakCycles: cfg.BreakCycles})
	}

	sub, err := nodelink.Collect(g, target)
	if err != nil {
		return err
	}
	switch cfg.Format {
	case config.FormatJSON:
		return graphio.WriteJSON(sub.Graph(), w)
	case config.FormatDOT:
		_, err := io.WriteString(w, nodelink.ToDOT(sub, nodelink.Options{FullNames: fullNames}))
		return err
	case config.FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(sub, nodelink.Options{FullNames: fullNames}))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		_, err = w.Write(svg)
		return err
	}
	return config.ValidateFormat(cfg.Format)
}

// writeOutput runs fn against the file at path, or the command's stdout when
// path is empty.
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create %s", path)
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeFileWrite, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "close %s", path)
	}
	return nil
}
