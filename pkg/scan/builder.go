package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kzmshx/php-graph/pkg/cache"
	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/graph"
	"github.com/kzmshx/php-graph/pkg/lexer"
	"github.com/kzmshx/php-graph/pkg/observability"
)

// extractionTTL bounds how long a cached extraction is kept. Entries are
// content-addressed, so expiry only limits disk growth.
const extractionTTL = 30 * 24 * time.Hour

// cacheKeyType labels extraction entries in cache hook events.
const cacheKeyType = "extraction"

// Options configures a Builder. The zero value is valid: no caching and the
// default logger.
type Options struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Stats summarizes a build.
type Stats struct {
	Files      int // files added
	CacheHits  int // extractions served from cache
	Degenerate int // files whose identity lacked a namespace or class segment
}

// Builder populates a graph one file at a time.
//
// Builder is not safe for concurrent use.
type Builder struct {
	graph  *graph.Graph
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	stats  Stats
}

// NewBuilder creates a Builder with an empty graph.
func NewBuilder(opts Options) *Builder {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Builder{
		graph:  graph.New(),
		cache:  opts.Cache,
		keyer:  opts.Keyer,
		logger: opts.Logger,
	}
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *graph.Graph { return b.graph }

// Stats returns counters for the files added so far.
func (b *Builder) Stats() Stats { return b.stats }

// Build adds every file in paths, in order, and returns the graph.
// It stops at the first unreadable file or when ctx is cancelled.
func (b *Builder) Build(ctx context.Context, paths []string) (g *graph.Graph, err error) {
	hooks := observability.Scan()
	hooks.OnBuildStart(ctx, len(paths))
	start := time.Now()
	defer func() {
		hooks.OnBuildComplete(ctx, b.stats.Files, b.graph.NodeCount(), time.Since(start), err)
	}()

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.AddFile(ctx, p); err != nil {
			return nil, err
		}
	}
	b.logger.Debug("built graph",
		"files", b.stats.Files,
		"nodes", b.graph.NodeCount(),
		"edges", b.graph.EdgeCount(),
		"cache_hits", b.stats.CacheHits)
	return b.graph, nil
}

// AddFile reads path and adds it with [Builder.AddSource]. Line endings
// are translated to "\n" first, so "\r\n" and "\r" separate tokens the
// same way "\n" does.
func (b *Builder) AddFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileRead, err, "read %s", path)
	}
	b.AddSource(ctx, path, unixNewlines(content))
	return nil
}

func unixNewlines(content []byte) []byte {
	if bytes.IndexByte(content, '\r') < 0 {
		return content
	}
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}

// AddSource extracts content and records it in the graph as the file at
// path. The declared identity's node gets path as its source; each imported
// name gets the declared identity as a dependent.
func (b *Builder) AddSource(ctx context.Context, path string, content []byte) lexer.Extraction {
	ex := b.extract(ctx, content)

	b.stats.Files++
	if ex.Degenerate() {
		b.stats.Degenerate++
		b.logger.Debug("degenerate identity", "path", path, "identity", ex.Identity)
	}

	b.graph.Ensure(ex.Identity).SetPath(path)
	for _, imp := range ex.Imports {
		b.graph.Link(ex.Identity, imp)
	}

	b.logger.Debug("scanned", "path", path, "identity", ex.Identity, "imports", len(ex.Imports))
	observability.Scan().OnFileScanned(ctx, path, ex.Identity, len(ex.Imports))
	return ex
}

func (b *Builder) extract(ctx context.Context, content []byte) lexer.Extraction {
	key := b.keyer.ExtractionKey(content)

	data, hit, err := b.cache.Get(ctx, key)
	if err != nil {
		b.logger.Debug("cache read failed", "err", err)
	}
	if hit {
		var ex lexer.Extraction
		if err := json.Unmarshal(data, &ex); err == nil {
			b.stats.CacheHits++
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return ex
		}
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	ex := lexer.ExtractSource(string(content))
	if data, err := json.Marshal(ex); err == nil {
		if err := b.cache.Set(ctx, key, data, extractionTTL); err != nil {
			b.logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return ex
}
