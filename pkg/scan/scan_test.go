package scan

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kzmshx/php-graph/pkg/cache"
	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/observability"
)

// writeTree creates files under a temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func quietBuilder(c cache.Cache) *Builder {
	return NewBuilder(Options{Cache: c, Logger: log.New(io.Discard)})
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	var out []string
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/A.php":              "",
		"src/deep/er/B.php":      "",
		"src/readme.md":          "",
		"src/C.inc":              "",
		"vendor/lib/V.php":       "",
		"views/home.blade.php":   "",
		"tests/Unit/ATest.php":   "",
		"src/deep/er/notphp.txt": "",
	})

	tests := []struct {
		name string
		opts DiscoverOptions
		want []string
	}{
		{
			name: "default extension",
			want: []string{"src/A.php", "src/deep/er/B.php", "tests/Unit/ATest.php", "vendor/lib/V.php", "views/home.blade.php"},
		},
		{
			name: "extra extension",
			opts: DiscoverOptions{Extensions: []string{".php", ".inc"}},
			want: []string{"src/A.php", "src/C.inc", "src/deep/er/B.php", "tests/Unit/ATest.php", "vendor/lib/V.php", "views/home.blade.php"},
		},
		{
			name: "exclude patterns",
			opts: DiscoverOptions{Exclude: []string{"vendor/", "*.blade.php", "tests/"}},
			want: []string{"src/A.php", "src/deep/er/B.php"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover([]string{root}, tt.opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got := rel(t, root, files); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_MultipleRootsAndFileRoot(t *testing.T) {
	a := writeTree(t, map[string]string{"X.php": ""})
	b := writeTree(t, map[string]string{"Y.php": "", "Z.txt": ""})

	files, err := Discover([]string{b, a, filepath.Join(b, "Y.php"), filepath.Join(b, "Z.txt")}, DiscoverOptions{})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{filepath.Join(b, "Y.php"), filepath.Join(a, "X.php"), filepath.Join(b, "Y.php")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope")}, DiscoverOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Discover(missing) error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestBuild_ImportCreatesDependent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"C.php": "<?php\nnamespace A\\B;\n\nuse X\\Y;\n\nclass C extends Y {}\n",
	})
	files, err := Discover([]string{root}, DiscoverOptions{})
	if err != nil {
		t.Fatal(err)
	}

	g, err := quietBuilder(nil).Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	declared, ok := g.Node(`A\B\C`)
	if !ok {
		t.Fatalf("node A\\B\\C missing; have %v", g.IDs())
	}
	if declared.Path() != files[0] {
		t.Errorf("Path() = %q, want %q", declared.Path(), files[0])
	}

	imported, ok := g.Node(`X\Y`)
	if !ok {
		t.Fatal(`node X\Y missing`)
	}
	if imported.HasPath() {
		t.Error("reference-only node should have no path")
	}
	if !imported.HasDependent(`A\B\C`) {
		t.Errorf(`X\Y dependents = %v, want A\B\C`, imported.DependentIDs())
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestBuild_LineEndings(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"lf", "namespace App;\nuse\nLib\\Base;\nclass\nFoo {}"},
		{"crlf", "namespace App;\r\nuse\r\nLib\\Base;\r\nclass\r\nFoo {}"},
		{"cr", "namespace App;\ruse\rLib\\Base;\rclass\rFoo {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeTree(t, map[string]string{"Foo.php": tt.src})
			b := quietBuilder(nil)
			if err := b.AddFile(context.Background(), filepath.Join(root, "Foo.php")); err != nil {
				t.Fatalf("AddFile() error = %v", err)
			}
			g := b.Graph()
			if _, ok := g.Node(`App\Foo`); !ok {
				t.Errorf("node App\\Foo missing; have %v", g.IDs())
			}
			if base, ok := g.Node(`Lib\Base`); !ok || !base.HasDependent(`App\Foo`) {
				t.Errorf("Lib\\Base should have dependent App\\Foo; have %v", g.IDs())
			}
		})
	}
}

func TestBuild_OneNodePerIdentity(t *testing.T) {
	b := quietBuilder(nil)
	ctx := context.Background()
	b.AddSource(ctx, "Base.php", []byte(`namespace Lib; class Base {}`))
	b.AddSource(ctx, "Child.php", []byte(`namespace App; use Lib\Base; class Child {}`))
	b.AddSource(ctx, "Other.php", []byte(`namespace App; use Lib\Base; use App\Child; class Other {}`))

	g := b.Graph()
	want := []string{`App\Child`, `App\Other`, `Lib\Base`}
	if got := g.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	base, _ := g.Node(`Lib\Base`)
	if got := base.DependentIDs(); !reflect.DeepEqual(got, []string{`App\Child`, `App\Other`}) {
		t.Errorf(`Lib\Base dependents = %v`, got)
	}
	if base.Path() != "Base.php" {
		t.Errorf("declared-after-reference path = %q, want Base.php", base.Path())
	}
}

func TestBuild_ReferenceBeforeDeclaration(t *testing.T) {
	b := quietBuilder(nil)
	ctx := context.Background()
	b.AddSource(ctx, "Child.php", []byte(`namespace App; use Lib\Base; class Child {}`))

	base, _ := b.Graph().Node(`Lib\Base`)
	if base.HasPath() {
		t.Fatal("node should start reference-only")
	}

	b.AddSource(ctx, "Base.php", []byte(`namespace Lib; class Base {}`))
	if base.Path() != "Base.php" {
		t.Errorf("Path() = %q, want Base.php", base.Path())
	}
	if !base.HasDependent(`App\Child`) {
		t.Error("dependent lost after SetPath")
	}
}

func TestBuild_DegenerateCollapse(t *testing.T) {
	b := quietBuilder(nil)
	ctx := context.Background()
	b.AddSource(ctx, "one.php", []byte(`<?php use Foo\A; echo 1;`))
	b.AddSource(ctx, "two.php", []byte(`<?php use Foo\B; class X {} class Y {}`))

	g := b.Graph()
	n, ok := g.Node(`\`)
	if !ok {
		t.Fatalf("degenerate node missing; have %v", g.IDs())
	}
	if n.Path() != "two.php" {
		t.Errorf("Path() = %q, want last write two.php", n.Path())
	}
	for _, id := range []string{`Foo\A`, `Foo\B`} {
		dep, _ := g.Node(id)
		if !dep.HasDependent(`\`) {
			t.Errorf("%s should have degenerate dependent", id)
		}
	}
	if got := b.Stats().Degenerate; got != 2 {
		t.Errorf("Stats().Degenerate = %d, want 2", got)
	}
}

func TestBuild_DuplicateDeclarationLastWins(t *testing.T) {
	b := quietBuilder(nil)
	ctx := context.Background()
	b.AddSource(ctx, "a/User.php", []byte(`namespace App; use Lib\One; class User {}`))
	b.AddSource(ctx, "b/User.php", []byte(`namespace App; use Lib\Two; class User {}`))

	g := b.Graph()
	user, _ := g.Node(`App\User`)
	if user.Path() != "b/User.php" {
		t.Errorf("Path() = %q, want b/User.php", user.Path())
	}
	for _, id := range []string{`Lib\One`, `Lib\Two`} {
		n, _ := g.Node(id)
		if !n.HasDependent(`App\User`) {
			t.Errorf("%s should keep App\\User as dependent", id)
		}
	}
}

func TestBuild_UnreadableFile(t *testing.T) {
	_, err := quietBuilder(nil).Build(context.Background(), []string{filepath.Join(t.TempDir(), "gone.php")})
	if !errors.Is(err, errors.ErrCodeFileRead) {
		t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeFileRead)
	}
}

func TestBuild_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"A.php": "namespace A; class A {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietBuilder(nil).Build(ctx, []string{filepath.Join(root, "A.php")})
	if err != context.Canceled {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuild_CacheHits(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A.php": `namespace App; use Lib\Base; class A {}`,
		"B.php": `namespace App; use App\A; class B {}`,
	})
	files, err := Discover([]string{root}, DiscoverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first := quietBuilder(fc)
	g1, err := first.Build(ctx, files)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats().CacheHits != 0 {
		t.Errorf("first build CacheHits = %d, want 0", first.Stats().CacheHits)
	}

	second := quietBuilder(fc)
	g2, err := second.Build(ctx, files)
	if err != nil {
		t.Fatal(err)
	}
	if second.Stats().CacheHits != 2 {
		t.Errorf("second build CacheHits = %d, want 2", second.Stats().CacheHits)
	}
	if !reflect.DeepEqual(g1.IDs(), g2.IDs()) || g1.EdgeCount() != g2.EdgeCount() {
		t.Errorf("cached build differs: %v/%d vs %v/%d", g1.IDs(), g1.EdgeCount(), g2.IDs(), g2.EdgeCount())
	}
}

type recordingHooks struct {
	observability.NoopScanHooks
	observability.NoopCacheHooks
	started   int
	scanned   []string
	completed int
	err       error
	hits      int
	misses    int
	sets      int
}

func (r *recordingHooks) OnBuildStart(_ context.Context, n int) { r.started = n }
func (r *recordingHooks) OnFileScanned(_ context.Context, _, identity string, _ int) {
	r.scanned = append(r.scanned, identity)
}
func (r *recordingHooks) OnBuildComplete(_ context.Context, files, _ int, _ time.Duration, err error) {
	r.completed, r.err = files, err
}
func (r *recordingHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestBuild_Hooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetScanHooks(rec)
	observability.SetCacheHooks(rec)
	defer observability.Reset()

	root := writeTree(t, map[string]string{
		"A.php": `namespace App; use Lib\Base; class A {}`,
		"B.php": `namespace App; use App\A; class B {}`,
	})
	files, err := Discover([]string{root}, DiscoverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := quietBuilder(fc).Build(context.Background(), files); err != nil {
		t.Fatal(err)
	}
	if _, err := quietBuilder(fc).Build(context.Background(), files); err != nil {
		t.Fatal(err)
	}

	if rec.started != 2 || rec.completed != 2 || rec.err != nil {
		t.Errorf("build hooks: started=%d completed=%d err=%v", rec.started, rec.completed, rec.err)
	}
	if want := []string{`App\A`, `App\B`, `App\A`, `App\B`}; !reflect.DeepEqual(rec.scanned, want) {
		t.Errorf("scanned = %v, want %v", rec.scanned, want)
	}
	if rec.misses != 2 || rec.sets != 2 || rec.hits != 2 {
		t.Errorf("cache hooks: hits=%d misses=%d sets=%d, want 2/2/2", rec.hits, rec.misses, rec.sets)
	}
}
