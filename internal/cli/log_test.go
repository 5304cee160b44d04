package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{LogInfo, false},
		{LogDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, LogInfo)
			c.SetLogLevel(tt.level)

			c.Logger.Debug("scanned file", "path", "src/A.php")
			if got := strings.Contains(buf.String(), "scanned file"); got != tt.wantDebug {
				t.Errorf("debug line written = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

// elapsedRE matches a rounded duration such as "(0s)", "(12ms)" or "(1.5s)".
var elapsedRE = regexp.MustCompile(`Scanned sources \(\d+(\.\d+)?(ms|s|m)\)`)

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Scanned sources", "files", 3)

	out := buf.String()
	if !elapsedRE.MatchString(out) {
		t.Errorf("progress.done() output = %q, want message followed by elapsed time", out)
	}
	if !strings.Contains(out, "files=3") {
		t.Errorf("progress.done() output = %q, want files=3", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Errorf("loggerFromContext(empty) = %p, want log.Default()", got)
	}
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Errorf("loggerFromContext() = %p, want %p", got, custom)
	}
}

func TestRootCommand_AttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path"})
	root.SetOut(&bytes.Buffer{})

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path error = %v", err)
	}

	sub, _, err := root.Find([]string{"cache", "path"})
	if err != nil {
		t.Fatal(err)
	}
	if got := loggerFromContext(sub.Context()); got != c.Logger {
		t.Error("subcommand context does not carry the CLI logger")
	}
}
