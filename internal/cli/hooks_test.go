package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/minidraw/pkg/observability"
)

func TestLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	installHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	observability.Scene().OnLoadStart(ctx, "a.toml", "toml")
	observability.Scene().OnLoadComplete(ctx, "a.toml", "toml", 3, time.Millisecond, nil)
	observability.Render().OnRenderStart(ctx, "svg", 3)
	observability.Render().OnRenderComplete(ctx, "svg", 0, 0, errors.New("boom"))
	observability.Cache().OnCacheMiss(ctx, "svg")
	observability.Cache().OnCacheSet(ctx, "svg", 42)
	observability.Cache().OnCacheHit(ctx, "svg")

	out := buf.String()
	for _, want := range []string{"load scene", "scene loaded", "nodes=3", "render start", "render failed", "err=boom", "cache miss", "bytes=42", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	installHooks(newLogger(&buf, log.InfoLevel))
	observability.Render().OnRenderStart(context.Background(), "svg", 1)
	if buf.Len() != 0 {
		t.Errorf("hook logged at info level: %q", buf.String())
	}
}
