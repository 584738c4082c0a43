package pixfilter

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// captureLog routes the package logger into a buffer for the test.
func captureLog(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	ctx := context.Background()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("pass", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs did not return a nopHandler")
	}
	if _, ok := h.WithGroup("blur").(nopHandler); !ok {
		t.Error("WithGroup did not return a nopHandler")
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLog(t, slog.LevelDebug)
	Logger().Info("hello", "k", 1)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output = %q", buf.String())
	}

	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) left a nil logger")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestUnsupportedFormatLogsWarning(t *testing.T) {
	buf := captureLog(t, slog.LevelWarn)

	src := surface.Alloc(2, 2, surface.FormatBGRA)
	dst := surface.Alloc(2, 2, surface.FormatBGRAPremul)
	NewBlurFilter(1, 2, 2).Apply(src, dst, geom.Point{}, geom.Point{}, 0)

	if !strings.Contains(buf.String(), "unsupported format") {
		t.Errorf("no warning about the format pairing: %q", buf.String())
	}
}

func TestFilterBitmapLogsPasses(t *testing.T) {
	buf := captureLog(t, slog.LevelDebug)

	in := newFilled(3, 3, surface.FormatBGRA, 0xffffffff)
	list := FilterList{NewBlurFilter(2, 3, 3), NewInvertFilter()}
	out := FilterBitmap(list, in, in.Bounds(), list.FilteredObjectRect(in.Bounds()), false, false, geom.Point{})
	out.DecRef()

	if n := strings.Count(buf.String(), "pixfilter: pass"); n != 3 {
		t.Errorf("logged %d passes, want 3:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "filter=Blur") || !strings.Contains(buf.String(), "filter=ColorMatrix") {
		t.Errorf("pass records do not name the filter:\n%s", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabled(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("pass", "index", 1)
	}
}
