package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"log/slog"
)

func newTestHandler(buf *bytes.Buffer, format logFormat) (*structuredHandler, *asyncWriter) {
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelInfo,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return h, aw
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)

	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	log := slog.New(handler).With("component", "service.ledger")
	LogEvent(ctx, log, slog.LevelInfo, "payment.confirmed",
		slog.String("status", "ok"),
		slog.String("game_type", "lock_stock"),
	)
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=service.ledger", "event=payment.confirmed", "status=ok", "rid=rid-123"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatJSON)

	ctx := WithRID(Background(), "rid-json")
	ctx = WithUpdateMeta(ctx, 11, 22, 33)

	log := slog.New(handler).With("component", "service.sessions")
	LogEvent(ctx, log, slog.LevelError, "session.expire.failed",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
	)
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("expected JSON, got %s", line)
	}
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"service.sessions"`, `"event":"session.expire.failed"`, `"status":"fail"`, `"rid":"rid-json"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
	if !strings.Contains(line, `"ts_unix_nano"`) {
		t.Fatalf("expected ts_unix_nano in JSON output, got %s", line)
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)

	rawRID := "123:456:789"
	ctx := WithRID(Background(), rawRID)
	log := slog.New(handler).With("component", "app")
	LogEvent(ctx, log, slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "rid="+CompactRID(rawRID)) {
		t.Fatalf("expected compact rid, got %s", line)
	}
	if strings.Contains(line, "rid_full=") {
		t.Fatalf("rid_full should be omitted in KV output, got %s", line)
	}
}

func TestStructuredHandlerDurationNormalization(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)

	log := slog.New(handler).With("component", "schedule")
	LogEvent(Background(), log, slog.LevelInfo, "task.fired",
		slog.Duration("duration", 1500*1000*1000),
	)
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "duration_ms=1500") {
		t.Fatalf("expected duration_ms=1500, got %s", line)
	}
}

func TestCompactRIDPassThrough(t *testing.T) {
	for _, rid := range []string{"", "not-a-rid", "1:2", "a:b:c"} {
		if got := CompactRID(rid); got != rid {
			t.Fatalf("CompactRID(%q) = %q, expected pass-through", rid, got)
		}
	}
}
