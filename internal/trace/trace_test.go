package trace

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Format: FormatNDJSON, Output: &buf, Session: "s-1"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	ctx, outer := StartSpan(ctx, ScopePass, "parse")
	_, inner := StartSpan(ctx, ScopeFile, "file:a.py")
	inner.WithExtra("tokens", "12").End("ok")
	outer.End("")
	// ScopeNode is filtered at LevelDetail
	Point(ctx, ScopeNode, "stmt", "")

	var records []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad record %q: %v", sc.Text(), err)
		}
		records = append(records, rec)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4:\n%s", len(records), buf.String())
	}
	for _, rec := range records {
		if rec["session"] != "s-1" {
			t.Errorf("record without session: %v", rec)
		}
	}
	end := records[2]
	if end["kind"] != "end" || end["detail"] != "ok" || end["parent_id"] == nil {
		t.Errorf("inner end record: %v", end)
	}
	if extra, ok := end["extra"].(map[string]any); !ok || extra["tokens"] != "12" {
		t.Errorf("extra: %v", end["extra"])
	}
	if !strings.Contains(end["message"].(string), "file:a.py") {
		t.Errorf("message: %v", end["message"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: string(rune('a' + i))})
	}
	snap := r.Snapshot()
	if len(snap) != 3 || r.Len() != 3 {
		t.Fatalf("snapshot len %d", len(snap))
	}
	if snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("order: %s %s %s", snap[0].Name, snap[1].Name, snap[2].Name)
	}

	var buf bytes.Buffer
	r.Dump(&buf, FormatText)
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("dump has %d lines:\n%s", got, buf.String())
	}
}

func TestRingKeepsEventsAtErrorLevel(t *testing.T) {
	r := NewRingTracer(4, LevelError)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: "x"})
	if r.Len() != 1 {
		t.Fatalf("ring dropped event at LevelError")
	}
}

func TestNopWhenOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Fatal("LevelOff should yield Nop")
	}
	ctx := WithTracer(context.Background(), tr)
	ctx2, span := StartSpan(ctx, ScopeDriver, "x")
	if span != nil || ctx2 != ctx {
		t.Fatal("disabled tracer opened a span")
	}
	if d := span.WithExtra("k", "v").End("done"); d != 0 {
		t.Fatalf("nil span End = %v", d)
	}
	if Enabled(context.Background(), ScopeDriver) {
		t.Fatal("context without tracer reports enabled")
	}
}

func TestBothModeSharesSeq(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ring := RingOf(tr)
	if ring == nil {
		t.Fatal("ModeBoth has no ring")
	}
	_, span := StartSpan(WithTracer(context.Background(), tr), ScopePass, "parse")
	span.End("")

	snap := ring.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("ring holds %d events", len(snap))
	}
	var first map[string]any
	line, _, _ := strings.Cut(buf.String(), "\n")
	if err := json.Unmarshal([]byte(line), &first); err != nil {
		t.Fatal(err)
	}
	if seq, _ := first["seq"].(float64); uint64(seq) != snap[0].Seq {
		t.Errorf("stream seq %v, ring seq %d", first["seq"], snap[0].Seq)
	}
	if snap[1].Elapsed < 0 || snap[1].Kind != KindSpanEnd {
		t.Errorf("end event %+v", snap[1])
	}
}

func TestHeartbeatNamesOldestFile(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)
	_, driver := StartSpan(ctx, ScopeDriver, "check")
	_, file := StartSpan(ctx, ScopeFile, "file:slow.py")

	ev := heartbeatEvent(1)
	file.End("")
	driver.End("")

	if !strings.HasPrefix(ev.Detail, "#1, ") {
		t.Errorf("detail %q", ev.Detail)
	}
	if len(ev.Fields) != 2 || ev.Fields[0].Value != "file:slow.py" {
		t.Errorf("fields %+v", ev.Fields)
	}
}

func TestStartHeartbeatStops(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()
	stop()
	n := ring.Len()
	if n == 0 {
		t.Fatal("no heartbeats recorded")
	}
	time.Sleep(10 * time.Millisecond)
	if ring.Len() != n {
		t.Fatal("heartbeat kept running after stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) == nil {
		t.Fatal("stop func must never be nil")
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"stream", "Ring", "both"} {
		m, err := ParseMode(name)
		if err != nil || !strings.EqualFold(m.String(), name) {
			t.Errorf("ParseMode(%q) = %v, %v", name, m, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("ParseMode(disk) should fail")
	}
}
