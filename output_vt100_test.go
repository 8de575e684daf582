package promptcore

import (
	"strings"
	"testing"
)

// TestVT100OutputSyncOutputWrapsOnlyTheFlushedBatch is the module's literal
// scenario A: begin; write("hello"); flush(); end(); then a further
// write+flush with no new begin emits unbracketed bytes (spec §4.3 step 9,
// §6).
func TestVT100OutputSyncOutputWrapsOnlyTheFlushedBatch(t *testing.T) {
	var sink strings.Builder
	o := NewVT100Output(&sink, -1)

	o.EnableSyncOutput()
	o.Write("hello")
	if err := o.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o.DisableSyncOutput()

	want := "\x1b[?2026hhello\x1b[?2026l"
	if sink.String() != want {
		t.Fatalf("got %q, want %q", sink.String(), want)
	}

	sink.Reset()
	o.Write("x")
	if err := o.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.String() != "x" {
		t.Fatalf("got %q, want unbracketed %q", sink.String(), "x")
	}
}

func TestVT100OutputSyncOutputIsReentrant(t *testing.T) {
	var sink strings.Builder
	o := NewVT100Output(&sink, -1)

	o.EnableSyncOutput()
	o.EnableSyncOutput()
	o.Write("hi")
	o.DisableSyncOutput()
	if err := o.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o.DisableSyncOutput()

	want := "\x1b[?2026hhi\x1b[?2026l"
	if sink.String() != want {
		t.Fatalf("got %q, want %q (still bracketed: one DisableSyncOutput is not enough to close a doubly-entered region)", sink.String(), want)
	}
}
