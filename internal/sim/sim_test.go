package sim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/core"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		in      string
		want    Script
		wantErr bool
	}{
		{"auto", ScriptAuto, false},
		{"idle", ScriptIdle, false},
		{"", ScriptAuto, false},
		{"random", "", true},
	}

	for _, tt := range tests {
		got, err := ParseScript(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScript(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScript(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestRunNeedsTicks(t *testing.T) {
	if _, err := Run(Options{}); !errors.Is(err, ErrNoTicks) {
		t.Errorf("expected ErrNoTicks, got %v", err)
	}
}

func TestRunDeterministic(t *testing.T) {
	opts := Options{Ticks: 1500, Seed: 7, Script: ScriptAuto}

	r1, err := Run(opts)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	r2, err := Run(opts)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if r1.Hash != r2.Hash || r1.Ticks != r2.Ticks {
		t.Errorf("runs differ: %d/%d ticks, hash %d vs %d", r1.Ticks, r2.Ticks, r1.Hash, r2.Hash)
	}
	if r1.Ticks > opts.Ticks {
		t.Errorf("ran %d ticks, expected at most %d", r1.Ticks, opts.Ticks)
	}
	if !r1.Over && r1.Ticks != opts.Ticks {
		t.Errorf("unfinished round stopped after %d ticks", r1.Ticks)
	}
}

func TestRunTrace(t *testing.T) {
	var buf bytes.Buffer
	res, err := Run(Options{Ticks: 900, Seed: 3, Script: ScriptIdle, Trace: &buf, Every: 60})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	frames, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace() failed: %v", err)
	}
	if len(frames) == 0 {
		t.Fatal("expected trace frames")
	}
	if len(frames) != res.Frames {
		t.Errorf("decoded %d frames, writer reported %d", len(frames), res.Frames)
	}

	prev := 0
	for _, f := range frames {
		if f.Tick <= prev {
			t.Errorf("frame tick %d after %d", f.Tick, prev)
		}
		if f.Tick%60 != 0 && len(f.Events) == 0 {
			t.Errorf("frame %d has no events and is off the sampling interval", f.Tick)
		}
		if f.Snapshot.Tick == 0 {
			t.Errorf("frame %d carries an empty snapshot", f.Tick)
		}
		prev = f.Tick
	}

	last := frames[len(frames)-1]
	if res.Over && !last.Snapshot.RoundOver {
		t.Error("last frame of a finished round should be over")
	}
}

func TestRunCountsEvents(t *testing.T) {
	res, err := Run(Options{Ticks: 600, Seed: 11, Script: ScriptIdle})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	lost := res.Events[core.EventRoundLost]
	if res.Over && lost != 1 {
		t.Errorf("finished round reported %d RoundLost events, expected 1", lost)
	}
	if !res.Over && lost != 0 {
		t.Errorf("running round reported %d RoundLost events", lost)
	}
}
