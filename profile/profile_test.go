package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Start_EmptyModeIsNoop(t *testing.T) {
	stop := Profiler{}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("Start() with empty mode = %T, want ignore", stop)
	}

	stop.Stop()
}

func TestProfiler_Start_UnknownModeIsNoop(t *testing.T) {
	stop := Profiler{Mode: "bogus", Path: t.TempDir()}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("Start() with unknown mode = %T, want ignore", stop)
	}

	stop.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without the %s tag, want none", modes, Tag)
		}

		return
	}

	if slices.Contains(modes, "quiet") {
		t.Error("Modes() contains quiet")
	}

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}
}
