package schedule

import "testing"

func TestIsDayOffName(t *testing.T) {
	dayOff := []string{"day off", "Day Off", "DAY-OFF", "dayoff", "do", "DO", "-", "  day  off  "}
	for _, name := range dayOff {
		if !IsDayOffName(name) {
			t.Fatalf("expected %q to be a day off", name)
		}
	}

	working := []string{"Morning", "do-re-mi", "double", "dough station", "18:00-23:00", "", "--"}
	for _, name := range working {
		if IsDayOffName(name) {
			t.Fatalf("expected %q to be a working shift", name)
		}
	}
}
