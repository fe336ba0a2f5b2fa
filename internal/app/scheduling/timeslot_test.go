package scheduling

import (
	"testing"

	"registrar/internal/pkg/apperrors"
)

func TestTimeSlotCatalog_ResolveAllSlots(t *testing.T) {
	catalog := NewTimeSlotCatalog()

	if catalog.Size() != 7 {
		t.Fatalf("expected 7 slots, got %d", catalog.Size())
	}

	expected := map[int]Window{
		1: {StartTime: "08:00:00", EndTime: "09:20:00"},
		2: {StartTime: "09:30:00", EndTime: "10:50:00"},
		3: {StartTime: "11:00:00", EndTime: "12:20:00"},
		4: {StartTime: "12:30:00", EndTime: "13:50:00"},
		5: {StartTime: "14:00:00", EndTime: "15:20:00"},
		6: {StartTime: "15:30:00", EndTime: "16:50:00"},
		7: {StartTime: "17:00:00", EndTime: "18:20:00"},
	}

	for slot, want := range expected {
		got, err := catalog.Resolve(slot)
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", slot, err)
		}
		if got != want {
			t.Errorf("Resolve(%d) = %+v, want %+v", slot, got, want)
		}
	}
}

func TestTimeSlotCatalog_ResolveOutOfRange(t *testing.T) {
	catalog := NewTimeSlotCatalog()

	for _, slot := range []int{0, 8, -1, 100} {
		_, err := catalog.Resolve(slot)
		if err == nil {
			t.Fatalf("Resolve(%d) should fail", slot)
		}
		if !apperrors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("Resolve(%d) should be a bad request, got %v", slot, err)
		}
	}
}

func TestTimeSlotCatalog_WindowsAreChronologicalAndDisjoint(t *testing.T) {
	catalog := NewTimeSlotCatalog()

	var previousEnd string
	for slot := 1; slot <= catalog.Size(); slot++ {
		window, err := catalog.Resolve(slot)
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", slot, err)
		}
		if window.StartTime >= window.EndTime {
			t.Errorf("slot %d window %s-%s is not chronological", slot, window.StartTime, window.EndTime)
		}
		if previousEnd != "" && window.StartTime <= previousEnd {
			t.Errorf("slot %d starts at %s, before the previous slot ends at %s", slot, window.StartTime, previousEnd)
		}
		previousEnd = window.EndTime
	}
}

func TestTimeSlotCatalog_WindowsCopy(t *testing.T) {
	catalog := NewTimeSlotCatalog()

	windows := catalog.Windows()
	windows[1] = Window{StartTime: "00:00:00", EndTime: "00:00:01"}

	got, err := catalog.Resolve(1)
	if err != nil {
		t.Fatalf("Resolve(1) failed: %v", err)
	}
	if got.StartTime != "08:00:00" {
		t.Errorf("mutating the Windows result should not affect the catalog, got %+v", got)
	}
}
