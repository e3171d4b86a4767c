package entity

import "testing"

func TestOverlaps(t *testing.T) {
	slot := AvailabilitySlot{StartTime: "09:00", EndTime: "10:00"}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical window", "09:00", "10:00", true},
		{"contained", "09:15", "09:45", true},
		{"containing", "08:00", "11:00", true},
		{"overlapping start", "08:30", "09:30", true},
		{"overlapping end", "09:30", "10:30", true},
		{"adjacent before", "08:00", "09:00", false},
		{"adjacent after", "10:00", "11:00", false},
		{"disjoint before", "07:00", "08:00", false},
		{"disjoint after", "11:00", "12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slot.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	slot := AvailabilitySlot{Timezone: "Nowhere/Invalid"}
	if got := slot.Location().String(); got != "UTC" {
		t.Errorf("location = %q, want UTC", got)
	}
}

func TestStartAt(t *testing.T) {
	slot := AvailabilitySlot{Date: "2025-03-01", StartTime: "09:00", Timezone: "UTC"}
	got, err := slot.StartAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 9 || got.Day() != 1 {
		t.Errorf("start = %v, want 2025-03-01 09:00 UTC", got)
	}
}
