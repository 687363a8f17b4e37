package extract

import "testing"

func TestParseTimeWindowShapes(t *testing.T) {
	cases := []struct {
		slot       string
		start, end string
	}{
		{"8h00-12h30", "08:00", "12:30"},
		{"08:00 - 12:30", "08:00", "12:30"},
		{"0800-1230", "08:00", "12:30"},
		{"BOOKED-11:00AM", "11:00", ""},
		{"BOOKED- 2:30PM", "14:30", ""},
		{"", "", ""},
		{"no window", "", ""},
	}
	for _, c := range cases {
		start, end := ParseTimeWindow(c.slot)
		if start != c.start || end != c.end {
			t.Errorf("ParseTimeWindow(%q) = (%q, %q), want (%q, %q)", c.slot, start, end, c.start, c.end)
		}
	}
}
