package extract

import "testing"

func TestFirstDateTwoDigitYear(t *testing.T) {
	if got := FirstDate("loading on 05/03/24 morning"); got != "2024-03-05" {
		t.Fatalf("FirstDate = %q, want 2024-03-05", got)
	}
}

func TestFirstDateFourDigitYear(t *testing.T) {
	if got := FirstDate("15/03/2024"); got != "2024-03-15" {
		t.Fatalf("FirstDate = %q, want 2024-03-15", got)
	}
}

func TestFirstDateImpossibleCalendarDate(t *testing.T) {
	if got := FirstDate("31/02/2024"); got != "" {
		t.Fatalf("FirstDate(31/02/2024) = %q, want empty", got)
	}
}

func TestFirstDateAbsent(t *testing.T) {
	if got := FirstDate("no dates here"); got != "" {
		t.Fatalf("FirstDate = %q, want empty", got)
	}
}
