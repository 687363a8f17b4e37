package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	windowColonRe  = regexp.MustCompile(`^(\d{1,2}):(\d{2})[-–](\d{1,2}):(\d{2})$`)
	windowDigitsRe = regexp.MustCompile(`^(\d{4})[-–](\d{4})$`)
	windowSingleRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(AM|PM)?$`)
)

// ParseTimeWindow normalizes a raw slot token into start/end clock times.
// Recognized shapes: "8h00-12h30", "08:00-12:30", "0800-1230" and a single
// booked timestamp ("BOOKED-11:00AM"), which leaves the end empty. Anything
// else yields two empty strings.
func ParseTimeWindow(slot string) (string, string) {
	if slot == "" {
		return "", ""
	}
	s := strings.TrimSpace(slot)
	s = strings.NewReplacer("BOOKED-", "", "BOOKED", "").Replace(strings.ToUpper(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "H", ":")

	if m := windowColonRe.FindStringSubmatch(s); m != nil {
		return clock(m[1], m[2]), clock(m[3], m[4])
	}
	if m := windowDigitsRe.FindStringSubmatch(s); m != nil {
		return m[1][:2] + ":" + m[1][2:], m[2][:2] + ":" + m[2][2:]
	}
	if m := windowSingleRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		switch m[3] {
		case "PM":
			if h < 12 {
				h += 12
			}
		case "AM":
			if h == 12 {
				h = 0
			}
		}
		return clock(strconv.Itoa(h), m[2]), ""
	}
	return "", ""
}

func clock(h, m string) string {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	return fmt.Sprintf("%02d:%02d", hh, mm)
}
