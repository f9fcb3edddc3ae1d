package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// timestampRE matches the strict H:MM:SS.cc shape. Range checks happen
// after the match so "0:99:00.00" reports out-of-range minutes instead of
// a generic shape error.
var timestampRE = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{2})$`)

// ParseTimestamp normalizes an H:MM:SS.cc timestamp to centiseconds.
func ParseTimestamp(raw string) (int, error) {
	m := timestampRE.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("invalid time format: %q (expected H:MM:SS.cc)", raw)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	centis, _ := strconv.Atoi(m[4])

	if minutes >= 60 {
		return 0, fmt.Errorf("minutes out of range in %q", raw)
	}
	if seconds >= 60 {
		return 0, fmt.Errorf("seconds out of range in %q", raw)
	}
	return hours*360000 + minutes*6000 + seconds*100 + centis, nil
}

// FormatTimestamp renders centiseconds back to H:MM:SS.cc.
func FormatTimestamp(cs int) string {
	if cs < 0 {
		cs = 0
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d",
		cs/360000, cs/6000%60, cs/100%60, cs%100)
}
