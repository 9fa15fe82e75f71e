package ocr

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Fallback suggestion parsing over raw OCR text, used when the service
// returns text but no timestamp hints. Time cards commonly print
// "08:30", "8.30 PM", "17h05" or a dd/mm/yyyy date.

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])?`),
	regexp.MustCompile(`(\d{1,2})\.(\d{2})\s*([AaPp][Mm])?`),
	regexp.MustCompile(`(\d{1,2})h(\d{2})`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),   // dd/mm/yyyy
	regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),   // dd-mm-yyyy
	regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`), // dd.mm.yyyy
}

// ParseTimes extracts clock times from OCR text. With two or more
// matches the earliest is the start hint and the latest the end hint;
// a single match is a start hint only.
func ParseTimes(text string) (start, end *string) {
	seen := make(map[int]bool)
	var seconds []int

	for _, pattern := range timePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			second := 0
			ampm := ""
			if len(m) >= 5 {
				if m[3] != "" {
					second, _ = strconv.Atoi(m[3])
				}
				ampm = m[4]
			} else if len(m) >= 4 {
				ampm = m[3]
			}

			if strings.EqualFold(ampm, "pm") && hour != 12 {
				hour += 12
			} else if strings.EqualFold(ampm, "am") && hour == 12 {
				hour = 0
			}

			if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
				continue
			}

			total := hour*3600 + minute*60 + second
			if !seen[total] {
				seen[total] = true
				seconds = append(seconds, total)
			}
		}
	}

	if len(seconds) == 0 {
		return nil, nil
	}

	sort.Ints(seconds)
	first := formatClock(seconds[0])
	if len(seconds) == 1 {
		return &first, nil
	}
	last := formatClock(seconds[len(seconds)-1])
	return &first, &last
}

// ParseDate extracts a dd/mm/yyyy-style date from OCR text, returned
// as YYYY-MM-DD.
func ParseDate(text string) *string {
	for _, pattern := range datePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])

			if day < 1 || day > 31 || month < 1 || month > 12 || year < 1900 || year > 2100 {
				continue
			}

			// Reject impossible dates like 31/02
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if d.Day() != day || int(d.Month()) != month {
				continue
			}

			formatted := d.Format("2006-01-02")
			return &formatted
		}
	}
	return nil
}

func formatClock(totalSeconds int) string {
	t := time.Date(0, 1, 1, 0, 0, totalSeconds, 0, time.UTC)
	return t.Format("15:04:05")
}
