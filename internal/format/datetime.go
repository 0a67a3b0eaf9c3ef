package format

import (
	"regexp"
	"strings"
)

// IsDate checks an RFC 3339 full-date.
func IsDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, ok1 := digits(s[0:4])
	month, ok2 := digits(s[5:7])
	day, ok3 := digits(s[8:10])
	if !ok1 || !ok2 || !ok3 || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysIn(year, month)
}

// IsTime checks an RFC 3339 full-time; the offset is required.
func IsTime(s string) bool {
	if len(s) < 9 || s[2] != ':' || s[5] != ':' {
		return false
	}
	hour, ok1 := digits(s[0:2])
	minute, ok2 := digits(s[3:5])
	second, ok3 := digits(s[6:8])
	if !ok1 || !ok2 || !ok3 || hour > 23 || minute > 59 || second > 60 {
		return false
	}
	rest := s[8:]
	if rest[0] == '.' {
		n := 1
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		if n == 1 {
			return false
		}
		rest = rest[n:]
	}
	offsetMinutes, ok := parseOffset(rest)
	if !ok {
		return false
	}
	if second == 60 {
		// Leap seconds only occur at 23:59:60 UTC.
		utc := (hour*60 + minute - offsetMinutes) % (24 * 60)
		if utc < 0 {
			utc += 24 * 60
		}
		return utc == 23*60+59
	}
	return true
}

// IsDateTime checks an RFC 3339 date-time.
func IsDateTime(s string) bool {
	if len(s) < 11 {
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return IsDate(s[:10]) && IsTime(s[11:])
}

func parseOffset(s string) (int, bool) {
	if s == "Z" || s == "z" {
		return 0, true
	}
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return 0, false
	}
	h, ok1 := digits(s[1:3])
	m, ok2 := digits(s[4:6])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, false
	}
	off := h*60 + m
	if s[0] == '-' {
		off = -off
	}
	return off, true
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, len(s) > 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

var durationPattern = regexp.MustCompile(`^P(?:(\d+Y)?(\d+M)?(\d+D)?(?:T(\d+H)?(\d+M)?(\d+S)?)?|\d+W)$`)

// IsDuration checks an ISO 8601 duration as profiled by RFC 3339 appendix A.
func IsDuration(s string) bool {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || s == "P" {
		return false
	}
	if strings.HasSuffix(s, "W") {
		return true
	}
	datePart := m[1] != "" || m[2] != "" || m[3] != ""
	timePart := m[4] != "" || m[5] != "" || m[6] != ""
	if strings.Contains(s, "T") && !timePart {
		return false
	}
	return datePart || timePart
}
