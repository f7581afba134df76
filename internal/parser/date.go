package parser

import (
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

type datePattern struct {
	re                 *regexp.Regexp
	year, month, day int // submatch indexes
}

// Tried in this order; the first match wins.
var datePatterns = []datePattern{
	{re: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`), year: 1, month: 2, day: 3},
	{re: regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`), year: 1, month: 2, day: 3},
	{re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), year: 3, month: 1, day: 2},
}

var bareDateLine = regexp.MustCompile(`^(\d{4}-\d{1,2}-\d{1,2}|\d{4}年\d{1,2}月\d{1,2}日|\d{1,2}/\d{1,2}/\d{4})$`)

// extractDate resolves the memo date from the body, then the file name,
// then falls back to today at local midnight.
func (p *implParser) extractDate(content, sourceHint string) time.Time {
	if d, ok := findDate(content); ok {
		return d
	}
	if sourceHint != "" {
		if d, ok := findDate(filepath.Base(sourceHint)); ok {
			return d
		}
	}
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

func findDate(s string) (time.Time, bool) {
	for _, pat := range datePatterns {
		for _, m := range pat.re.FindAllStringSubmatch(s, -1) {
			y, _ := strconv.Atoi(m[pat.year])
			mo, _ := strconv.Atoi(m[pat.month])
			d, _ := strconv.Atoi(m[pat.day])
			if t, ok := calendarDate(y, mo, d); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func calendarDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
