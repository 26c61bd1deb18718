package service

import (
	"regexp"
	"strconv"
	"strings"
)

var ordinals = map[string]int{
	"first": 1, "1st": 1,
	"second": 2, "2nd": 2,
	"third": 3, "3rd": 3,
	"fourth": 4, "4th": 4,
	"fifth": 5, "5th": 5,
	"sixth": 6, "6th": 6,
	"seventh": 7, "7th": 7,
	"eighth": 8, "8th": 8,
	"ninth": 9, "9th": 9,
	"tenth": 10, "10th": 10,
}

var (
	ordinalWordRe = regexp.MustCompile(`\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|1st|2nd|3rd|4th|5th|6th|7th|8th|9th|10th)\b`)
	twoLinksRe    = regexp.MustCompile(`(?:link\s*)?#?(\d+)\s*(?:and|&|,|vs\.?|versus)\s*(?:link\s*)?#?(\d+)`)
	linkPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?:summarize|summary|details|more\s+details|explain|about)\s+(?:link\s*)?#?(\d+)`),
		regexp.MustCompile(`(?:summarize|summary|details|more\s+details|explain|about)\s+the\s+(\w+)\s+(?:link|one)`),
		regexp.MustCompile(`(?:link|#)\s*(\d+)`),
		regexp.MustCompile(`\b(\w+)\s+(?:link|one)\b`),
	}
)

// detectLinkIndex returns the 1-based source index a message points at,
// e.g. "summarize #2" or "the first link".
func detectLinkIndex(text string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0, false
	}
	for _, re := range linkPatterns {
		for _, m := range re.FindAllStringSubmatch(t, -1) {
			if idx, ok := parseIndex(m[1]); ok {
				return idx, true
			}
		}
	}
	return 0, false
}

// detectTwoLinks returns the pair of 1-based indexes in messages such as
// "compare 1 and 3" or "first vs third".
func detectTwoLinks(text string) (int, int, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0, 0, false
	}
	t = ordinalWordRe.ReplaceAllStringFunc(t, func(w string) string {
		return strconv.Itoa(ordinals[w])
	})
	m := twoLinksRe.FindStringSubmatch(t)
	if m == nil {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(m[1])
	b, errB := strconv.Atoi(m[2])
	if errA != nil || errB != nil || a < 1 || b < 1 {
		return 0, 0, false
	}
	return a, b, true
}

func parseIndex(g string) (int, bool) {
	if n, err := strconv.Atoi(g); err == nil {
		return n, n >= 1
	}
	n, ok := ordinals[g]
	return n, ok
}
