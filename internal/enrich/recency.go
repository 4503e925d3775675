package enrich

import (
	"regexp"
	"strconv"
	"strings"
)

var digits = regexp.MustCompile(`\d+`)

// Unit keywords cover the source's Russian labels and their English
// equivalents. Minutes round down to zero hours.
var unitFactors = []struct {
	keywords []string
	factor   int
}{
	{keywords: []string{"недел", "week"}, factor: 168},
	{keywords: []string{"день", "дня", "дней", "day"}, factor: 24},
	{keywords: []string{"час", "hour"}, factor: 1},
	{keywords: []string{"минут", "minute"}, factor: 0},
}

// ParseHours converts a relative-time label ("3 часа назад", "2 days ago")
// into an hour count. Unparseable input yields 0 rather than an error; the
// label is display data and a lossy default is safer than dropping the item.
func ParseHours(label string) int {
	lower := strings.ToLower(label)

	match := digits.FindString(lower)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	for _, unit := range unitFactors {
		for _, keyword := range unit.keywords {
			if strings.Contains(lower, keyword) {
				return n * unit.factor
			}
		}
	}

	return 0
}
