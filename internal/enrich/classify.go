package enrich

import "strings"

// DefaultCategory labels titles matching no rule.
const DefaultCategory = "Other"

// rules is static configuration: ordered (keyword-set, label) pairs matched
// case-insensitively against the title. First match wins, so a title naming
// both "galaxy" and "iphone" is filed under Samsung. Extend by appending.
var rules = []struct {
	keywords []string
	label    string
}{
	{keywords: []string{"samsung", "galaxy"}, label: "Samsung"},
	{keywords: []string{"apple", "iphone"}, label: "Apple"},
	{keywords: []string{"xiaomi", "redmi", "poco"}, label: "Xiaomi"},
	{keywords: []string{"google", "pixel"}, label: "Google"},
	{keywords: []string{"oneplus"}, label: "OnePlus"},
}

// Classify assigns a category label from the article title.
func Classify(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.label
			}
		}
	}
	return DefaultCategory
}

// Categories enumerates every assignable label, default included.
func Categories() []string {
	labels := make([]string, 0, len(rules)+1)
	for _, rule := range rules {
		labels = append(labels, rule.label)
	}
	return append(labels, DefaultCategory)
}
