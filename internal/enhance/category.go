package enhance

import "strings"

type Category string

const (
	Marketing Category = "marketing"
	Software  Category = "software"
	Business  Category = "business"
	Content   Category = "content"
	Generic   Category = "generic"
)

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case Marketing:
		return "Marketing"
	case Software:
		return "Software"
	case Business:
		return "Business"
	case Content:
		return "Content"
	default:
		return "General"
	}
}

type rule struct {
	category Category
	keywords []string
}

// rules are evaluated top to bottom; the first rule with any keyword hit wins.
var rules = []rule{
	{Marketing, []string{"marketing", "campaign"}},
	{Software, []string{"code", "program", "app", "software"}},
	{Business, []string{"business", "strategy", "plan"}},
	{Content, []string{"content", "article", "blog", "write"}},
}

// Categories returns every category in classification order, Generic last.
func Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, Generic)
}

// Classify picks the category for a free-text idea by case-insensitive
// substring matching against the ordered rule table.
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return Generic
}
