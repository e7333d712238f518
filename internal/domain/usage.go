package domain

// Category enumerates the feature categories throttled by the daily counters.
type Category string

const (
	CategoryPlagiarism Category = "plagiarism"
	CategoryHumanizer  Category = "humanizer"
	CategoryBulk       Category = "bulk"
)

// Daily ceilings for the free tier. These are soft, UX-layer limits; the
// backend enforces its own quotas independently.
const (
	CeilingPlagiarism = 5
	CeilingHumanizer  = 5
	CeilingBulk       = 1
)

// DayFormat is the calendar-day string the counters are keyed by. Days are
// compared by string equality against "today".
const DayFormat = "Mon Jan 02 2006"

// Categories lists all throttled categories.
func Categories() []Category {
	return []Category{CategoryPlagiarism, CategoryHumanizer, CategoryBulk}
}

// ParseCategory validates a category name from an external caller.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryPlagiarism, CategoryHumanizer, CategoryBulk:
		return Category(s), true
	}
	return "", false
}

// Ceiling returns the daily ceiling for a category, or 0 for unknown ones.
func Ceiling(c Category) int {
	switch c {
	case CategoryPlagiarism:
		return CeilingPlagiarism
	case CategoryHumanizer:
		return CeilingHumanizer
	case CategoryBulk:
		return CeilingBulk
	}
	return 0
}

// UsageLimits holds the per-day counters. A record whose Date is not today is
// implicitly all-zero; the reset happens lazily on the next check.
type UsageLimits struct {
	Date       string `json:"date"`
	Plagiarism int    `json:"plagiarism"`
	Humanizer  int    `json:"humanizer"`
	Bulk       int    `json:"bulk"`
}

// Count returns the counter for a category.
func (l UsageLimits) Count(c Category) int {
	switch c {
	case CategoryPlagiarism:
		return l.Plagiarism
	case CategoryHumanizer:
		return l.Humanizer
	case CategoryBulk:
		return l.Bulk
	}
	return 0
}

// Add increments the counter for a category by delta.
func (l *UsageLimits) Add(c Category, delta int) {
	switch c {
	case CategoryPlagiarism:
		l.Plagiarism += delta
	case CategoryHumanizer:
		l.Humanizer += delta
	case CategoryBulk:
		l.Bulk += delta
	}
}
