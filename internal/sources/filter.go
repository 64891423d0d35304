package sources

import (
	"strconv"
	"strings"
	"time"
)

// DefaultRedFlags excludes listings restricted by clearance, government
// employment or citizenship.
var DefaultRedFlags = []string{
	"TS/SCI", "clearance",
	"DoD SECRET", "SECRET", "Federal Government",
	"Department of Defense", "federal contractor",
	"US Citizen", "U.S. citizen", "Government",
	"DHS", "VEVRAA",
}

type Filter struct {
	redFlags   []string
	targetYear string
}

// NewFilter builds a filter for targetYear. An empty year means the current
// one and a list with no usable terms means DefaultRedFlags.
func NewFilter(targetYear string, redFlags []string) *Filter {
	if targetYear == "" {
		targetYear = strconv.Itoa(time.Now().Year())
	}
	lowered := lowerFlags(redFlags)
	if len(lowered) == 0 {
		lowered = lowerFlags(DefaultRedFlags)
	}
	return &Filter{redFlags: lowered, targetYear: targetYear}
}

func lowerFlags(flags []string) []string {
	lowered := make([]string, 0, len(flags))
	for _, flag := range flags {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(flag))
	}
	return lowered
}

func (f *Filter) TargetYear() string {
	return f.targetYear
}

func (f *Filter) HasRedFlag(description string) bool {
	d := strings.ToLower(description)
	for _, flag := range f.redFlags {
		if strings.Contains(d, flag) {
			return true
		}
	}
	return false
}

// IsRecent is a substring test on purpose: sources disagree on date formats.
func (f *Filter) IsRecent(datePosted string) bool {
	return datePosted != "" && strings.Contains(datePosted, f.targetYear)
}

func (f *Filter) Allow(l Listing) bool {
	return !f.HasRedFlag(l.Description) && f.IsRecent(l.DatePosted)
}

func (f *Filter) Apply(listings []Listing) []Listing {
	kept := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if f.Allow(l) {
			kept = append(kept, l)
		}
	}
	return kept
}
