package sources

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_RedFlags(t *testing.T) {
	f := NewFilter("2020", nil)

	tests := []struct {
		description string
		flagged     bool
	}{
		{"Must have active SECRET clearance", true},
		{"must hold a ts/sci", true},
		{"Applicants must be a u.s. citizen", true},
		{"We work with the department of defense", true},
		{"VEVRAA federal contractor", true},
		{"Friendly startup, visa sponsorship available", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.flagged, f.HasRedFlag(tt.description), tt.description)
	}
}

func TestFilter_Recency(t *testing.T) {
	f := NewFilter("2020", nil)

	assert.False(t, f.IsRecent("2019-05-01"))
	assert.True(t, f.IsRecent("2020-05-01"))
	assert.True(t, f.IsRecent("Mon May 04 14:00:00 UTC 2020"))
	assert.False(t, f.IsRecent(""))
}

func TestFilter_Apply(t *testing.T) {
	f := NewFilter("2020", nil)
	in := []Listing{
		{Title: "keep", Description: "Go backend", DatePosted: "2020-05-01"},
		{Title: "flagged", Description: "Must have active SECRET clearance", DatePosted: "2020-05-01"},
		{Title: "stale", Description: "Go backend", DatePosted: "2019-05-01"},
		{Title: "no date", Description: "Go backend"},
	}

	out := f.Apply(in)

	assert.Len(t, out, 1)
	assert.Equal(t, "keep", out[0].Title)
}

func TestNewFilter_Defaults(t *testing.T) {
	f := NewFilter("", nil)

	assert.Equal(t, strconv.Itoa(time.Now().Year()), f.TargetYear())
	assert.True(t, f.HasRedFlag("DHS contract"))
}

func TestNewFilter_CustomList(t *testing.T) {
	f := NewFilter("2021", []string{"  unpaid ", ""})

	assert.True(t, f.HasRedFlag("This is an UNPAID internship"))
	assert.False(t, f.HasRedFlag("SECRET clearance"))
}

func TestNewFilter_BlankListFallsBackToDefaults(t *testing.T) {
	f := NewFilter("2021", []string{"", " "})

	assert.True(t, f.HasRedFlag("Must have active SECRET clearance"))
	assert.False(t, f.Allow(Listing{Description: "DoD SECRET", DatePosted: "2021-01-01"}))
}
