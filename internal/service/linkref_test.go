package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLinkIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"summarize #2", 2, true},
		{"Summarize link 3 please", 3, true},
		{"more details about the second one", 2, true},
		{"explain the 4th link", 4, true},
		{"what does the first link say?", 1, true},
		{"#5", 5, true},
		{"link 0", 0, false},
		{"which one is cheaper?", 0, false},
		{"how do vaccines work", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := detectLinkIndex(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestDetectTwoLinks(t *testing.T) {
	tests := []struct {
		in   string
		a, b int
		ok   bool
	}{
		{"compare 1 and 3", 1, 3, true},
		{"compare #2 vs #4", 2, 4, true},
		{"link 1 vs link 3", 1, 3, true},
		{"first vs third", 1, 3, true},
		{"difference between 1st and 2nd", 1, 2, true},
		{"2 versus 5", 2, 5, true},
		{"compare 0 and 1", 0, 0, false},
		{"summarize #2", 0, 0, false},
		{"tell me more", 0, 0, false},
	}
	for _, tt := range tests {
		a, b, ok := detectTwoLinks(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.a, a, tt.in)
			assert.Equal(t, tt.b, b, tt.in)
		}
	}
}
