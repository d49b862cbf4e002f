package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattjoyce/fecoding/internal/editor"
)

func TestFoldRegions(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		text     string
		want     []editor.Region
	}{
		{
			name:     "in order",
			segments: []string{"foo", "bar"},
			text:     "xxfooyyybarzz",
			want:     []editor.Region{{A: 2, B: 5}, {A: 8, B: 11}},
		},
		{
			name:     "missing segment is skipped",
			segments: []string{"foo", "nope", "bar"},
			text:     "xxfooyyybarzz",
			want:     []editor.Region{{A: 2, B: 5}, {A: 8, B: 11}},
		},
		{
			name:     "repeated text matches successive occurrences",
			segments: []string{"{}", "{}"},
			text:     "a{}b{}c{}",
			want:     []editor.Region{{A: 1, B: 3}, {A: 4, B: 6}},
		},
		{
			name:     "earlier text is not searched again",
			segments: []string{"bar", "foo"},
			text:     "foo bar",
			want:     []editor.Region{{A: 4, B: 7}},
		},
		{
			name:     "rune offsets",
			segments: []string{"ü{}", "✓"},
			text:     "日本ü{} x ✓",
			want:     []editor.Region{{A: 2, B: 5}, {A: 8, B: 9}},
		},
		{
			name:     "empty segments",
			segments: []string{"", "a"},
			text:     "ba",
			want:     []editor.Region{{A: 1, B: 2}},
		},
		{
			name:     "nothing folded",
			segments: nil,
			text:     "abc",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldRegions(tt.segments, tt.text))
		})
	}
}
