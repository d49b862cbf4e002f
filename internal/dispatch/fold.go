package dispatch

import (
	"strings"
	"unicode/utf8"

	"github.com/mattjoyce/fecoding/internal/editor"
)

// FoldRegions locates previously folded text in text. Each segment is matched
// at its first occurrence at or after the end of the previous match. Segments
// that are not found are skipped and do not advance the search. Offsets are in
// runes.
func FoldRegions(segments []string, text string) []editor.Region {
	var regions []editor.Region
	bytePos, runePos := 0, 0

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		i := strings.Index(text[bytePos:], seg)
		if i < 0 {
			continue
		}
		start := runePos + utf8.RuneCountInString(text[bytePos:bytePos+i])
		end := start + utf8.RuneCountInString(seg)
		regions = append(regions, editor.Region{A: start, B: end})

		bytePos += i + len(seg)
		runePos = end
	}
	return regions
}

// refold clears all folds and folds the segments again at their new offsets.
func refold(ed editor.Editor, segments []string) {
	if len(segments) == 0 {
		return
	}
	whole := editor.Whole(ed)
	ed.Unfold(whole)
	for _, r := range FoldRegions(segments, ed.Text(whole)) {
		ed.Fold(r)
	}
}
