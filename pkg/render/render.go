// Package render turns an example's text plus its offset annotations into
// marked-up HTML, and extracts rhyme pairs from annotation relations.
package render

import (
	"fmt"
	"sort"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
)

// Render splices annotation markup into text. Each annotation's Offset is
// a position in the pristine original text; a running length delta keeps
// sequential left-to-right splicing correct as markup grows the string.
//
// Annotations are processed in ascending offset order; equal offsets keep
// their input order. Spans are assumed non-overlapping — overlapping spans
// produce unspecified output. Annotations whose span does not lie inside
// the text are skipped.
func Render(text string, annotations []*dictionary.Annotation) string {
	ordered := make([]*dictionary.Annotation, len(annotations))
	copy(ordered, annotations)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset < ordered[j].Offset
	})

	rendered := text
	buffer := 0
	for _, a := range ordered {
		start := buffer + a.Offset
		end := start + len(a.Text)
		if start < 0 || end > len(rendered) {
			continue
		}
		markup := markupFor(a)
		rendered = rendered[:start] + markup + rendered[end:]
		buffer += len(markup) - len(a.Text)
	}
	return rendered
}

func markupFor(a *dictionary.Annotation) string {
	if a.Link.IsZero() {
		return fmt.Sprintf("<span>%s</span>", a.Text)
	}
	return fmt.Sprintf("<a href=%q>%s</a>", a.Link.Path(), a.Text)
}
