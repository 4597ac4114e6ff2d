package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
)

func ann(text string, offset int) *dictionary.Annotation {
	return &dictionary.Annotation{Text: text, Offset: offset}
}

func linkedAnn(text string, offset int, link dictionary.LinkTarget) *dictionary.Annotation {
	return &dictionary.Annotation{Text: text, Offset: offset, Link: link}
}

func TestRenderUnlinkedSpans(t *testing.T) {
	got := Render("Cat in the hat", []*dictionary.Annotation{
		ann("Cat", 0),
		ann("hat", 11),
	})
	assert.Equal(t, "<span>Cat</span> in the <span>hat</span>", got)
}

func TestRenderLinkedAnchors(t *testing.T) {
	got := Render("Cat in the hat", []*dictionary.Annotation{
		linkedAnn("Cat", 0, dictionary.LinkToSense(7)),
		linkedAnn("in", 4, dictionary.LinkToArtist(3)),
		linkedAnn("hat", 11, dictionary.LinkToPlace(9)),
	})
	assert.Equal(t,
		`<a href="/senses/7/">Cat</a> <a href="/artists/3/">in</a> the <a href="/places/9/">hat</a>`,
		got)
}

func TestRenderOffsetsAgainstOriginalText(t *testing.T) {
	// Input order is descending; ascending offsets with the buffer delta
	// must still land every span on its original position.
	got := Render("one two three", []*dictionary.Annotation{
		ann("three", 8),
		ann("one", 0),
		ann("two", 4),
	})
	assert.Equal(t, "<span>one</span> <span>two</span> <span>three</span>", got)
}

func TestRenderEqualOffsetsAreDeterministic(t *testing.T) {
	// Equal offsets overlap, so the output content is unspecified, but the
	// stable tie-break makes it deterministic: the first input is spliced
	// first every time.
	input := []*dictionary.Annotation{
		linkedAnn("yo", 0, dictionary.LinkToSense(1)),
		ann("yo", 0),
	}
	first := Render("yo", input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render("yo", input))
	}
	assert.Contains(t, first, "<span>yo</span>")
}

func TestRenderNoAnnotations(t *testing.T) {
	assert.Equal(t, "plain text", Render("plain text", nil))
}

func TestRenderOutOfRangeSpanSkipped(t *testing.T) {
	got := Render("short", []*dictionary.Annotation{
		ann("short", 0),
		ann("beyond", 40),
	})
	assert.Equal(t, "<span>short</span>", got)
}

func TestExtractRhymesDeduplicates(t *testing.T) {
	a := &dictionary.Annotation{ID: 1, Text: "cat"}
	b := &dictionary.Annotation{ID: 2, Text: "hat"}
	rhymes := map[int64][]*dictionary.Annotation{
		1: {b},
		2: {a},
	}
	lookup := func(x *dictionary.Annotation) []*dictionary.Annotation { return rhymes[x.ID] }

	pairs := ExtractRhymes([]*dictionary.Annotation{a, b}, lookup)
	require.Len(t, pairs, 1)
	assert.Equal(t, b, pairs[0].Left)
	assert.Equal(t, a, pairs[0].Right)

	// One-directional storage still yields the pair.
	pairs = ExtractRhymes([]*dictionary.Annotation{a, b},
		func(x *dictionary.Annotation) []*dictionary.Annotation {
			if x.ID == 2 {
				return []*dictionary.Annotation{a}
			}
			return nil
		})
	assert.Len(t, pairs, 1)
}

func TestExtractRhymesEmpty(t *testing.T) {
	none := func(*dictionary.Annotation) []*dictionary.Annotation { return nil }
	assert.Empty(t, ExtractRhymes([]*dictionary.Annotation{ann("x", 0)}, none))
	assert.Empty(t, ExtractRhymes(nil, none))
}
