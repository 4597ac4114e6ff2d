package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
)

const owner = "ejlarsen"

func TestNewSense(t *testing.T) {
	s, err := NewSense(owner, "proper", POSAdverb, "appropriately, to a suitable degree")
	require.NoError(t, err)
	assert.Equal(t, "proper", s.Headword)
	assert.Equal(t, "proper", s.HeadwordSlug)
	assert.False(t, s.Published)
	assert.Equal(t, owner, s.Owner)
}

func TestNewSenseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name       string
		owner      string
		headword   string
		pos        PartOfSpeech
		definition string
	}{
		{"empty definition", owner, "proper", POSAdverb, ""},
		{"whitespace definition", owner, "proper", POSAdverb, "   "},
		{"empty headword", owner, "", POSAdverb, "a definition"},
		{"unknown part of speech", owner, "proper", "gerund", "a definition"},
		{"missing owner", "", "proper", POSAdverb, "a definition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSense(tt.owner, tt.headword, tt.pos, tt.definition)
			require.Error(t, err)
			assert.True(t, rberrors.IsValidation(err))
		})
	}
}

func TestNewArtist(t *testing.T) {
	a, err := NewArtist(owner, "Kurtis Blow")
	require.NoError(t, err)
	assert.Equal(t, "kurtis-blow", a.Slug)
	assert.Zero(t, a.Origin)

	_, err = NewArtist(owner, " ")
	assert.True(t, rberrors.IsValidation(err))
}

func TestNewPlaceDerivesShortName(t *testing.T) {
	p, err := NewPlace(owner, "New York City, New York, USA")
	require.NoError(t, err)
	assert.Equal(t, "New York City", p.Name)
	assert.Equal(t, "new-york-city-new-york-usa", p.Slug)
	assert.Nil(t, p.Latitude)

	single, err := NewPlace(owner, "Compton")
	require.NoError(t, err)
	assert.Equal(t, "Compton", single.Name)

	_, err = NewPlace(owner, "")
	assert.True(t, rberrors.IsValidation(err))
}

func TestNewSong(t *testing.T) {
	s, err := NewSong(owner, "Lookin At The Front Door", "Breaking Atoms", "1991-07-23")
	require.NoError(t, err)
	assert.Equal(t, "1991-07-23", s.ReleaseDateString)
	assert.Equal(t, 1991, s.ReleaseDate.Year())
	assert.False(t, s.ReleaseDateVerified)

	partial, err := NewSong(owner, "The Breaks", "Kurtis Blow", "1980")
	require.NoError(t, err)
	assert.Equal(t, "1980", partial.ReleaseDateString)
	assert.Equal(t, "1980-12-31", partial.ReleaseDate.Format("2006-01-02"))
}

func TestNewSongRejectsBadInput(t *testing.T) {
	_, err := NewSong(owner, "", "Breaking Atoms", "1991")
	assert.True(t, rberrors.IsValidation(err))

	_, err = NewSong(owner, "Lookin At The Front Door", "", "1991")
	assert.True(t, rberrors.IsValidation(err))

	_, err = NewSong(owner, "Lookin At The Front Door", "Breaking Atoms", "91-7-23")
	require.Error(t, err)
	assert.True(t, rberrors.IsValidation(err))
}

func TestNewExample(t *testing.T) {
	e, err := NewExample(owner, "Cat in the hat", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.FromSong)
	assert.Equal(t, "cat-in-the-hat", e.Slug)

	_, err = NewExample(owner, "", 7)
	assert.True(t, rberrors.IsValidation(err))

	_, err = NewExample(owner, "Cat in the hat", 0)
	assert.True(t, rberrors.IsValidation(err))
}

func TestNewAnnotationOffsetBounds(t *testing.T) {
	example := &Example{ID: 3, Text: "Cat in the hat"}

	a, err := NewAnnotation(owner, "hat", 11, example)
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.Example)
	assert.True(t, a.Link.IsZero())

	_, err = NewAnnotation(owner, "Cat", -1, example)
	assert.True(t, rberrors.IsValidation(err))

	// Offset must land inside the text, not at its end.
	_, err = NewAnnotation(owner, "hat", len(example.Text), example)
	assert.True(t, rberrors.IsValidation(err))

	_, err = NewAnnotation(owner, "hat", 2, &Example{Text: "Cat in the hat"})
	assert.True(t, rberrors.IsValidation(err))
}

func TestLinkTargetPath(t *testing.T) {
	assert.Equal(t, "/senses/12/", LinkToSense(12).Path())
	assert.Equal(t, "/artists/4/", LinkToArtist(4).Path())
	assert.Equal(t, "/places/9/", LinkToPlace(9).Path())
	assert.Equal(t, "", LinkTarget{}.Path())
}

func TestValidPartOfSpeech(t *testing.T) {
	assert.True(t, ValidPartOfSpeech(POSNoun))
	assert.True(t, ValidPartOfSpeech(POSTransitivePhrasalVerb))
	assert.False(t, ValidPartOfSpeech("article"))
}
