// Package dictionary defines the record shapes and validation invariants of
// the rhymebook lyrics-annotation dictionary: word senses, artists, places,
// songs, lyric examples, and in-text annotations.
package dictionary

import (
	"fmt"
	"strings"
	"time"

	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
)

// EntityKind identifies one of the ingestable entity types.
type EntityKind string

const (
	KindSense   EntityKind = "sense"
	KindArtist  EntityKind = "artist"
	KindPlace   EntityKind = "place"
	KindSong    EntityKind = "song"
	KindExample EntityKind = "example"
)

// PartOfSpeech is the fixed grammatical vocabulary a Sense may use.
type PartOfSpeech string

const (
	POSAdjectivalPhrase        PartOfSpeech = "adjectival_phrase"
	POSAdjective               PartOfSpeech = "adjective"
	POSAdverb                  PartOfSpeech = "adverb"
	POSAdverbialPhrase         PartOfSpeech = "adverbial_phrase"
	POSCombiningForm           PartOfSpeech = "combining_form"
	POSInterjection            PartOfSpeech = "interjection"
	POSNoun                    PartOfSpeech = "noun"
	POSPhrase                  PartOfSpeech = "phrase"
	POSPreposition             PartOfSpeech = "preposition"
	POSPrepositionalPhrase     PartOfSpeech = "prepositional_phrase"
	POSIntransitiveVerb        PartOfSpeech = "intransitive_verb"
	POSIntransitivePhrasalVerb PartOfSpeech = "intransitive_phrasal_verb"
	POSTransitiveVerb          PartOfSpeech = "transitive_verb"
	POSTransitivePhrasalVerb   PartOfSpeech = "transitive_phrasal_verb"
	POSVerb                    PartOfSpeech = "verb"
)

// partsOfSpeech is the closed set accepted by NewSense.
var partsOfSpeech = map[PartOfSpeech]bool{
	POSAdjectivalPhrase:        true,
	POSAdjective:               true,
	POSAdverb:                  true,
	POSAdverbialPhrase:         true,
	POSCombiningForm:           true,
	POSInterjection:            true,
	POSNoun:                    true,
	POSPhrase:                  true,
	POSPreposition:             true,
	POSPrepositionalPhrase:     true,
	POSIntransitiveVerb:        true,
	POSIntransitivePhrasalVerb: true,
	POSTransitiveVerb:          true,
	POSTransitivePhrasalVerb:   true,
	POSVerb:                    true,
}

// ValidPartOfSpeech reports whether pos belongs to the fixed vocabulary.
func ValidPartOfSpeech(pos PartOfSpeech) bool {
	return partsOfSpeech[pos]
}

// Sense is one defined meaning of a headword.
type Sense struct {
	ID           int64        `json:"id,omitempty"`
	Created      time.Time    `json:"created"`
	Headword     string       `json:"headword"`
	HeadwordSlug string       `json:"headword_slug"`
	Published    bool         `json:"published"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`
	Definition   string       `json:"definition"`
	Etymology    string       `json:"etymology,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Owner        string       `json:"owner"`
}

// NewSense validates and builds a Sense. Headword, part of speech, and
// definition are mandatory; a Sense with an empty definition is rejected
// here rather than silently stored.
func NewSense(owner, headword string, pos PartOfSpeech, definition string) (*Sense, error) {
	if owner == "" {
		return nil, rberrors.Validationf("sense", "owner", "owner is required")
	}
	if strings.TrimSpace(headword) == "" {
		return nil, rberrors.Validationf("sense", "headword", "headword is required")
	}
	if !ValidPartOfSpeech(pos) {
		return nil, rberrors.Validationf("sense", "part_of_speech", "unknown part of speech %q", pos)
	}
	if strings.TrimSpace(definition) == "" {
		return nil, rberrors.Validationf("sense", "definition", "definition is required")
	}
	return &Sense{
		Headword:     headword,
		HeadwordSlug: Slugify(headword),
		PartOfSpeech: pos,
		Definition:   definition,
		Owner:        owner,
	}, nil
}

// Artist is a performer or group.
type Artist struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	// Origin is the id of the artist's origin Place, or zero when unknown.
	Origin int64  `json:"origin,omitempty"`
	Owner  string `json:"owner"`
}

// NewArtist validates and builds an Artist.
func NewArtist(owner, name string) (*Artist, error) {
	if owner == "" {
		return nil, rberrors.Validationf("artist", "owner", "owner is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, rberrors.Validationf("artist", "name", "name is required")
	}
	return &Artist{
		Name:  name,
		Slug:  Slugify(name),
		Owner: owner,
	}, nil
}

// Place is a geographic location, e.g. "Queens, New York, USA".
type Place struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	// Name is the short form: the part of FullName before the first comma.
	Name      string   `json:"name"`
	FullName  string   `json:"full_name"`
	Slug      string   `json:"slug"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Owner     string   `json:"owner"`
}

// NewPlace validates and builds a Place from its comma-delimited full name.
func NewPlace(owner, fullName string) (*Place, error) {
	if owner == "" {
		return nil, rberrors.Validationf("place", "owner", "owner is required")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, rberrors.Validationf("place", "full_name", "full_name is required")
	}
	return &Place{
		Name:     ShortPlaceName(fullName),
		FullName: fullName,
		Slug:     Slugify(fullName),
		Owner:    owner,
	}, nil
}

// ShortPlaceName returns the substring of a full place name before the first
// comma, e.g. "Queens, New York, USA" -> "Queens".
func ShortPlaceName(fullName string) string {
	if i := strings.Index(fullName, ","); i >= 0 {
		return strings.TrimSpace(fullName[:i])
	}
	return strings.TrimSpace(fullName)
}

// Song is a released track that examples are excerpted from.
type Song struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Album   string    `json:"album"`
	// ReleaseDate is the full calendar date; ReleaseDateString preserves the
	// original, possibly partial, source text (year or year-month).
	ReleaseDate         time.Time `json:"release_date"`
	ReleaseDateString   string    `json:"release_date_string"`
	ReleaseDateVerified bool      `json:"release_date_verified"`
	Lyrics              string    `json:"lyrics,omitempty"`
	Owner               string    `json:"owner"`
}

// NewSong validates and builds a Song. The release date string may be
// partial; it is completed with CompleteDate before parsing.
func NewSong(owner, title, album, releaseDate string) (*Song, error) {
	if owner == "" {
		return nil, rberrors.Validationf("song", "owner", "owner is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, rberrors.Validationf("song", "title", "title is required")
	}
	if strings.TrimSpace(album) == "" {
		return nil, rberrors.Validationf("song", "album", "album is required")
	}
	parsed, err := ParseReleaseDate(releaseDate)
	if err != nil {
		return nil, rberrors.Validationf("song", "release_date", "release date %q does not parse: %v", releaseDate, err)
	}
	return &Song{
		Slug:              Slugify(title),
		Title:             title,
		Album:             album,
		ReleaseDate:       parsed,
		ReleaseDateString: releaseDate,
		Owner:             owner,
	}, nil
}

// Example is a lyric excerpt from one song.
type Example struct {
	ID       int64     `json:"id,omitempty"`
	Created  time.Time `json:"created"`
	Slug     string    `json:"slug"`
	FromSong int64     `json:"from_song"`
	Text     string    `json:"text"`
	Owner    string    `json:"owner"`
}

// NewExample validates and builds an Example belonging to the given song.
func NewExample(owner, text string, fromSong int64) (*Example, error) {
	if owner == "" {
		return nil, rberrors.Validationf("example", "owner", "owner is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, rberrors.Validationf("example", "text", "text is required")
	}
	if fromSong == 0 {
		return nil, rberrors.Validationf("example", "from_song", "example requires a song")
	}
	return &Example{
		Slug:     Slugify(text),
		FromSong: fromSong,
		Text:     text,
		Owner:    owner,
	}, nil
}

// LinkKind identifies which entity type an annotation links to.
type LinkKind string

const (
	LinkNone   LinkKind = ""
	LinkSense  LinkKind = "sense"
	LinkArtist LinkKind = "artist"
	LinkPlace  LinkKind = "place"
)

// LinkTarget is the tagged "link target" choice on an Annotation: at most
// one of sense, artist, or place. The zero value means unlinked.
type LinkTarget struct {
	Kind LinkKind `json:"kind,omitempty"`
	ID   int64    `json:"id,omitempty"`
}

// LinkToSense returns a LinkTarget pointing at the given sense.
func LinkToSense(id int64) LinkTarget { return LinkTarget{Kind: LinkSense, ID: id} }

// LinkToArtist returns a LinkTarget pointing at the given artist.
func LinkToArtist(id int64) LinkTarget { return LinkTarget{Kind: LinkArtist, ID: id} }

// LinkToPlace returns a LinkTarget pointing at the given place.
func LinkToPlace(id int64) LinkTarget { return LinkTarget{Kind: LinkPlace, ID: id} }

// IsZero reports whether the annotation is unlinked.
func (t LinkTarget) IsZero() bool {
	return t.Kind == LinkNone
}

// Path returns the canonical location of the linked entity, or "" when
// unlinked.
func (t LinkTarget) Path() string {
	switch t.Kind {
	case LinkSense:
		return fmt.Sprintf("/senses/%d/", t.ID)
	case LinkArtist:
		return fmt.Sprintf("/artists/%d/", t.ID)
	case LinkPlace:
		return fmt.Sprintf("/places/%d/", t.ID)
	default:
		return ""
	}
}

// Annotation marks a span of an Example's text and optionally links it to a
// sense, artist, or place.
type Annotation struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	// Text is the literal substring being annotated.
	Text string `json:"text"`
	Slug string `json:"slug"`
	// Offset is the character position of the span's start within the
	// owning Example's original text.
	Offset  int        `json:"offset"`
	Example int64      `json:"example"`
	Link    LinkTarget `json:"link,omitempty"`
	Owner   string     `json:"owner"`
}

// NewAnnotation validates and builds an Annotation against its example.
// The offset must address a position inside the example's text.
func NewAnnotation(owner, text string, offset int, example *Example) (*Annotation, error) {
	if owner == "" {
		return nil, rberrors.Validationf("annotation", "owner", "owner is required")
	}
	if text == "" {
		return nil, rberrors.Validationf("annotation", "text", "text is required")
	}
	if example == nil || example.ID == 0 {
		return nil, rberrors.Validationf("annotation", "example", "annotation requires a persisted example")
	}
	if offset < 0 || offset >= len(example.Text) {
		return nil, rberrors.Validationf("annotation", "offset", "offset %d outside example text of length %d", offset, len(example.Text))
	}
	return &Annotation{
		Text:    text,
		Slug:    Slugify(text),
		Offset:  offset,
		Example: example.ID,
		Owner:   owner,
	}, nil
}

// Domain is a topical grouping of senses, e.g. "money" or "violence".
type Domain struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Owner   string    `json:"owner"`
}

// NewDomain validates and builds a Domain. Name is unique per owner, which
// the store enforces through its natural key.
func NewDomain(owner, name string) (*Domain, error) {
	if owner == "" {
		return nil, rberrors.Validationf("domain", "owner", "owner is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, rberrors.Validationf("domain", "name", "name is required")
	}
	return &Domain{Name: name, Slug: Slugify(name), Owner: owner}, nil
}

// SemanticClass is a lexical-semantic grouping of senses.
type SemanticClass struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Owner   string    `json:"owner"`
}

// NewSemanticClass validates and builds a SemanticClass.
func NewSemanticClass(owner, name string) (*SemanticClass, error) {
	if owner == "" {
		return nil, rberrors.Validationf("semantic_class", "owner", "owner is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, rberrors.Validationf("semantic_class", "name", "name is required")
	}
	return &SemanticClass{Name: name, Slug: Slugify(name), Owner: owner}, nil
}

// Dictionary is a named sub-dictionary grouping senses.
type Dictionary struct {
	ID      int64     `json:"id,omitempty"`
	Created time.Time `json:"created"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Owner   string    `json:"owner"`
}

// NewDictionary validates and builds a Dictionary.
func NewDictionary(owner, name string) (*Dictionary, error) {
	if owner == "" {
		return nil, rberrors.Validationf("dictionary", "owner", "owner is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, rberrors.Validationf("dictionary", "name", "name is required")
	}
	return &Dictionary{Name: name, Slug: Slugify(name), Owner: owner}, nil
}
