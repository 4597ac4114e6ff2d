// Package store provides the persistence gateway for dictionary entities:
// get-or-create by natural key, idempotent relation membership, and listing
// with the dictionary's deterministic default orderings.
//
// Two implementations exist: MemoryStore (tests, dry runs) and
// PostgresStore (pgx). Get-or-create is atomic in both: concurrent calls
// with identical natural keys yield one record.
package store

import (
	"context"
	"fmt"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
)

// Ref identifies a persisted entity by kind and id. Relations are edges
// between refs.
type Ref struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

// Ref kinds. These extend dictionary.EntityKind with the auxiliary types
// that participate in relations but are not ingestable.
const (
	RefSense         = string(dictionary.KindSense)
	RefArtist        = string(dictionary.KindArtist)
	RefPlace         = string(dictionary.KindPlace)
	RefSong          = string(dictionary.KindSong)
	RefExample       = string(dictionary.KindExample)
	RefAnnotation    = "annotation"
	RefDomain        = "domain"
	RefSemanticClass = "semantic_class"
	RefDictionary    = "dictionary"
)

// SenseRef builds a Ref for a persisted sense.
func SenseRef(id int64) Ref { return Ref{Kind: RefSense, ID: id} }

// ArtistRef builds a Ref for a persisted artist.
func ArtistRef(id int64) Ref { return Ref{Kind: RefArtist, ID: id} }

// PlaceRef builds a Ref for a persisted place.
func PlaceRef(id int64) Ref { return Ref{Kind: RefPlace, ID: id} }

// SongRef builds a Ref for a persisted song.
func SongRef(id int64) Ref { return Ref{Kind: RefSong, ID: id} }

// ExampleRef builds a Ref for a persisted example.
func ExampleRef(id int64) Ref { return Ref{Kind: RefExample, ID: id} }

// AnnotationRef builds a Ref for a persisted annotation.
func AnnotationRef(id int64) Ref { return Ref{Kind: RefAnnotation, ID: id} }

func (r Ref) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// Relation names a many-to-many relation on an entity.
type Relation string

const (
	// Sense relations.
	RelDerivatives Relation = "derivatives"
	RelDerivesFrom Relation = "derives_from"
	RelSynonyms    Relation = "synonyms"
	RelAntonyms    Relation = "antonyms"
	RelHypernyms   Relation = "hypernyms"
	RelHyponyms    Relation = "hyponyms"
	RelMeronyms    Relation = "meronyms"
	RelHolonyms    Relation = "holonyms"
	RelDomains     Relation = "domains"
	RelSemClasses  Relation = "semantic_classes"
	RelDicts       Relation = "dictionaries"

	// Artist relations.
	RelAlsoKnownAs Relation = "also_known_as"
	RelMembers     Relation = "members"
	RelMemberOf    Relation = "member_of"

	// Place relations.
	RelContains Relation = "contains"
	RelWithin   Relation = "within"

	// Song and Example relations.
	RelPrimaryArtists  Relation = "primary_artists"
	RelFeaturedArtists Relation = "featured_artists"

	// Annotation relations.
	RelRhymes Relation = "rhymes"

	// Taxonomy hierarchy (Domain, SemanticClass).
	RelBroader  Relation = "broader"
	RelNarrower Relation = "narrower"

	// Reverse side of RelDomains / RelSemClasses / RelDicts.
	RelSenses Relation = "senses"
)

// symmetricRelations are mirrored on both sides: adding a->b implies b->a
// under the same name.
var symmetricRelations = map[Relation]bool{
	RelSynonyms:    true,
	RelAntonyms:    true,
	RelAlsoKnownAs: true,
	RelRhymes:      true,
}

// inverseRelations maps each asymmetric relation to the name it is tracked
// under on the member's side. Adding a-"derivatives"->b records
// b-"derives_from"->a as well.
var inverseRelations = map[Relation]Relation{
	RelDerivatives: RelDerivesFrom,
	RelDerivesFrom: RelDerivatives,
	RelHypernyms:   RelHyponyms,
	RelHyponyms:    RelHypernyms,
	RelMeronyms:    RelHolonyms,
	RelHolonyms:    RelMeronyms,
	RelMembers:     RelMemberOf,
	RelMemberOf:    RelMembers,
	RelContains:    RelWithin,
	RelWithin:      RelContains,
	RelBroader:     RelNarrower,
	RelNarrower:    RelBroader,
	RelDomains:     RelSenses,
	RelSemClasses:  RelSenses,
	RelDicts:       RelSenses,
}

// knownRelation reports whether rel is part of the relation vocabulary.
func knownRelation(rel Relation) bool {
	if symmetricRelations[rel] {
		return true
	}
	if _, ok := inverseRelations[rel]; ok {
		return true
	}
	switch rel {
	case RelPrimaryArtists, RelFeaturedArtists, RelSenses:
		return true
	}
	return false
}

// Options tunes natural-key scoping. The source material is inconsistent on
// whether Song/Example uniqueness is per owner or global, so it is a policy
// knob rather than a hard-coded choice.
type Options struct {
	// ScopeSongsByOwner includes the owner in the Song and Example natural
	// keys when true (the default).
	ScopeSongsByOwner bool
}

// DefaultOptions returns the default natural-key scoping.
func DefaultOptions() Options {
	return Options{ScopeSongsByOwner: true}
}

// Store is the persistence gateway consumed by the ingestion pipeline and
// the render command. Every GetOrCreate is idempotent by the entity's
// natural key and reports whether a new record was created.
type Store interface {
	// Natural key: (headword, part_of_speech, definition, owner).
	GetOrCreateSense(ctx context.Context, s *dictionary.Sense) (*dictionary.Sense, bool, error)

	// Natural key: name, plus origin when the candidate carries one.
	GetOrCreateArtist(ctx context.Context, a *dictionary.Artist) (*dictionary.Artist, bool, error)

	// Natural key: full_name.
	GetOrCreatePlace(ctx context.Context, p *dictionary.Place) (*dictionary.Place, bool, error)

	// Natural key: (title, album, release_date), owner-scoped per Options.
	GetOrCreateSong(ctx context.Context, s *dictionary.Song) (*dictionary.Song, bool, error)

	// Natural key: (text, from_song), owner-scoped per Options.
	GetOrCreateExample(ctx context.Context, e *dictionary.Example) (*dictionary.Example, bool, error)

	// Natural key: (example, text, offset, owner).
	GetOrCreateAnnotation(ctx context.Context, a *dictionary.Annotation) (*dictionary.Annotation, bool, error)

	// Natural key: (name, owner) for each taxonomy type.
	GetOrCreateDomain(ctx context.Context, d *dictionary.Domain) (*dictionary.Domain, bool, error)
	GetOrCreateSemanticClass(ctx context.Context, c *dictionary.SemanticClass) (*dictionary.SemanticClass, bool, error)
	GetOrCreateDictionary(ctx context.Context, d *dictionary.Dictionary) (*dictionary.Dictionary, bool, error)

	GetSong(ctx context.Context, id int64) (*dictionary.Song, error)
	GetExample(ctx context.Context, id int64) (*dictionary.Example, error)

	// Listings use the dictionary's default orderings: senses by (headword,
	// created); artists and places by (name, created); songs by (title,
	// album); examples and annotations by text.
	ListSenses(ctx context.Context, owner string) ([]*dictionary.Sense, error)
	ListArtists(ctx context.Context, owner string) ([]*dictionary.Artist, error)
	ListPlaces(ctx context.Context, owner string) ([]*dictionary.Place, error)
	ListSongs(ctx context.Context, owner string) ([]*dictionary.Song, error)
	ListExamples(ctx context.Context, owner string) ([]*dictionary.Example, error)
	AnnotationsForExample(ctx context.Context, exampleID int64) ([]*dictionary.Annotation, error)

	// AddRelation appends members to a many-to-many relation, idempotent
	// against duplicates. Symmetric relations are mirrored on both sides;
	// asymmetric relations are tracked in reverse under their inverse name.
	AddRelation(ctx context.Context, from Ref, rel Relation, members ...Ref) error

	// RelationMembers returns the members of a relation in insertion order.
	RelationMembers(ctx context.Context, from Ref, rel Relation) ([]Ref, error)
}
