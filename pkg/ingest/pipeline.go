package ingest

import (
	"context"

	"github.com/google/uuid"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary/store"
	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

// Result describes the persisted top-level entity of one ingestion run.
// Exactly one of the entity pointers is set, matching Kind.
type Result struct {
	Kind    dictionary.EntityKind `json:"kind"`
	Created bool                  `json:"created"`
	Ref     store.Ref             `json:"ref"`

	Sense   *dictionary.Sense   `json:"sense,omitempty"`
	Artist  *dictionary.Artist  `json:"artist,omitempty"`
	Place   *dictionary.Place   `json:"place,omitempty"`
	Song    *dictionary.Song    `json:"song,omitempty"`
	Example *dictionary.Example `json:"example,omitempty"`
}

// Pipeline ingests raw records into the dictionary store. Each Ingest call
// is synchronous: one fetch, one in-memory transform, a bounded number of
// store round trips. The pipeline holds no mutable state of its own, so
// concurrent Ingest calls are safe as long as the store's get-or-create is
// atomic.
type Pipeline struct {
	store   store.Store
	fetcher Fetcher
	logger  logging.Logger
	metrics *Metrics
}

// New creates a Pipeline. metrics may be nil to run unmetered.
func New(s store.Store, fetcher Fetcher, logger logging.Logger, metrics *Metrics) *Pipeline {
	return &Pipeline{
		store:   s,
		fetcher: fetcher,
		logger:  logger.With(logging.F("component", "ingest_pipeline")),
		metrics: metrics,
	}
}

// Ingest fetches one raw record of the given kind and persists it for
// owner.
//
// Soft failures (unreachable source, unknown kind) are logged and return
// (nil, nil): the surrounding command layer reports them, nothing is
// persisted, and nothing propagates. Validation failures — a nested artist
// missing its name, an unparseable release date, an empty definition — are
// hard: they propagate and abort the whole call. Because sub-entities are
// resolved before their parent is created, an aborted call leaves no
// orphaned parent record.
func (p *Pipeline) Ingest(ctx context.Context, kind dictionary.EntityKind, owner string) (*Result, error) {
	ctx = context.WithValue(ctx, logging.RunIDKey, uuid.NewString())
	log := p.logger.WithContext(ctx).With(logging.F("kind", string(kind)), logging.F("owner", owner))

	if !KnownKind(kind) {
		log.Error("failed to persist " + string(kind))
		p.metrics.recordUnknownKind()
		return nil, nil
	}

	raw, err := p.fetcher.Fetch(ctx, kind)
	if err != nil {
		log.Warn("fetch failed, aborting ingestion", logging.Err(err))
		p.metrics.recordFetchFailure(string(kind))
		return nil, nil
	}

	projected, _ := Project(kind, raw)
	InjectOwner(projected, owner)

	result, err := p.persist(ctx, kind, projected)
	if err != nil {
		log.Error("ingestion failed", logging.Err(err))
		return nil, err
	}

	log.Info("ingested record",
		logging.F("ref", result.Ref.String()),
		logging.F("was_created", result.Created))
	p.metrics.recordIngested(string(kind), result.Created)
	return result, nil
}

func (p *Pipeline) persist(ctx context.Context, kind dictionary.EntityKind, record map[string]interface{}) (*Result, error) {
	switch kind {
	case dictionary.KindSense:
		return p.persistSense(ctx, record)
	case dictionary.KindArtist:
		return p.persistArtist(ctx, record)
	case dictionary.KindPlace:
		return p.persistPlace(ctx, record)
	case dictionary.KindSong:
		return p.persistSong(ctx, record)
	case dictionary.KindExample:
		return p.persistExample(ctx, record)
	default:
		// Unreachable: Ingest filters unknown kinds first.
		return nil, rberrors.ErrUnknownKind
	}
}

func (p *Pipeline) persistSense(ctx context.Context, record map[string]interface{}) (*Result, error) {
	sense, err := dictionary.NewSense(
		ownerOf(record),
		stringField(record, "headword"),
		dictionary.PartOfSpeech(stringField(record, "part_of_speech")),
		stringField(record, "definition"),
	)
	if err != nil {
		return nil, err
	}
	sense.Etymology = stringField(record, "etymology")
	sense.Notes = stringField(record, "notes")

	persisted, created, err := p.store.GetOrCreateSense(ctx, sense)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:    dictionary.KindSense,
		Created: created,
		Ref:     store.SenseRef(persisted.ID),
		Sense:   persisted,
	}, nil
}

func (p *Pipeline) persistArtist(ctx context.Context, record map[string]interface{}) (*Result, error) {
	persisted, created, err := p.resolveArtist(ctx, record)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:    dictionary.KindArtist,
		Created: created,
		Ref:     store.ArtistRef(persisted.ID),
		Artist:  persisted,
	}, nil
}

func (p *Pipeline) persistPlace(ctx context.Context, record map[string]interface{}) (*Result, error) {
	persisted, created, err := p.resolvePlace(ctx, record)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:    dictionary.KindPlace,
		Created: created,
		Ref:     store.PlaceRef(persisted.ID),
		Place:   persisted,
	}, nil
}

func (p *Pipeline) persistSong(ctx context.Context, record map[string]interface{}) (*Result, error) {
	persisted, created, _, _, err := p.resolveSong(ctx, record)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:    dictionary.KindSong,
		Created: created,
		Ref:     store.SongRef(persisted.ID),
		Song:    persisted,
	}, nil
}

// persistExample pops the example-only fields, builds the embedded song
// through the song path, then creates the example and attaches the same
// resolved artist lists to it.
func (p *Pipeline) persistExample(ctx context.Context, record map[string]interface{}) (*Result, error) {
	text := stringField(record, "text")
	delete(record, "text")
	// Cross-reference annotations ride along in the raw record; they are
	// popped here so they do not pollute the song's field set.
	delete(record, "links")

	song, _, primary, featured, err := p.resolveSong(ctx, record)
	if err != nil {
		return nil, err
	}

	example, err := dictionary.NewExample(ownerOf(record), text, song.ID)
	if err != nil {
		return nil, err
	}
	persisted, created, err := p.store.GetOrCreateExample(ctx, example)
	if err != nil {
		return nil, err
	}

	exampleRef := store.ExampleRef(persisted.ID)
	if len(primary) > 0 {
		if err := p.store.AddRelation(ctx, exampleRef, store.RelPrimaryArtists, primary...); err != nil {
			return nil, err
		}
	}
	if len(featured) > 0 {
		if err := p.store.AddRelation(ctx, exampleRef, store.RelFeaturedArtists, featured...); err != nil {
			return nil, err
		}
	}

	return &Result{
		Kind:    dictionary.KindExample,
		Created: created,
		Ref:     exampleRef,
		Example: persisted,
	}, nil
}

// resolveSong resolves both artist lists to persisted artists, strips them
// from the record, creates the song, and wires the artist relations. The
// base song record never needs pre-known artist ids: relation-add is a
// separate step after creation.
func (p *Pipeline) resolveSong(ctx context.Context, record map[string]interface{}) (*dictionary.Song, bool, []store.Ref, []store.Ref, error) {
	primary, err := p.resolveArtistList(ctx, record, "primary_artists")
	if err != nil {
		return nil, false, nil, nil, err
	}
	featured, err := p.resolveArtistList(ctx, record, "featured_artists")
	if err != nil {
		return nil, false, nil, nil, err
	}
	delete(record, "primary_artists")
	delete(record, "featured_artists")

	dateString := stringField(record, "release_date_string")
	if dateString == "" {
		dateString = stringField(record, "release_date")
	}

	song, err := dictionary.NewSong(
		ownerOf(record),
		stringField(record, "title"),
		stringField(record, "album"),
		dateString,
	)
	if err != nil {
		return nil, false, nil, nil, err
	}

	persisted, created, err := p.store.GetOrCreateSong(ctx, song)
	if err != nil {
		return nil, false, nil, nil, err
	}

	songRef := store.SongRef(persisted.ID)
	if len(primary) > 0 {
		if err := p.store.AddRelation(ctx, songRef, store.RelPrimaryArtists, primary...); err != nil {
			return nil, false, nil, nil, err
		}
	}
	if len(featured) > 0 {
		if err := p.store.AddRelation(ctx, songRef, store.RelFeaturedArtists, featured...); err != nil {
			return nil, false, nil, nil, err
		}
	}
	return persisted, created, primary, featured, nil
}

// resolveArtistList resolves every artist-like object under key to a
// persisted artist, deduplicated by the artist natural key.
func (p *Pipeline) resolveArtistList(ctx context.Context, record map[string]interface{}, key string) ([]store.Ref, error) {
	raw, present := record[key]
	if !present {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, rberrors.Validationf("song", key, "expected a list of artist objects")
	}

	var refs []store.Ref
	seen := make(map[int64]bool)
	for _, item := range list {
		artistRecord, ok := item.(map[string]interface{})
		if !ok {
			return nil, rberrors.Validationf("artist", "", "artist entry must be an object")
		}
		persisted, _, err := p.resolveArtist(ctx, artistRecord)
		if err != nil {
			return nil, err
		}
		if seen[persisted.ID] {
			continue
		}
		seen[persisted.ID] = true
		refs = append(refs, store.ArtistRef(persisted.ID))
	}
	return refs, nil
}

// resolveArtist persists one artist-like record, resolving an embedded
// origin place first so the artist row can reference it.
func (p *Pipeline) resolveArtist(ctx context.Context, record map[string]interface{}) (*dictionary.Artist, bool, error) {
	// Thumbnail path from the source; not a modeled artist attribute.
	delete(record, "image")

	artist, err := dictionary.NewArtist(ownerOf(record), stringField(record, "name"))
	if err != nil {
		return nil, false, err
	}

	if originRaw, present := record["origin"]; present {
		origin, ok := originRaw.(map[string]interface{})
		if !ok {
			return nil, false, rberrors.Validationf("artist", "origin", "origin must be an object")
		}
		place, _, err := p.resolvePlace(ctx, origin)
		if err != nil {
			return nil, false, err
		}
		artist.Origin = place.ID
	}

	persisted, created, err := p.store.GetOrCreateArtist(ctx, artist)
	if err != nil {
		return nil, false, err
	}
	return persisted, created, nil
}

// resolvePlace persists one place-like record, keyed on full_name.
func (p *Pipeline) resolvePlace(ctx context.Context, record map[string]interface{}) (*dictionary.Place, bool, error) {
	place, err := dictionary.NewPlace(ownerOf(record), stringField(record, "full_name"))
	if err != nil {
		return nil, false, err
	}
	if lat, ok := floatField(record, "latitude"); ok {
		place.Latitude = &lat
	}
	if lng, ok := floatField(record, "longitude"); ok {
		place.Longitude = &lng
	}

	persisted, created, err := p.store.GetOrCreatePlace(ctx, place)
	if err != nil {
		return nil, false, err
	}
	return persisted, created, nil
}

// ownerOf reads the injected owning principal back off a record.
func ownerOf(record map[string]interface{}) string {
	return stringField(record, ownerKey)
}

func stringField(record map[string]interface{}, key string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return ""
}

func floatField(record map[string]interface{}, key string) (float64, bool) {
	switch v := record[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
