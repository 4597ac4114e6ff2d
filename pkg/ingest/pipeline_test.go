package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary/store"
	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

const testOwner = "ejlarsen"

func newTestPipeline(records ...map[string]interface{}) (*Pipeline, *store.MemoryStore) {
	s := store.NewMemoryStore(store.DefaultOptions())
	i := 0
	fetch := FetcherFunc(func(ctx context.Context, kind dictionary.EntityKind) (map[string]interface{}, error) {
		record := records[i%len(records)]
		i++
		return record, nil
	})
	return New(s, fetch, logging.NewNopLogger(), nil), s
}

func artistRecord(name, origin string) map[string]interface{} {
	record := map[string]interface{}{
		"name":  name,
		"image": "artists/" + name + ".jpg",
	}
	if origin != "" {
		record["origin"] = map[string]interface{}{
			"full_name": origin,
			"latitude":  40.7128,
			"longitude": -74.006,
		}
	}
	return record
}

func TestIngestSense(t *testing.T) {
	p, _ := newTestPipeline(map[string]interface{}{
		"headword":       "cheese",
		"part_of_speech": "noun",
		"definition":     "money",
		"etymology":      "from the association of money with government cheese",
		"notes":          "widespread since the 1990s",
		"id":             991, // source-side id, must be dropped
		"slug":           "cheese",
	})

	res, err := p.Ingest(context.Background(), dictionary.KindSense, testOwner)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Created)
	require.NotNil(t, res.Sense)
	assert.Equal(t, "cheese", res.Sense.Headword)
	assert.Equal(t, dictionary.POSNoun, res.Sense.PartOfSpeech)
	assert.Equal(t, "from the association of money with government cheese", res.Sense.Etymology)
	assert.Equal(t, testOwner, res.Sense.Owner)
	assert.NotZero(t, res.Sense.ID)
}

func TestIngestSenseEmptyDefinitionFailsHard(t *testing.T) {
	p, _ := newTestPipeline(map[string]interface{}{
		"headword":       "cheese",
		"part_of_speech": "noun",
		"definition":     "",
	})

	res, err := p.Ingest(context.Background(), dictionary.KindSense, testOwner)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, rberrors.IsValidation(err))

	var verr *rberrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "definition", verr.Field)
}

func TestIngestArtistCreatesOriginPlace(t *testing.T) {
	p, s := newTestPipeline(artistRecord("MF DOOM", "Long Beach, New York"))

	res, err := p.Ingest(context.Background(), dictionary.KindArtist, testOwner)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.Artist)
	assert.NotZero(t, res.Artist.Origin)

	places, err := s.ListPlaces(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Long Beach, New York", places[0].FullName)
	assert.Equal(t, res.Artist.Origin, places[0].ID)
	require.NotNil(t, places[0].Latitude)
	assert.InDelta(t, 40.7128, *places[0].Latitude, 1e-9)
}

func TestIngestArtistRepeatedOriginIsOnePlace(t *testing.T) {
	p, s := newTestPipeline(
		artistRecord("Biggie", "Brooklyn, New York"),
		artistRecord("Jay-Z", "Brooklyn, New York"),
	)
	ctx := context.Background()

	_, err := p.Ingest(ctx, dictionary.KindArtist, testOwner)
	require.NoError(t, err)
	_, err = p.Ingest(ctx, dictionary.KindArtist, testOwner)
	require.NoError(t, err)

	places, err := s.ListPlaces(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, places, 1)
}

func TestIngestSongResolvesArtistLists(t *testing.T) {
	p, s := newTestPipeline(map[string]interface{}{
		"title":               "Juicy",
		"album":               "Ready to Die",
		"release_date_string": "1994-08",
		"primary_artists": []interface{}{
			artistRecord("The Notorious B.I.G.", "Brooklyn, New York"),
		},
		"featured_artists": []interface{}{
			artistRecord("Total", ""),
			artistRecord("The Notorious B.I.G.", "Brooklyn, New York"), // dup, dropped
		},
	})
	ctx := context.Background()

	res, err := p.Ingest(ctx, dictionary.KindSong, testOwner)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.Song)
	assert.Equal(t, "Juicy", res.Song.Title)
	assert.Equal(t, "1994-08-31", res.Song.ReleaseDate.Format("2006-01-02"))

	artists, err := s.ListArtists(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, artists, 2)

	primary, err := s.RelationMembers(ctx, res.Ref, store.RelPrimaryArtists)
	require.NoError(t, err)
	require.Len(t, primary, 1)

	featured, err := s.RelationMembers(ctx, res.Ref, store.RelFeaturedArtists)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.NotEqual(t, featured[0].ID, featured[1].ID)
}

func TestIngestSongNestedArtistWithoutNameFailsHard(t *testing.T) {
	p, s := newTestPipeline(map[string]interface{}{
		"title":               "Untitled",
		"album":               "Demos",
		"release_date_string": "2001",
		"primary_artists": []interface{}{
			map[string]interface{}{"image": "artists/unknown.jpg"},
		},
	})
	ctx := context.Background()

	res, err := p.Ingest(ctx, dictionary.KindSong, testOwner)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, rberrors.IsValidation(err))

	// Artists are resolved before the song is created, so nothing leaks.
	songs, err := s.ListSongs(ctx, testOwner)
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestIngestExample(t *testing.T) {
	p, s := newTestPipeline(map[string]interface{}{
		"text":                "Birthdays was the worst days",
		"title":               "Juicy",
		"album":               "Ready to Die",
		"release_date_string": "1994-08-09",
		"links": []interface{}{
			map[string]interface{}{"offset": 0, "text": "Birthdays"},
		},
		"primary_artists": []interface{}{
			artistRecord("The Notorious B.I.G.", "Brooklyn, New York"),
		},
	})
	ctx := context.Background()

	res, err := p.Ingest(ctx, dictionary.KindExample, testOwner)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.Example)
	assert.Equal(t, "Birthdays was the worst days", res.Example.Text)
	assert.NotZero(t, res.Example.FromSong)

	song, err := s.GetSong(ctx, res.Example.FromSong)
	require.NoError(t, err)
	assert.Equal(t, "Juicy", song.Title)

	// The example carries the same artist relations as its song.
	for _, from := range []store.Ref{res.Ref, store.SongRef(song.ID)} {
		members, err := s.RelationMembers(ctx, from, store.RelPrimaryArtists)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	record := map[string]interface{}{
		"headword":       "flow",
		"part_of_speech": "noun",
		"definition":     "a rapper's cadence over a beat",
	}
	p, _ := newTestPipeline(record)
	ctx := context.Background()

	first, err := p.Ingest(ctx, dictionary.KindSense, testOwner)
	require.NoError(t, err)
	second, err := p.Ingest(ctx, dictionary.KindSense, testOwner)
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.Ref, second.Ref)
}

func TestIngestUnknownKindIsSoft(t *testing.T) {
	p, _ := newTestPipeline(map[string]interface{}{"name": "whatever"})

	res, err := p.Ingest(context.Background(), dictionary.EntityKind("producer"), testOwner)
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestIngestFetchFailureIsSoft(t *testing.T) {
	s := store.NewMemoryStore(store.DefaultOptions())
	fetch := FetcherFunc(func(ctx context.Context, kind dictionary.EntityKind) (map[string]interface{}, error) {
		return nil, rberrors.ErrSourceUnavailable
	})
	p := New(s, fetch, logging.NewNopLogger(), nil)

	res, err := p.Ingest(context.Background(), dictionary.KindSense, testOwner)
	assert.NoError(t, err)
	assert.Nil(t, res)
}
