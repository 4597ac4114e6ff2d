package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhymebook/rhymebook-cli/pkg/db"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// PostgresStore is the pgx-backed Store. Get-or-create atomicity is
// guaranteed by unique constraints: INSERT ... ON CONFLICT DO NOTHING
// followed by a re-select on conflict.
type PostgresStore struct {
	pool   *pgxpool.Pool
	opts   Options
	logger logging.Logger
}

// NewPostgresStore creates a Store over the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool, opts Options, logger logging.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		opts:   opts,
		logger: logger.With(logging.F("component", "postgres_store")),
	}
}

// Migrate applies the dictionary schema migrations.
func (p *PostgresStore) Migrate(ctx context.Context) (*db.MigrationResult, error) {
	return db.RunMigrations(ctx, p.pool, migrationFiles)
}

// GetOrCreateSense implements Store.
func (p *PostgresStore) GetOrCreateSense(ctx context.Context, s *dictionary.Sense) (*dictionary.Sense, bool, error) {
	out := *s
	err := p.pool.QueryRow(ctx, `
		INSERT INTO senses (headword, headword_slug, published, part_of_speech, definition, etymology, notes, owner_name)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		ON CONFLICT (headword, part_of_speech, definition, owner_name) DO NOTHING
		RETURNING id, created
	`, s.Headword, s.HeadwordSlug, s.Published, s.PartOfSpeech, s.Definition, s.Etymology, s.Notes, s.Owner).
		Scan(&out.ID, &out.Created)
	if err == nil {
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create sense: %w", err)
	}

	existing := &dictionary.Sense{}
	err = p.pool.QueryRow(ctx, `
		SELECT id, created, headword, headword_slug, published, part_of_speech, definition,
		       COALESCE(etymology, ''), COALESCE(notes, ''), owner_name
		FROM senses
		WHERE headword = $1 AND part_of_speech = $2 AND definition = $3 AND owner_name = $4
	`, s.Headword, s.PartOfSpeech, s.Definition, s.Owner).
		Scan(&existing.ID, &existing.Created, &existing.Headword, &existing.HeadwordSlug,
			&existing.Published, &existing.PartOfSpeech, &existing.Definition,
			&existing.Etymology, &existing.Notes, &existing.Owner)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-select sense: %w", err)
	}
	return existing, false, nil
}

// GetOrCreateArtist implements Store. The natural key is the name alone when
// the candidate has no origin, (name, origin) otherwise.
func (p *PostgresStore) GetOrCreateArtist(ctx context.Context, a *dictionary.Artist) (*dictionary.Artist, bool, error) {
	selectArtist := func() (*dictionary.Artist, error) {
		query := `
			SELECT id, created, name, slug, COALESCE(origin, 0), owner_name
			FROM artists WHERE name = $1 ORDER BY id LIMIT 1`
		args := []interface{}{a.Name}
		if a.Origin != 0 {
			query = `
			SELECT id, created, name, slug, COALESCE(origin, 0), owner_name
			FROM artists WHERE name = $1 AND origin = $2`
			args = append(args, a.Origin)
		}
		existing := &dictionary.Artist{}
		err := p.pool.QueryRow(ctx, query, args...).
			Scan(&existing.ID, &existing.Created, &existing.Name, &existing.Slug,
				&existing.Origin, &existing.Owner)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	if existing, err := selectArtist(); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to look up artist: %w", err)
	}

	out := *a
	err := p.pool.QueryRow(ctx, `
		INSERT INTO artists (name, slug, origin, owner_name)
		VALUES ($1, $2, NULLIF($3, 0), $4)
		ON CONFLICT (name, COALESCE(origin, 0)) DO NOTHING
		RETURNING id, created
	`, a.Name, a.Slug, a.Origin, a.Owner).Scan(&out.ID, &out.Created)
	if err == nil {
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create artist: %w", err)
	}

	// Lost a race with a concurrent identical create.
	existing, err := selectArtist()
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-select artist: %w", err)
	}
	return existing, false, nil
}

// GetOrCreatePlace implements Store.
func (p *PostgresStore) GetOrCreatePlace(ctx context.Context, place *dictionary.Place) (*dictionary.Place, bool, error) {
	out := *place
	err := p.pool.QueryRow(ctx, `
		INSERT INTO places (name, full_name, slug, latitude, longitude, owner_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (full_name) DO NOTHING
		RETURNING id, created
	`, place.Name, place.FullName, place.Slug, place.Latitude, place.Longitude, place.Owner).
		Scan(&out.ID, &out.Created)
	if err == nil {
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create place: %w", err)
	}

	existing := &dictionary.Place{}
	err = p.pool.QueryRow(ctx, `
		SELECT id, created, name, full_name, slug, latitude, longitude, owner_name
		FROM places WHERE full_name = $1
	`, place.FullName).
		Scan(&existing.ID, &existing.Created, &existing.Name, &existing.FullName,
			&existing.Slug, &existing.Latitude, &existing.Longitude, &existing.Owner)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-select place: %w", err)
	}
	return existing, false, nil
}

// GetOrCreateSong implements Store.
func (p *PostgresStore) GetOrCreateSong(ctx context.Context, s *dictionary.Song) (*dictionary.Song, bool, error) {
	if !p.opts.ScopeSongsByOwner {
		existing, err := p.selectSongGlobal(ctx, s)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, err
		}
	}

	out := *s
	err := p.pool.QueryRow(ctx, `
		INSERT INTO songs (slug, title, album, release_date, release_date_string, release_date_verified, lyrics, owner_name)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		ON CONFLICT (title, album, release_date, owner_name) DO NOTHING
		RETURNING id, created
	`, s.Slug, s.Title, s.Album, s.ReleaseDate, s.ReleaseDateString, s.ReleaseDateVerified, s.Lyrics, s.Owner).
		Scan(&out.ID, &out.Created)
	if err == nil {
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create song: %w", err)
	}

	existing := &dictionary.Song{}
	err = p.pool.QueryRow(ctx, songSelect+`
		WHERE title = $1 AND album = $2 AND release_date = $3 AND owner_name = $4
	`, s.Title, s.Album, s.ReleaseDate, s.Owner).Scan(songFields(existing)...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-select song: %w", err)
	}
	return existing, false, nil
}

const songSelect = `
	SELECT id, created, slug, title, album, release_date, release_date_string,
	       release_date_verified, COALESCE(lyrics, ''), owner_name
	FROM songs`

func songFields(s *dictionary.Song) []interface{} {
	return []interface{}{
		&s.ID, &s.Created, &s.Slug, &s.Title, &s.Album, &s.ReleaseDate,
		&s.ReleaseDateString, &s.ReleaseDateVerified, &s.Lyrics, &s.Owner,
	}
}

func (p *PostgresStore) selectSongGlobal(ctx context.Context, s *dictionary.Song) (*dictionary.Song, error) {
	existing := &dictionary.Song{}
	err := p.pool.QueryRow(ctx, songSelect+`
		WHERE title = $1 AND album = $2 AND release_date = $3
		ORDER BY id LIMIT 1
	`, s.Title, s.Album, s.ReleaseDate).Scan(songFields(existing)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up song: %w", err)
	}
	return existing, nil
}

// GetOrCreateExample implements Store.
func (p *PostgresStore) GetOrCreateExample(ctx context.Context, e *dictionary.Example) (*dictionary.Example, bool, error) {
	if !p.opts.ScopeSongsByOwner {
		existing := &dictionary.Example{}
		err := p.pool.QueryRow(ctx, `
			SELECT id, created, slug, from_song, example_text, owner_name
			FROM examples WHERE example_text = $1 AND from_song = $2
			ORDER BY id LIMIT 1
		`, e.Text, e.FromSong).
			Scan(&existing.ID, &existing.Created, &existing.Slug, &existing.FromSong,
				&existing.Text, &existing.Owner)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("failed to look up example: %w", err)
		}
	}

	out := *e
	err := p.pool.QueryRow(ctx, `
		INSERT INTO examples (slug, from_song, example_text, owner_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (example_text, from_song, owner_name) DO NOTHING
		RETURNING id, created
	`, e.Slug, e.FromSong, e.Text, e.Owner).Scan(&out.ID, &out.Created)
	if err == nil {
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create example: %w", err)
	}

	existing := &dictionary.Example{}
	err = p.pool.QueryRow(ctx, `
		SELECT id, created, slug, from_song, example_text, owner_name
		FROM examples WHERE example_text = $1 AND from_song = $2 AND owner_name = $3
	`, e.Text, e.FromSong, e.Owner).
		Scan(&existing.ID, &existing.Created, &existing.Slug, &existing.FromSong,
			&existing.Text, &existing.Owner)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-select example: %w", err)
	}
	return existing, false, nil
}

// GetOrCreateAnnotation implements Store.
func (p *PostgresStore) GetOrCreateAnnotation(ctx context.Context, a *dictionary.Annotation) (*dictionary.Annotation, bool, error) {
	out := *a
	err := p.pool.QueryRow(ctx, `
		INSERT INTO annotations (annotation_text, slug, span_offset, example_id, link_kind, link_id, owner_name)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, 0), $7)
		ON CONFLICT (example_id, annotation_text, span_offset, owner_name) DO NOTHING
		RETURNING id, created
	`, a.Text, a.Slug, a.Offset, a.Example, string(a.Link.Kind), a.Link.ID, a.Owner).
		Scan(&out.ID, &out.Created)
	if err == nil {
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create annotation: %w", err)
	}

	existing, err := p.selectAnnotation(ctx, a)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-select annotation: %w", err)
	}
	return existing, false, nil
}

func (p *PostgresStore) selectAnnotation(ctx context.Context, a *dictionary.Annotation) (*dictionary.Annotation, error) {
	existing := &dictionary.Annotation{}
	var linkKind string
	var linkID int64
	err := p.pool.QueryRow(ctx, `
		SELECT id, created, annotation_text, slug, span_offset, example_id,
		       COALESCE(link_kind, ''), COALESCE(link_id, 0), owner_name
		FROM annotations
		WHERE example_id = $1 AND annotation_text = $2 AND span_offset = $3 AND owner_name = $4
	`, a.Example, a.Text, a.Offset, a.Owner).
		Scan(&existing.ID, &existing.Created, &existing.Text, &existing.Slug,
			&existing.Offset, &existing.Example, &linkKind, &linkID, &existing.Owner)
	if err != nil {
		return nil, err
	}
	existing.Link = dictionary.LinkTarget{Kind: dictionary.LinkKind(linkKind), ID: linkID}
	return existing, nil
}

// GetOrCreateDomain implements Store.
func (p *PostgresStore) GetOrCreateDomain(ctx context.Context, d *dictionary.Domain) (*dictionary.Domain, bool, error) {
	id, created, wasCreated, err := p.getOrCreateNamed(ctx, "domains", d.Name, d.Slug, d.Owner)
	if err != nil {
		return nil, false, err
	}
	out := *d
	out.ID = id
	out.Created = created
	return &out, wasCreated, nil
}

// GetOrCreateSemanticClass implements Store.
func (p *PostgresStore) GetOrCreateSemanticClass(ctx context.Context, c *dictionary.SemanticClass) (*dictionary.SemanticClass, bool, error) {
	id, created, wasCreated, err := p.getOrCreateNamed(ctx, "semantic_classes", c.Name, c.Slug, c.Owner)
	if err != nil {
		return nil, false, err
	}
	out := *c
	out.ID = id
	out.Created = created
	return &out, wasCreated, nil
}

// GetOrCreateDictionary implements Store.
func (p *PostgresStore) GetOrCreateDictionary(ctx context.Context, d *dictionary.Dictionary) (*dictionary.Dictionary, bool, error) {
	id, created, wasCreated, err := p.getOrCreateNamed(ctx, "dictionaries", d.Name, d.Slug, d.Owner)
	if err != nil {
		return nil, false, err
	}
	out := *d
	out.ID = id
	out.Created = created
	return &out, wasCreated, nil
}

// getOrCreateNamed handles the three taxonomy tables, all keyed on
// (name, owner_name). The table name is always one of our own constants.
func (p *PostgresStore) getOrCreateNamed(ctx context.Context, table, name, slug, owner string) (id int64, created time.Time, wasCreated bool, err error) {
	err = p.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, slug, owner_name) VALUES ($1, $2, $3)
		ON CONFLICT (name, owner_name) DO NOTHING
		RETURNING id, created
	`, table), name, slug, owner).Scan(&id, &created)
	if err == nil {
		return id, created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, created, false, fmt.Errorf("failed to create %s row: %w", table, err)
	}

	err = p.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, created FROM %s WHERE name = $1 AND owner_name = $2
	`, table), name, owner).Scan(&id, &created)
	if err != nil {
		return 0, created, false, fmt.Errorf("failed to re-select %s row: %w", table, err)
	}
	return id, created, false, nil
}

// GetSong implements Store.
func (p *PostgresStore) GetSong(ctx context.Context, id int64) (*dictionary.Song, error) {
	s := &dictionary.Song{}
	err := p.pool.QueryRow(ctx, songSelect+` WHERE id = $1`, id).Scan(songFields(s)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rberrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return s, nil
}

// GetExample implements Store.
func (p *PostgresStore) GetExample(ctx context.Context, id int64) (*dictionary.Example, error) {
	e := &dictionary.Example{}
	err := p.pool.QueryRow(ctx, `
		SELECT id, created, slug, from_song, example_text, owner_name
		FROM examples WHERE id = $1
	`, id).Scan(&e.ID, &e.Created, &e.Slug, &e.FromSong, &e.Text, &e.Owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rberrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get example: %w", err)
	}
	return e, nil
}

// ListSenses implements Store: ordered by (headword, created).
func (p *PostgresStore) ListSenses(ctx context.Context, owner string) ([]*dictionary.Sense, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, created, headword, headword_slug, published, part_of_speech, definition,
		       COALESCE(etymology, ''), COALESCE(notes, ''), owner_name
		FROM senses
		WHERE ($1 = '' OR owner_name = $1)
		ORDER BY headword, created
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list senses: %w", err)
	}
	defer rows.Close()

	var out []*dictionary.Sense
	for rows.Next() {
		s := &dictionary.Sense{}
		if err := rows.Scan(&s.ID, &s.Created, &s.Headword, &s.HeadwordSlug, &s.Published,
			&s.PartOfSpeech, &s.Definition, &s.Etymology, &s.Notes, &s.Owner); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListArtists implements Store: ordered by (name, created).
func (p *PostgresStore) ListArtists(ctx context.Context, owner string) ([]*dictionary.Artist, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, created, name, slug, COALESCE(origin, 0), owner_name
		FROM artists
		WHERE ($1 = '' OR owner_name = $1)
		ORDER BY name, created
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	var out []*dictionary.Artist
	for rows.Next() {
		a := &dictionary.Artist{}
		if err := rows.Scan(&a.ID, &a.Created, &a.Name, &a.Slug, &a.Origin, &a.Owner); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListPlaces implements Store: ordered by (name, created).
func (p *PostgresStore) ListPlaces(ctx context.Context, owner string) ([]*dictionary.Place, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, created, name, full_name, slug, latitude, longitude, owner_name
		FROM places
		WHERE ($1 = '' OR owner_name = $1)
		ORDER BY name, created
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	var out []*dictionary.Place
	for rows.Next() {
		pl := &dictionary.Place{}
		if err := rows.Scan(&pl.ID, &pl.Created, &pl.Name, &pl.FullName, &pl.Slug,
			&pl.Latitude, &pl.Longitude, &pl.Owner); err != nil {
			return nil, err
		}
		out = append(out, pl)
	}
	return out, rows.Err()
}

// ListSongs implements Store: ordered by (title, album).
func (p *PostgresStore) ListSongs(ctx context.Context, owner string) ([]*dictionary.Song, error) {
	rows, err := p.pool.Query(ctx, songSelect+`
		WHERE ($1 = '' OR owner_name = $1)
		ORDER BY title, album
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var out []*dictionary.Song
	for rows.Next() {
		s := &dictionary.Song{}
		if err := rows.Scan(songFields(s)...); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListExamples implements Store: ordered by text.
func (p *PostgresStore) ListExamples(ctx context.Context, owner string) ([]*dictionary.Example, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, created, slug, from_song, example_text, owner_name
		FROM examples
		WHERE ($1 = '' OR owner_name = $1)
		ORDER BY example_text
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	var out []*dictionary.Example
	for rows.Next() {
		e := &dictionary.Example{}
		if err := rows.Scan(&e.ID, &e.Created, &e.Slug, &e.FromSong, &e.Text, &e.Owner); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AnnotationsForExample implements Store: ordered by text.
func (p *PostgresStore) AnnotationsForExample(ctx context.Context, exampleID int64) ([]*dictionary.Annotation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, created, annotation_text, slug, span_offset, example_id,
		       COALESCE(link_kind, ''), COALESCE(link_id, 0), owner_name
		FROM annotations
		WHERE example_id = $1
		ORDER BY annotation_text
	`, exampleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	var out []*dictionary.Annotation
	for rows.Next() {
		a := &dictionary.Annotation{}
		var linkKind string
		var linkID int64
		if err := rows.Scan(&a.ID, &a.Created, &a.Text, &a.Slug, &a.Offset, &a.Example,
			&linkKind, &linkID, &a.Owner); err != nil {
			return nil, err
		}
		a.Link = dictionary.LinkTarget{Kind: dictionary.LinkKind(linkKind), ID: linkID}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AddRelation implements Store. All edges for one call, including mirrored
// and inverse rows, are written in a single transaction.
func (p *PostgresStore) AddRelation(ctx context.Context, from Ref, rel Relation, members ...Ref) error {
	if !knownRelation(rel) {
		return rberrors.Validationf("relation", string(rel), "unknown relation")
	}
	if from.ID == 0 {
		return rberrors.Validationf("relation", string(rel), "relation owner must be persisted")
	}
	for _, member := range members {
		if member.ID == 0 {
			return rberrors.Validationf("relation", string(rel), "relation member must be persisted")
		}
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin relation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := func(from Ref, rel Relation, to Ref) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO relations (from_kind, from_id, relation, member_kind, member_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT DO NOTHING
		`, from.Kind, from.ID, rel, to.Kind, to.ID)
		return err
	}

	for _, member := range members {
		if err := insert(from, rel, member); err != nil {
			return fmt.Errorf("failed to add relation edge: %w", err)
		}
		if symmetricRelations[rel] {
			if err := insert(member, rel, from); err != nil {
				return fmt.Errorf("failed to mirror relation edge: %w", err)
			}
		} else if inverse, ok := inverseRelations[rel]; ok {
			if err := insert(member, inverse, from); err != nil {
				return fmt.Errorf("failed to add inverse relation edge: %w", err)
			}
		}
	}
	return tx.Commit(ctx)
}

// RelationMembers implements Store.
func (p *PostgresStore) RelationMembers(ctx context.Context, from Ref, rel Relation) ([]Ref, error) {
	if !knownRelation(rel) {
		return nil, rberrors.Validationf("relation", string(rel), "unknown relation")
	}

	rows, err := p.pool.Query(ctx, `
		SELECT member_kind, member_id FROM relations
		WHERE from_kind = $1 AND from_id = $2 AND relation = $3
		ORDER BY id
	`, from.Kind, from.ID, rel)
	if err != nil {
		return nil, fmt.Errorf("failed to list relation members: %w", err)
	}
	defer rows.Close()

	var out []Ref
	for rows.Next() {
		var r Ref
		if err := rows.Scan(&r.Kind, &r.ID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ Store = (*PostgresStore)(nil)
