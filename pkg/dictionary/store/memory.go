package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
)

// MemoryStore is an in-memory Store used by tests and dry runs. All
// operations are guarded by one mutex, which makes get-or-create atomic
// under concurrent identical natural keys.
type MemoryStore struct {
	mu   sync.Mutex
	opts Options

	nextID map[string]int64

	senses      []*dictionary.Sense
	artists     []*dictionary.Artist
	places      []*dictionary.Place
	songs       []*dictionary.Song
	examples    []*dictionary.Example
	annotations []*dictionary.Annotation
	domains     []*dictionary.Domain
	semClasses  []*dictionary.SemanticClass
	dicts       []*dictionary.Dictionary

	edges   map[edgeKey]bool
	members map[memberKey][]Ref
}

type edgeKey struct {
	from Ref
	rel  Relation
	to   Ref
}

type memberKey struct {
	from Ref
	rel  Relation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:    opts,
		nextID:  make(map[string]int64),
		edges:   make(map[edgeKey]bool),
		members: make(map[memberKey][]Ref),
	}
}

func (m *MemoryStore) allocate(kind string) int64 {
	m.nextID[kind]++
	return m.nextID[kind]
}

// GetOrCreateSense implements Store.
func (m *MemoryStore) GetOrCreateSense(ctx context.Context, s *dictionary.Sense) (*dictionary.Sense, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.senses {
		if existing.Headword == s.Headword &&
			existing.PartOfSpeech == s.PartOfSpeech &&
			existing.Definition == s.Definition &&
			existing.Owner == s.Owner {
			return existing, false, nil
		}
	}
	created := *s
	created.ID = m.allocate(RefSense)
	created.Created = time.Now()
	m.senses = append(m.senses, &created)
	return &created, true, nil
}

// GetOrCreateArtist implements Store. When the candidate carries an origin,
// the origin participates in the natural key.
func (m *MemoryStore) GetOrCreateArtist(ctx context.Context, a *dictionary.Artist) (*dictionary.Artist, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.artists {
		if existing.Name != a.Name {
			continue
		}
		if a.Origin != 0 && existing.Origin != a.Origin {
			continue
		}
		return existing, false, nil
	}
	created := *a
	created.ID = m.allocate(RefArtist)
	created.Created = time.Now()
	m.artists = append(m.artists, &created)
	return &created, true, nil
}

// GetOrCreatePlace implements Store.
func (m *MemoryStore) GetOrCreatePlace(ctx context.Context, p *dictionary.Place) (*dictionary.Place, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.places {
		if existing.FullName == p.FullName {
			return existing, false, nil
		}
	}
	created := *p
	created.ID = m.allocate(RefPlace)
	created.Created = time.Now()
	m.places = append(m.places, &created)
	return &created, true, nil
}

// GetOrCreateSong implements Store.
func (m *MemoryStore) GetOrCreateSong(ctx context.Context, s *dictionary.Song) (*dictionary.Song, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.songs {
		if existing.Title == s.Title &&
			existing.Album == s.Album &&
			existing.ReleaseDate.Equal(s.ReleaseDate) &&
			(!m.opts.ScopeSongsByOwner || existing.Owner == s.Owner) {
			return existing, false, nil
		}
	}
	created := *s
	created.ID = m.allocate(RefSong)
	created.Created = time.Now()
	m.songs = append(m.songs, &created)
	return &created, true, nil
}

// GetOrCreateExample implements Store.
func (m *MemoryStore) GetOrCreateExample(ctx context.Context, e *dictionary.Example) (*dictionary.Example, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.examples {
		if existing.Text == e.Text &&
			existing.FromSong == e.FromSong &&
			(!m.opts.ScopeSongsByOwner || existing.Owner == e.Owner) {
			return existing, false, nil
		}
	}
	created := *e
	created.ID = m.allocate(RefExample)
	created.Created = time.Now()
	m.examples = append(m.examples, &created)
	return &created, true, nil
}

// GetOrCreateAnnotation implements Store.
func (m *MemoryStore) GetOrCreateAnnotation(ctx context.Context, a *dictionary.Annotation) (*dictionary.Annotation, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.annotations {
		if existing.Example == a.Example &&
			existing.Text == a.Text &&
			existing.Offset == a.Offset &&
			existing.Owner == a.Owner {
			return existing, false, nil
		}
	}
	created := *a
	created.ID = m.allocate(RefAnnotation)
	created.Created = time.Now()
	m.annotations = append(m.annotations, &created)
	return &created, true, nil
}

// GetOrCreateDomain implements Store.
func (m *MemoryStore) GetOrCreateDomain(ctx context.Context, d *dictionary.Domain) (*dictionary.Domain, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.domains {
		if existing.Name == d.Name && existing.Owner == d.Owner {
			return existing, false, nil
		}
	}
	created := *d
	created.ID = m.allocate(RefDomain)
	created.Created = time.Now()
	m.domains = append(m.domains, &created)
	return &created, true, nil
}

// GetOrCreateSemanticClass implements Store.
func (m *MemoryStore) GetOrCreateSemanticClass(ctx context.Context, c *dictionary.SemanticClass) (*dictionary.SemanticClass, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.semClasses {
		if existing.Name == c.Name && existing.Owner == c.Owner {
			return existing, false, nil
		}
	}
	created := *c
	created.ID = m.allocate(RefSemanticClass)
	created.Created = time.Now()
	m.semClasses = append(m.semClasses, &created)
	return &created, true, nil
}

// GetOrCreateDictionary implements Store.
func (m *MemoryStore) GetOrCreateDictionary(ctx context.Context, d *dictionary.Dictionary) (*dictionary.Dictionary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.dicts {
		if existing.Name == d.Name && existing.Owner == d.Owner {
			return existing, false, nil
		}
	}
	created := *d
	created.ID = m.allocate(RefDictionary)
	created.Created = time.Now()
	m.dicts = append(m.dicts, &created)
	return &created, true, nil
}

// GetSong implements Store.
func (m *MemoryStore) GetSong(ctx context.Context, id int64) (*dictionary.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.songs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, rberrors.ErrNotFound
}

// GetExample implements Store.
func (m *MemoryStore) GetExample(ctx context.Context, id int64) (*dictionary.Example, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.examples {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, rberrors.ErrNotFound
}

// ListSenses implements Store: ordered by (headword, created).
func (m *MemoryStore) ListSenses(ctx context.Context, owner string) ([]*dictionary.Sense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*dictionary.Sense
	for _, s := range m.senses {
		if owner == "" || s.Owner == owner {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Headword != out[j].Headword {
			return out[i].Headword < out[j].Headword
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}

// ListArtists implements Store: ordered by (name, created).
func (m *MemoryStore) ListArtists(ctx context.Context, owner string) ([]*dictionary.Artist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*dictionary.Artist
	for _, a := range m.artists {
		if owner == "" || a.Owner == owner {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}

// ListPlaces implements Store: ordered by (name, created).
func (m *MemoryStore) ListPlaces(ctx context.Context, owner string) ([]*dictionary.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*dictionary.Place
	for _, p := range m.places {
		if owner == "" || p.Owner == owner {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}

// ListSongs implements Store: ordered by (title, album).
func (m *MemoryStore) ListSongs(ctx context.Context, owner string) ([]*dictionary.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*dictionary.Song
	for _, s := range m.songs {
		if owner == "" || s.Owner == owner {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].Album < out[j].Album
	})
	return out, nil
}

// ListExamples implements Store: ordered by text.
func (m *MemoryStore) ListExamples(ctx context.Context, owner string) ([]*dictionary.Example, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*dictionary.Example
	for _, e := range m.examples {
		if owner == "" || e.Owner == owner {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Text < out[j].Text
	})
	return out, nil
}

// AnnotationsForExample implements Store: ordered by text.
func (m *MemoryStore) AnnotationsForExample(ctx context.Context, exampleID int64) ([]*dictionary.Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*dictionary.Annotation
	for _, a := range m.annotations {
		if a.Example == exampleID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Text < out[j].Text
	})
	return out, nil
}

// AddRelation implements Store.
func (m *MemoryStore) AddRelation(ctx context.Context, from Ref, rel Relation, members ...Ref) error {
	if !knownRelation(rel) {
		return rberrors.Validationf("relation", string(rel), "unknown relation")
	}
	if from.ID == 0 {
		return rberrors.Validationf("relation", string(rel), "relation owner must be persisted")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, member := range members {
		if member.ID == 0 {
			return rberrors.Validationf("relation", string(rel), "relation member must be persisted")
		}
		m.addEdge(from, rel, member)
		if symmetricRelations[rel] {
			m.addEdge(member, rel, from)
		} else if inverse, ok := inverseRelations[rel]; ok {
			m.addEdge(member, inverse, from)
		}
	}
	return nil
}

// addEdge records one directed edge, deduplicated. Caller holds the lock.
func (m *MemoryStore) addEdge(from Ref, rel Relation, to Ref) {
	key := edgeKey{from: from, rel: rel, to: to}
	if m.edges[key] {
		return
	}
	m.edges[key] = true
	mk := memberKey{from: from, rel: rel}
	m.members[mk] = append(m.members[mk], to)
}

// RelationMembers implements Store.
func (m *MemoryStore) RelationMembers(ctx context.Context, from Ref, rel Relation) ([]Ref, error) {
	if !knownRelation(rel) {
		return nil, rberrors.Validationf("relation", string(rel), "unknown relation")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	members := m.members[memberKey{from: from, rel: rel}]
	out := make([]Ref, len(members))
	copy(out, members)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
