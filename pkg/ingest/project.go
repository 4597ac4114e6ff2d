package ingest

import (
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
)

// songFields is shared between songs and the example records that embed
// them.
var songFields = []string{
	"title",
	"release_date",
	"release_date_string",
	"album",
	"primary_artists",
	"featured_artists",
}

// allowedFields is the per-kind projection allow-list. Keys absent from a
// raw record are simply omitted; this is a partial projection, not a strict
// schema.
var allowedFields = map[dictionary.EntityKind][]string{
	dictionary.KindSense:   {"headword", "part_of_speech", "definition", "notes", "etymology"},
	dictionary.KindArtist:  {"name", "origin"},
	dictionary.KindPlace:   {"full_name", "name", "latitude", "longitude"},
	dictionary.KindSong:    songFields,
	dictionary.KindExample: append(append([]string{}, songFields...), "text", "links"),
}

// Project selects the allow-listed field subset for kind from a raw record.
// The second return is false for unknown kinds.
func Project(kind dictionary.EntityKind, raw map[string]interface{}) (map[string]interface{}, bool) {
	fields, ok := allowedFields[kind]
	if !ok {
		return nil, false
	}
	projected := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		if value, present := raw[field]; present {
			projected[field] = value
		}
	}
	return projected, true
}

// KnownKind reports whether kind is ingestable.
func KnownKind(kind dictionary.EntityKind) bool {
	_, ok := allowedFields[kind]
	return ok
}
