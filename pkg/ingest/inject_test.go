package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedSongFixture() map[string]interface{} {
	return map[string]interface{}{
		"title": "N.Y. State of Mind",
		"album": "Illmatic",
		"primary_artists": []interface{}{
			map[string]interface{}{
				"name": "Nas",
				"origin": map[string]interface{}{
					"full_name": "Queensbridge, New York",
					"latitude":  40.756,
				},
			},
		},
		"featured_artists": []interface{}{},
	}
}

func TestInjectOwnerReachesEveryMapping(t *testing.T) {
	record := nestedSongFixture()
	InjectOwner(record, "ejlarsen")

	assert.Equal(t, "ejlarsen", record["owner"])

	artists := record["primary_artists"].([]interface{})
	artist := artists[0].(map[string]interface{})
	assert.Equal(t, "ejlarsen", artist["owner"])

	origin := artist["origin"].(map[string]interface{})
	assert.Equal(t, "ejlarsen", origin["owner"])

	// Scalars and empty sequences are untouched.
	assert.Equal(t, 40.756, origin["latitude"])
	assert.Empty(t, record["featured_artists"])
}

func TestInjectOwnerIdempotent(t *testing.T) {
	first := nestedSongFixture()
	InjectOwner(first, "ejlarsen")

	second := nestedSongFixture()
	InjectOwner(second, "ejlarsen")
	InjectOwner(second, "ejlarsen")

	assert.Equal(t, first, second)
}

func TestInjectOwnerOverwrites(t *testing.T) {
	record := map[string]interface{}{"name": "Nas", "owner": "someone-else"}
	InjectOwner(record, "ejlarsen")
	require.Equal(t, "ejlarsen", record["owner"])
}

func TestInjectOwnerNilAndScalars(t *testing.T) {
	// Must not panic on non-container values.
	InjectOwner(nil, "ejlarsen")
	InjectOwner("just a string", "ejlarsen")
	InjectOwner(42, "ejlarsen")
}
