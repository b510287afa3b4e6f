package tags

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := Map{
		KeyAlbum:       "Album",
		KeyAlbumArtist: "Various",
		KeyArtist:      "MASTER BOOT RECORD",
		KeyTitle:       "Dune",
		KeyTrack:       "05/12",
	}
	v, ok := m.Artist()
	require.True(t, ok)
	require.Equal(t, "MASTER BOOT RECORD", v)

	v, ok = m.Track()
	require.True(t, ok)
	require.Equal(t, "05/12", v)

	v, ok = m.AlbumArtist()
	require.True(t, ok)
	require.Equal(t, "Various", v)

	_, ok = m.Genre()
	require.False(t, ok)

	var empty Map
	_, ok = empty.Title()
	require.False(t, ok)
}

func TestKeys(t *testing.T) {
	require.Equal(t, []string{
		"album", "album_artist", "albumsort", "artist", "disc",
		"genre", "title", "track", "year",
	}, Keys())
	require.True(t, IsKey("albumsort"))
	require.False(t, IsKey("tracknumber"))
}

func TestLoad(t *testing.T) {
	input := `
- path: music/01 dune.mp3
  tags:
    artist: MASTER BOOT RECORD
    title: Dune
    track: "1/9"
- path: music/untagged.ogg
`
	entries, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "music/01 dune.mp3", entries[0].Path)
	require.Equal(t, Map{"artist": "MASTER BOOT RECORD", "title": "Dune", "track": "1/9"}, entries[0].Tags)
	require.Nil(t, entries[1].Tags)
}

func TestLoadEmpty(t *testing.T) {
	entries, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"missing path", "- tags: {artist: x}", "entry 1: missing path"},
		{"unknown tag", "- path: a.mp3\n  tags: {composer: x}", `entry 1 (a.mp3): unknown tag "composer"`},
		{"unknown field", "- path: a.mp3\n  size: 3", "decoding tags"},
		{"not a list", "path: a.mp3", "decoding tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.json")
	json := `[{"path": "a.flac", "tags": {"album": "A", "year": "2016"}}]`
	require.NoError(t, os.WriteFile(path, []byte(json), 0o644))

	entries, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	year, ok := entries[0].Tags.Year()
	require.True(t, ok)
	require.Equal(t, "2016", year)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
