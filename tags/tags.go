// Package tags describes the audio metadata a TFMT script reads and provides
// an in-memory implementation of it.
package tags

import "sort"

// Provider exposes the tags of one audio file. Each getter reports false
// when the file has no value for the tag. Disc and Track return the raw
// "current/total" style value.
type Provider interface {
	Album() (string, bool)
	AlbumArtist() (string, bool)
	AlbumSort() (string, bool)
	Artist() (string, bool)
	Genre() (string, bool)
	Title() (string, bool)
	Year() (string, bool)
	Disc() (string, bool)
	Track() (string, bool)
}

// Canonical tag keys used by Map.
const (
	KeyAlbum       = "album"
	KeyAlbumArtist = "album_artist"
	KeyAlbumSort   = "albumsort"
	KeyArtist      = "artist"
	KeyGenre       = "genre"
	KeyTitle       = "title"
	KeyYear        = "year"
	KeyDisc        = "disc"
	KeyTrack       = "track"
)

var keys = map[string]bool{
	KeyAlbum:       true,
	KeyAlbumArtist: true,
	KeyAlbumSort:   true,
	KeyArtist:      true,
	KeyGenre:       true,
	KeyTitle:       true,
	KeyYear:        true,
	KeyDisc:        true,
	KeyTrack:       true,
}

// Keys returns the canonical tag keys in sorted order.
func Keys() []string {
	result := make([]string, 0, len(keys))
	for k := range keys {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// IsKey reports whether k is a canonical tag key.
func IsKey(k string) bool {
	return keys[k]
}

// Map is a Provider backed by a map from canonical keys to values.
type Map map[string]string

var _ Provider = Map(nil)

func (m Map) get(k string) (string, bool) {
	v, ok := m[k]
	return v, ok
}

func (m Map) Album() (string, bool) {
	return m.get(KeyAlbum)
}

func (m Map) AlbumArtist() (string, bool) {
	return m.get(KeyAlbumArtist)
}

func (m Map) AlbumSort() (string, bool) {
	return m.get(KeyAlbumSort)
}

func (m Map) Artist() (string, bool) {
	return m.get(KeyArtist)
}

func (m Map) Genre() (string, bool) {
	return m.get(KeyGenre)
}

func (m Map) Title() (string, bool) {
	return m.get(KeyTitle)
}

func (m Map) Year() (string, bool) {
	return m.get(KeyYear)
}

func (m Map) Disc() (string, bool) {
	return m.get(KeyDisc)
}

func (m Map) Track() (string, bool) {
	return m.get(KeyTrack)
}
