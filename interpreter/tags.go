package interpreter

import (
	"sort"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/tagfmt/tfmt/internal/lexer"
	"github.com/tagfmt/tfmt/tags"
)

type tagGetter struct {
	get    func(tags.Provider) (string, bool)
	number bool
}

var (
	album       = tagGetter{get: tags.Provider.Album}
	albumArtist = tagGetter{get: tags.Provider.AlbumArtist}
	albumSort   = tagGetter{get: tags.Provider.AlbumSort}
	artist      = tagGetter{get: tags.Provider.Artist}
	genre       = tagGetter{get: tags.Provider.Genre}
	title       = tagGetter{get: tags.Provider.Title}
	year        = tagGetter{get: tags.Provider.Year}
	disc        = tagGetter{get: tags.Provider.Disc, number: true}
	track       = tagGetter{get: tags.Provider.Track, number: true}
)

// tagNames maps every tag name a script may use, synonyms included, to its
// getter. Names are case sensitive.
var tagNames = map[string]tagGetter{
	"album":        album,
	"album_artist": albumArtist,
	"albumartist":  albumArtist,
	"albumsort":    albumSort,
	"album_sort":   albumSort,
	"artist":       artist,
	"genre":        genre,
	"title":        title,
	"year":         year,
	"disc":         disc,
	"disk":         disc,
	"discnumber":   disc,
	"disknumber":   disc,
	"disc_number":  disc,
	"disk_number":  disc,
	"track":        track,
	"tracknumber":  track,
	"track_number": track,
}

// TagNames returns every tag name a script may use, in sorted order.
func TagNames() []string {
	names := make([]string, 0, len(tagNames))
	for name := range tagNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveTag returns the sanitized value of the named tag. The second
// result is false when the name is not a known tag. A tag the provider has
// no value for resolves to "".
func resolveTag(p tags.Provider, name string) (string, bool) {
	getter, ok := tagNames[name]
	if !ok {
		return "", false
	}
	if p == nil {
		return "", true
	}
	value, ok := getter.get(p)
	if !ok {
		return "", true
	}
	if getter.number {
		value = normalizeNumber(value)
	}
	return sanitize(value), true
}

// normalizeNumber takes the "current" part of a "current/total" value and
// strips its leading zeroes.
func normalizeNumber(value string) string {
	current, _, _ := strings.Cut(value, "/")
	current = strings.TrimSpace(current)
	if current == "" {
		return ""
	}
	trimmed := strings.TrimLeft(current, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// sanitize removes graphemes that may not appear in a path component.
func sanitize(s string) string {
	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		g := gr.Str()
		if lexer.IsForbidden(g) || strings.ContainsAny(g, `/\`) {
			continue
		}
		b.WriteString(g)
	}
	return b.String()
}
