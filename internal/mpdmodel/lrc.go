package mpdmodel

import "time"

// LrcIndexEntry is one indexed lyrics file: enough metadata to match it
// against the currently playing song without re-parsing the file.
type LrcIndexEntry struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Length time.Duration
}

// Matches reports whether this entry's (artist, title, album) line up
// with the given song and the two lengths differ by less than 3 seconds,
// the tolerance rmpc uses to account for tagging/encoding rounding.
func (e LrcIndexEntry) Matches(artist, title, album string, length time.Duration) bool {
	if e.Artist != artist || e.Title != title || e.Album != album {
		return false
	}
	diff := e.Length - length
	if diff < 0 {
		diff = -diff
	}
	return diff < 3*time.Second
}
