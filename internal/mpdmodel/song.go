// Package mpdmodel holds the plain data types shared across the browser
// panes, the queue view, and the MPD client: songs, status, the queue, and
// the directory/song union browser panes render.
package mpdmodel

import (
	"strconv"
	"strings"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

// Song mirrors a single MPD database entry or queue slot.
type Song struct {
	ID           uint32
	File         string
	Duration     *time.Duration
	Metadata     map[string][]string
	Stickers     map[string]string
	LastModified time.Time
	Added        *time.Time
}

// Tag returns the first value of a lowercase metadata tag, if present.
func (s Song) Tag(name string) string {
	vals := s.Metadata[strings.ToLower(name)]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Title falls back to the file's base name, as rmpc's UI does for
// untagged files.
func (s Song) Title() string {
	if t := s.Tag("title"); t != "" {
		return t
	}
	if idx := strings.LastIndexByte(s.File, '/'); idx >= 0 {
		return s.File[idx+1:]
	}
	return s.File
}

// SongFromAttrs converts a gompd attribute map (as returned by
// CurrentSong/PlaylistInfo/ListAllInfo) into a Song.
func SongFromAttrs(attrs mpd.Attrs) Song {
	s := Song{
		File:     attrs["file"],
		Metadata: map[string][]string{},
	}

	if id, err := strconv.ParseUint(attrs["Id"], 10, 32); err == nil {
		s.ID = uint32(id)
	}
	if d, err := strconv.ParseFloat(attrs["duration"], 64); err == nil {
		dur := time.Duration(d * float64(time.Second))
		s.Duration = &dur
	}
	if t, err := time.Parse(time.RFC3339, attrs["Last-Modified"]); err == nil {
		s.LastModified = t
	}
	if t, err := time.Parse(time.RFC3339, attrs["Added"]); err == nil {
		s.Added = &t
	}

	for k, v := range attrs {
		switch k {
		case "file", "Id", "duration", "Last-Modified", "Added", "Pos", "Time":
			continue
		}
		lk := strings.ToLower(k)
		s.Metadata[lk] = append(s.Metadata[lk], v)
	}

	return s
}
