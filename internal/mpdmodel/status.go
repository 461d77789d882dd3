package mpdmodel

import (
	"strconv"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

// PlayState is MPD's coarse playback state.
type PlayState int

const (
	StatePlay PlayState = iota
	StatePause
	StateStop
)

// TriState models MPD's On/Off/Oneshot options (single, consume).
type TriState int

const (
	TriOff TriState = iota
	TriOn
	TriOneshot
)

// Status mirrors the response to MPD's "status" command.
type Status struct {
	State          PlayState
	Volume         int
	SongID         *uint32
	Song           *int
	PlaylistLength uint32
	Duration       time.Duration
	Elapsed        time.Duration
	Bitrate        *uint32
	Repeat         bool
	Single         TriState
	Consume        TriState
	Random         bool
}

func parseTri(s string) TriState {
	switch s {
	case "1":
		return TriOn
	case "oneshot":
		return TriOneshot
	default:
		return TriOff
	}
}

// StatusFromAttrs converts gompd's status attribute map into a Status.
func StatusFromAttrs(attrs mpd.Attrs) Status {
	st := Status{State: StateStop}
	switch attrs["state"] {
	case "play":
		st.State = StatePlay
	case "pause":
		st.State = StatePause
	}

	if v, err := strconv.Atoi(attrs["volume"]); err == nil {
		st.Volume = v
	}
	if id, err := strconv.ParseUint(attrs["songid"], 10, 32); err == nil {
		u := uint32(id)
		st.SongID = &u
	}
	if pos, err := strconv.Atoi(attrs["song"]); err == nil {
		st.Song = &pos
	}
	if n, err := strconv.ParseUint(attrs["playlistlength"], 10, 32); err == nil {
		st.PlaylistLength = uint32(n)
	}
	if d, err := strconv.ParseFloat(attrs["duration"], 64); err == nil {
		st.Duration = time.Duration(d * float64(time.Second))
	}
	if e, err := strconv.ParseFloat(attrs["elapsed"], 64); err == nil {
		st.Elapsed = time.Duration(e * float64(time.Second))
	}
	if b, err := strconv.ParseUint(attrs["bitrate"], 10, 32); err == nil {
		u := uint32(b)
		st.Bitrate = &u
	}
	st.Repeat = attrs["repeat"] == "1"
	st.Random = attrs["random"] == "1"
	st.Single = parseTri(attrs["single"])
	st.Consume = parseTri(attrs["consume"])

	return st
}

// Queue is the ordered playback queue, addressable by id or position.
type Queue struct {
	Songs []Song
}

// ByID returns the song with the given queue id, if present.
func (q Queue) ByID(id uint32) (Song, bool) {
	for _, s := range q.Songs {
		if s.ID == id {
			return s, true
		}
	}
	return Song{}, false
}

// ByPosition returns the song at the given zero-based queue position.
func (q Queue) ByPosition(pos int) (Song, bool) {
	if pos < 0 || pos >= len(q.Songs) {
		return Song{}, false
	}
	return q.Songs[pos], true
}
