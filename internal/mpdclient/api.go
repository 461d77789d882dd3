package mpdclient

import (
	"time"

	"rmpc/internal/mpdmodel"
)

// The methods below are the public surface other packages (the event
// loop, the work worker) drive the connection through. rawConn stays
// unexported — every command this program needs is listed here rather
// than letting callers build arbitrary closures over the connection
// type, keeping command submission ordering (§4.2) entirely inside this
// package.

// GetStatus fetches MPD's "status" response.
func (c *Client) GetStatus() (mpdmodel.Status, error) {
	return Run(c, func(rc *rawConn) (mpdmodel.Status, error) { return rc.Status() })
}

// GetVolume fetches the current volume via "getvol" (only meaningful
// when SupportsGetVol is true).
func (c *Client) GetVolume() (int, error) {
	return Run(c, func(rc *rawConn) (int, error) { return rc.GetVolume() })
}

// CurrentSong fetches "currentsong".
func (c *Client) CurrentSong() (mpdmodel.Song, error) {
	return Run(c, func(rc *rawConn) (mpdmodel.Song, error) { return rc.CurrentSong() })
}

// AlbumArt fetches the cover-file art for uri via "albumart", the
// fallback the album-art loader protocol's action=fallback refers to.
func (c *Client) AlbumArt(uri string) ([]byte, error) {
	return Run(c, func(rc *rawConn) ([]byte, error) { return rc.AlbumArt(uri) })
}

// ReadPicture fetches the tag-embedded picture for uri via "readpicture",
// tried before AlbumArt since it doesn't require a sibling cover file.
func (c *Client) ReadPicture(uri string) ([]byte, error) {
	return Run(c, func(rc *rawConn) ([]byte, error) { return rc.ReadPicture(uri) })
}

// PlaylistInfo fetches the full play queue via "playlistinfo".
func (c *Client) PlaylistInfo() (mpdmodel.Queue, error) {
	return Run(c, func(rc *rawConn) (mpdmodel.Queue, error) { return rc.PlaylistInfo() })
}

// ListInfo lists the directories and songs directly under uri via
// "lsinfo". Playlist entries in the response are skipped.
func (c *Client) ListInfo(uri string) ([]mpdmodel.DirOrSong, error) {
	return Run(c, func(rc *rawConn) ([]mpdmodel.DirOrSong, error) { return rc.ListInfo(uri) })
}

// Play starts playback at the given queue position.
func (c *Client) Play(pos int) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Play(pos) })
}

// PlayID starts playback of the song with the given queue id.
func (c *Client) PlayID(id int) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.PlayID(id) })
}

// Pause toggles the pause state.
func (c *Client) Pause(pause bool) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Pause(pause) })
}

// Next advances to the next queue entry.
func (c *Client) Next() error { return RunVoid(c, func(rc *rawConn) error { return rc.Next() }) }

// Previous returns to the previous queue entry.
func (c *Client) Previous() error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Previous() })
}

// Stop stops playback.
func (c *Client) Stop() error { return RunVoid(c, func(rc *rawConn) error { return rc.Stop() }) }

// SetVolume sets the output volume (0-100).
func (c *Client) SetVolume(v int) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.SetVolume(v) })
}

// SeekCur seeks the current song, absolute or relative.
func (c *Client) SeekCur(d time.Duration, relative bool) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.SeekCur(d, relative) })
}

// Random toggles random mode.
func (c *Client) Random(on bool) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Random(on) })
}

// Repeat toggles repeat mode.
func (c *Client) Repeat(on bool) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Repeat(on) })
}

// Consume toggles consume mode.
func (c *Client) Consume(on bool) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Consume(on) })
}

// Single sets the single mode (Off/On/Oneshot).
func (c *Client) Single(mode mpdmodel.TriState) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Single(mode) })
}

// Add appends uri to the play queue.
func (c *Client) Add(uri string) error {
	return RunVoid(c, func(rc *rawConn) error { return rc.Add(uri) })
}

// Clear empties the play queue.
func (c *Client) Clear() error { return RunVoid(c, func(rc *rawConn) error { return rc.Clear() }) }

// PlayLast enqueues uri and immediately starts playing it, used by the
// browser model's "open" action (§4.6): add, then play the song that
// landed at the end of a queue whose prior length was queueLen.
func (c *Client) PlayLast(uri string, queueLen int) error {
	return RunVoid(c, func(rc *rawConn) error {
		if err := rc.Add(uri); err != nil {
			return err
		}
		return rc.Play(queueLen)
	})
}
