package mpdclient

import (
	"fmt"
	"io"
	"net"
	"net/textproto"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"rmpc/internal/mpdmodel"
)

// rawConn is a hand-rolled MPD text-protocol connection, grounded on
// fhs/gompd/v2's own Client implementation (same command-quoting and
// line-parsing rules) but kept separate from it so the idle loop can hold
// a second, duplicated handle to the same socket for the noidle
// interrupt: gompd's Client dials and owns its connection internally and
// has no hook to share one with another reader, so the one piece of wire
// protocol parsing rmpc needs direct control over is reimplemented here.
type rawConn struct {
	nc   net.Conn
	text *textproto.Conn
}

func dialRaw(network, addr string) (*rawConn, error) {
	nc, err := net.Dial(network, addr)
	if err != nil {
		return nil, err
	}
	text := textproto.NewConn(nc)
	line, err := text.ReadLine()
	if err != nil {
		nc.Close()
		return nil, err
	}
	if !strings.HasPrefix(line, "OK MPD") {
		nc.Close()
		return nil, textproto.ProtocolError("no greeting: " + line)
	}
	return &rawConn{nc: nc, text: text}, nil
}

func (rc *rawConn) Close() error {
	if rc.text == nil {
		return nil
	}
	rc.printfLine("close")
	err := rc.text.Close()
	rc.text = nil
	return err
}

// dupInterruptWriter duplicates the underlying socket's file descriptor so
// the interrupter goroutine can write "noidle\n" on an independent handle
// to the same connection while the worker goroutine is blocked reading
// the idle response, mirroring TcpStream::try_clone in the source this is
// adapted from.
func (rc *rawConn) dupInterruptWriter() (net.Conn, error) {
	type fileConn interface {
		File() (*os.File, error)
	}
	fc, ok := rc.nc.(fileConn)
	if !ok {
		return nil, fmt.Errorf("mpdclient: connection type %T does not support fd duplication", rc.nc)
	}
	f, err := fc.File()
	if err != nil {
		return nil, fmt.Errorf("mpdclient: duplicate connection fd: %w", err)
	}
	defer f.Close()
	dup, err := net.FileConn(f)
	if err != nil {
		return nil, fmt.Errorf("mpdclient: wrap duplicated fd: %w", err)
	}
	return dup, nil
}

func (rc *rawConn) authenticate(password string) error {
	if password == "" {
		return nil
	}
	return rc.cmdOK("password %s", quote(password))
}

func (rc *rawConn) cmd(format string, args ...any) (uint, error) {
	id := rc.text.Next()
	rc.text.StartRequest(id)
	defer rc.text.EndRequest(id)
	if err := rc.printfLine(format, args...); err != nil {
		return 0, err
	}
	return id, nil
}

func (rc *rawConn) printfLine(format string, args ...any) error {
	fmt.Fprintf(rc.text.W, format, args...)
	rc.text.W.WriteByte('\n')
	return rc.text.W.Flush()
}

func (rc *rawConn) readLine() (string, error) {
	line, err := rc.text.ReadLine()
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(line, "ACK ") {
		return "", parseAck(line)
	}
	return line, nil
}

func parseAck(line string) error {
	cur := line[4:]
	var code, idx int
	if strings.HasPrefix(cur, "[") {
		sep := strings.Index(cur, "@")
		end := strings.Index(cur, "] ")
		if sep > 0 && end > 0 {
			code, _ = strconv.Atoi(cur[1:sep])
			idx, _ = strconv.Atoi(cur[sep+1 : end])
			cur = cur[end+2:]
		}
	}
	var cmdName string
	if strings.HasPrefix(cur, "{") {
		if end := strings.Index(cur, "} "); end > 0 {
			cmdName = cur[1:end]
			cur = cur[end+2:]
		}
	}
	return mpd.Error{
		Code:             mpd.ErrorCode(code),
		CommandListIndex: idx,
		CommandName:      cmdName,
		Message:          strings.TrimSpace(cur),
	}
}

func (rc *rawConn) readOKLine() error {
	line, err := rc.readLine()
	if err != nil {
		return err
	}
	if line != "OK" {
		return textproto.ProtocolError("unexpected response: " + line)
	}
	return nil
}

func (rc *rawConn) readAttrs() (mpd.Attrs, error) {
	attrs := make(mpd.Attrs)
	for {
		line, err := rc.readLine()
		if err != nil {
			return nil, err
		}
		if line == "OK" {
			return attrs, nil
		}
		i := strings.Index(line, ": ")
		if i < 0 {
			return nil, textproto.ProtocolError("can't parse line: " + line)
		}
		attrs[line[:i]] = line[i+2:]
	}
}

func (rc *rawConn) readAttrsList(startKey string) ([]mpd.Attrs, error) {
	var out []mpd.Attrs
	startKey += ": "
	for {
		line, err := rc.readLine()
		if err != nil {
			return nil, err
		}
		if line == "OK" {
			return out, nil
		}
		if strings.HasPrefix(line, startKey) {
			out = append(out, mpd.Attrs{})
		}
		if len(out) == 0 {
			return nil, textproto.ProtocolError("unexpected: " + line)
		}
		i := strings.Index(line, ": ")
		if i < 0 {
			return nil, textproto.ProtocolError("can't parse line: " + line)
		}
		out[len(out)-1][line[:i]] = line[i+2:]
	}
}

func (rc *rawConn) readChangedList() ([]string, error) {
	var out []string
	for {
		line, err := rc.readLine()
		if err != nil {
			return nil, err
		}
		if line == "OK" {
			return out, nil
		}
		if !strings.HasPrefix(line, "changed: ") {
			return nil, textproto.ProtocolError("unexpected: " + line)
		}
		out = append(out, line[len("changed: "):])
	}
}

func (rc *rawConn) cmdOK(format string, args ...any) error {
	if _, err := rc.cmd(format, args...); err != nil {
		return err
	}
	return rc.readOKLine()
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' || c == '\'' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Idle subscribes to the given subsystems and blocks until MPD reports a
// change or the interrupter writes noidle on the duplicated handle.
func (rc *rawConn) Idle(subsystems ...string) ([]string, error) {
	if _, err := rc.cmd("idle %s", strings.Join(subsystems, " ")); err != nil {
		return nil, err
	}
	return rc.readChangedList()
}

// NoIdle is only ever called from the interrupter goroutine, over the
// duplicated handle, never the worker's own rawConn.
func noIdleOn(w net.Conn) error {
	_, err := w.Write([]byte("noidle\n"))
	return err
}

// --- Typed command surface, mirroring the subset of gompd's Client rmpc uses ---

func (rc *rawConn) Status() (mpdmodel.Status, error) {
	if _, err := rc.cmd("status"); err != nil {
		return mpdmodel.Status{}, err
	}
	attrs, err := rc.readAttrs()
	if err != nil {
		return mpdmodel.Status{}, err
	}
	return mpdmodel.StatusFromAttrs(attrs), nil
}

func (rc *rawConn) CurrentSong() (mpdmodel.Song, error) {
	if _, err := rc.cmd("currentsong"); err != nil {
		return mpdmodel.Song{}, err
	}
	attrs, err := rc.readAttrs()
	if err != nil {
		return mpdmodel.Song{}, err
	}
	return mpdmodel.SongFromAttrs(attrs), nil
}

func (rc *rawConn) PlaylistInfo() (mpdmodel.Queue, error) {
	if _, err := rc.cmd("playlistinfo"); err != nil {
		return mpdmodel.Queue{}, err
	}
	list, err := rc.readAttrsList("file")
	if err != nil {
		return mpdmodel.Queue{}, err
	}
	q := mpdmodel.Queue{Songs: make([]mpdmodel.Song, len(list))}
	for i, a := range list {
		q.Songs[i] = mpdmodel.SongFromAttrs(a)
	}
	return q, nil
}

// ListInfo lists the contents of uri, grouping attribute lines under
// whichever entry-start key ("directory"/"file"/"playlist") introduced
// them, the same grouping gompd's own ListInfo uses.
func (rc *rawConn) ListInfo(uri string) ([]mpdmodel.DirOrSong, error) {
	if _, err := rc.cmd("lsinfo %s", quote(uri)); err != nil {
		return nil, err
	}

	var entries []mpd.Attrs
	var kinds []string
	for {
		line, err := rc.readLine()
		if err != nil {
			return nil, err
		}
		if line == "OK" {
			break
		}

		kind := ""
		switch {
		case strings.HasPrefix(line, "directory: "):
			kind = "directory"
		case strings.HasPrefix(line, "file: "):
			kind = "file"
		case strings.HasPrefix(line, "playlist: "):
			kind = "playlist"
		}
		if kind != "" {
			entries = append(entries, mpd.Attrs{})
			kinds = append(kinds, kind)
		}
		if len(entries) == 0 {
			return nil, textproto.ProtocolError("unexpected: " + line)
		}
		i := strings.Index(line, ": ")
		if i < 0 {
			return nil, textproto.ProtocolError("can't parse line: " + line)
		}
		entries[len(entries)-1][line[:i]] = line[i+2:]
	}

	out := make([]mpdmodel.DirOrSong, 0, len(entries))
	for i, attrs := range entries {
		switch kinds[i] {
		case "directory":
			out = append(out, mpdmodel.NewDirEntry(mpdmodel.Dir{
				Name:         path.Base(attrs["directory"]),
				FullPath:     attrs["directory"],
				LastModified: parseMpdTime(attrs["Last-Modified"]),
				Kind:         mpdmodel.DirKindDirectory,
			}))
		case "file":
			out = append(out, mpdmodel.NewSongEntry(mpdmodel.SongFromAttrs(attrs)))
		}
	}
	return out, nil
}

func parseMpdTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (rc *rawConn) Play(pos int) error {
	if pos < 0 {
		return rc.cmdOK("play")
	}
	return rc.cmdOK("play %d", pos)
}

func (rc *rawConn) PlayID(id int) error {
	if id < 0 {
		return rc.cmdOK("playid")
	}
	return rc.cmdOK("playid %d", id)
}

func (rc *rawConn) Pause(pause bool) error {
	if pause {
		return rc.cmdOK("pause 1")
	}
	return rc.cmdOK("pause 0")
}

func (rc *rawConn) Next() error     { return rc.cmdOK("next") }
func (rc *rawConn) Previous() error { return rc.cmdOK("previous") }
func (rc *rawConn) Stop() error     { return rc.cmdOK("stop") }

func (rc *rawConn) SetVolume(v int) error { return rc.cmdOK("setvol %d", v) }

func (rc *rawConn) SeekCur(d time.Duration, relative bool) error {
	if relative {
		return rc.cmdOK("seekcur %+f", d.Seconds())
	}
	return rc.cmdOK("seekcur %f", d.Seconds())
}

func (rc *rawConn) Random(on bool) error  { return rc.cmdOK("random %s", boolFlag(on)) }
func (rc *rawConn) Repeat(on bool) error  { return rc.cmdOK("repeat %s", boolFlag(on)) }
func (rc *rawConn) Consume(on bool) error { return rc.cmdOK("consume %s", boolFlag(on)) }

func (rc *rawConn) Single(mode mpdmodel.TriState) error {
	switch mode {
	case mpdmodel.TriOneshot:
		return rc.cmdOK("single oneshot")
	case mpdmodel.TriOn:
		return rc.cmdOK("single 1")
	default:
		return rc.cmdOK("single 0")
	}
}

func (rc *rawConn) Add(uri string) error { return rc.cmdOK("add %s", quote(uri)) }
func (rc *rawConn) Clear() error         { return rc.cmdOK("clear") }

func (rc *rawConn) GetVolume() (int, error) {
	if _, err := rc.cmd("getvol"); err != nil {
		return 0, err
	}
	attrs, err := rc.readAttrs()
	if err != nil {
		return 0, err
	}
	v, _ := strconv.Atoi(attrs["volume"])
	return v, nil
}

// albumArtChunk issues one "albumart"/"readpicture" request at offset and
// returns the declared total size plus this chunk's bytes. A response
// that reaches "OK" before a "binary: " line means no art is embedded
// (total is 0, chunk is nil) — the caller falls back accordingly.
func (rc *rawConn) albumArtChunk(cmdName, uri string, offset int) (total int, chunk []byte, err error) {
	if _, err := rc.cmd("%s %s %d", cmdName, quote(uri), offset); err != nil {
		return 0, nil, err
	}
	for {
		line, err := rc.readLine()
		if err != nil {
			return 0, nil, err
		}
		switch {
		case strings.HasPrefix(line, "size: "):
			total, _ = strconv.Atoi(strings.TrimPrefix(line, "size: "))
		case strings.HasPrefix(line, "type: "):
			// unused: the caller sniffs image type from the bytes themselves
		case strings.HasPrefix(line, "binary: "):
			n, _ := strconv.Atoi(strings.TrimPrefix(line, "binary: "))
			buf := make([]byte, n)
			if _, err := io.ReadFull(rc.text.R, buf); err != nil {
				return 0, nil, err
			}
			if err := rc.readOKLine(); err != nil {
				return 0, nil, err
			}
			return total, buf, nil
		case line == "OK":
			return total, nil, nil
		default:
			return 0, nil, textproto.ProtocolError("albumart: unexpected line: " + line)
		}
	}
}

// AlbumArt fetches the full cover-file art for uri via MPD's
// "albumart" command, chunked per the binary protocol (readpicture uses
// the tag-embedded picture; albumart uses a sibling cover file — both
// share the same offset/size/binary framing).
func (rc *rawConn) AlbumArt(uri string) ([]byte, error) {
	return rc.fetchBinary("albumart", uri)
}

// ReadPicture fetches the tag-embedded picture for uri via MPD's
// "readpicture" command.
func (rc *rawConn) ReadPicture(uri string) ([]byte, error) {
	return rc.fetchBinary("readpicture", uri)
}

func (rc *rawConn) fetchBinary(cmdName, uri string) ([]byte, error) {
	var out []byte
	offset := 0
	for {
		total, chunk, err := rc.albumArtChunk(cmdName, uri, offset)
		if err != nil {
			return nil, err
		}
		if total == 0 || len(chunk) == 0 {
			return out, nil
		}
		out = append(out, chunk...)
		offset += len(chunk)
		if offset >= total {
			return out, nil
		}
	}
}

func boolFlag(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
