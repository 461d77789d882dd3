package eventloop

import (
	"testing"

	"rmpc/internal/mpdmodel"
)

func TestLoadAlbumArtCmdNoCurrentSongShowsDefault(t *testing.T) {
	m := testModel(t)
	m.currentSong = mpdmodel.Song{}

	cmd := m.loadAlbumArtCmd()
	if cmd == nil {
		t.Fatalf("expected a non-nil cmd even with no current song")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil msg, got %v", msg)
	}
}

func TestSongChangeEnvUppercasesMetadataKeys(t *testing.T) {
	song := mpdmodel.Song{
		File:     "song.mp3",
		Metadata: map[string][]string{"artist": {"Test Artist"}, "album": {"Test Album"}},
	}
	env := songChangeEnv(song)

	want := map[string]string{
		"FILE":   "song.mp3",
		"ARTIST": "Test Artist",
		"ALBUM":  "Test Album",
	}
	for k, v := range want {
		found := false
		for _, kv := range env {
			if kv == k+"="+v {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected env to contain %s=%s, got %v", k, v, env)
		}
	}
}

func TestDispatchCommandActionYtDlpUnavailable(t *testing.T) {
	m := testModel(t)
	before := len(m.messages)

	if cmd := m.dispatchCommandAction("yt-search:test query"); cmd != nil {
		t.Fatalf("expected nil cmd when yt-dlp is unavailable")
	}
	if len(m.messages) != before+1 {
		t.Fatalf("expected a status message pushed when yt-dlp is unavailable")
	}
}

func TestDispatchCommandActionUnknownFallsBackToStatus(t *testing.T) {
	m := testModel(t)
	before := len(m.messages)

	m.dispatchCommandAction("some-unrecognized-action")
	if len(m.messages) != before+1 {
		t.Fatalf("expected the unrecognized action surfaced as a status message")
	}
}
