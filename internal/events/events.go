// Package events defines the Bubble Tea message types the event loop
// consumes and the idle-event to MPD-query translation table.
package events

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"rmpc/internal/mpdmodel"
)

// IdleSubsystem enumerates the MPD idle subsystems the loop subscribes to.
type IdleSubsystem int

const (
	SubsystemPlayer IdleSubsystem = iota
	SubsystemMixer
	SubsystemPlaylist
	SubsystemOptions
	SubsystemDatabase
	SubsystemUpdate
	SubsystemStoredPlaylist
	SubsystemOutput
	SubsystemPartition
	SubsystemSticker
	SubsystemSubscription
	SubsystemMessage
	SubsystemNeighbor
	SubsystemMount
)

var subsystemNames = map[string]IdleSubsystem{
	"player":         SubsystemPlayer,
	"mixer":          SubsystemMixer,
	"playlist":       SubsystemPlaylist,
	"options":        SubsystemOptions,
	"database":       SubsystemDatabase,
	"update":         SubsystemUpdate,
	"stored_playlist": SubsystemStoredPlaylist,
	"output":         SubsystemOutput,
	"partition":      SubsystemPartition,
	"sticker":        SubsystemSticker,
	"subscription":   SubsystemSubscription,
	"message":        SubsystemMessage,
	"neighbor":       SubsystemNeighbor,
	"mount":          SubsystemMount,
}

// ParseSubsystem maps an MPD idle subsystem name to its IdleSubsystem.
func ParseSubsystem(name string) (IdleSubsystem, bool) {
	s, ok := subsystemNames[name]
	return s, ok
}

// Query is the action the event loop performs when translating an idle
// event, per the table in the idle-event translation rules. A Query with
// an empty Kind is a pure UI notification with no MPD round trip.
type Query struct {
	Kind QueryKind
}

type QueryKind int

const (
	QueryNone QueryKind = iota
	QueryGetVolume
	QueryGetStatus
	QueryPlaylistInfo
)

// Translate returns the queries a given idle event should trigger. Mixer
// prefers get_volume when the server supports getvol, falling back to
// get_status otherwise; Playlist and Sticker both resolve to
// playlist_info.
func Translate(sub IdleSubsystem, supportsGetVol bool) []Query {
	switch sub {
	case SubsystemMixer:
		if supportsGetVol {
			return []Query{{Kind: QueryGetVolume}}
		}
		return []Query{{Kind: QueryGetStatus}}
	case SubsystemOptions, SubsystemPlayer:
		return []Query{{Kind: QueryGetStatus}}
	case SubsystemPlaylist, SubsystemSticker:
		return []Query{{Kind: QueryPlaylistInfo}}
	case SubsystemStoredPlaylist, SubsystemDatabase, SubsystemUpdate:
		return nil
	default:
		return nil
	}
}

// StatusLevel classifies a Status message for status-bar styling.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusWarn
	StatusError
)

// UserKeyInputMsg forwards a parsed key event into the UI after
// common/tab/global keybinding resolution has already been attempted.
type UserKeyInputMsg struct{ Key tea.KeyMsg }

// UserMouseInputMsg forwards a mouse event.
type UserMouseInputMsg struct{ Mouse tea.MouseMsg }

// StatusMsg inserts text into the message ring and surfaces it in the
// status bar for Duration.
type StatusMsg struct {
	Text     string
	Level    StatusLevel
	Duration time.Duration
}

// LogMsg carries raw log output destined for the message ring.
type LogMsg struct{ Bytes []byte }

// IdleEventMsg reports that MPD fired an idle event for Kind.
type IdleEventMsg struct{ Kind IdleSubsystem }

// RequestRenderMsg marks the loop's needs_render flag; the actual draw is
// deferred to the next frame boundary.
type RequestRenderMsg struct{}

// WorkResultKind discriminates the WorkDoneMsg payload.
type WorkResultKind int

const (
	WorkLyricsIndexed WorkResultKind = iota
	WorkImageResized
	WorkYtDlpDownloaded
	WorkAlbumArtLoaded
	WorkMpdCommandFinished
)

// WorkDoneMsg reports the result of background work dispatched through
// the work worker.
type WorkDoneMsg struct {
	Kind WorkResultKind

	// MpdCommandFinished fields.
	RequestID string
	Target    string
	Data      any

	// Generic payload / error for the other Kind values.
	Payload any
	Err     error
}

// ResizedMsg reports a terminal resize in terminal cells.
type ResizedMsg struct{ Columns, Rows int }

// ReconnectedMsg and LostConnectionMsg transition the UI into/out of a
// degraded connectivity mode.
type ReconnectedMsg struct{}
type LostConnectionMsg struct{ Err error }

// SongChangedMsg fires when the loop detects songid changed across two
// consecutive Status responses.
type SongChangedMsg struct {
	Previous *mpdmodel.Song
	Current  *mpdmodel.Song
}

// ExitMsg requests the event loop shut down.
type ExitMsg struct{}
