// Package ytdlp orchestrates `yt-dlp` to search for and download audio
// for queue items that are not in the local library, caching downloads
// under cache_dir/<host>/<id>.<ext> as spec.md §4.3 describes.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client wraps a cache directory and the resolved yt-dlp binary path.
type Client struct {
	cacheDir string
	binPath  string
}

// New resolves "yt-dlp" on PATH and ensures the per-host cache directory
// cacheDir/youtube exists, mirroring the source's YtDlp::new (which bails
// if the binary is missing).
func New(cacheDir string) (*Client, error) {
	bin, err := exec.LookPath("yt-dlp")
	if err != nil {
		return nil, fmt.Errorf("ytdlp: yt-dlp not found on PATH: %w", err)
	}
	hostDir := filepath.Join(cacheDir, "youtube")
	if err := os.MkdirAll(hostDir, 0o755); err != nil {
		return nil, fmt.Errorf("ytdlp: create cache dir: %w", err)
	}
	return &Client{cacheDir: hostDir, binPath: bin}, nil
}

// SearchKind distinguishes a free-text search from fetching the videos
// of a named playlist/channel.
type SearchKind int

const (
	SearchQuery SearchKind = iota
	SearchPlaylist
)

// SearchResult is one entry from `yt-dlp -J --flat-playlist`'s output.
type SearchResult struct {
	ID       string
	Title    string
	Uploader string
	Duration float64
}

type flatEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
	Entries  []flatEntry `json:"entries"`
}

// Search runs `yt-dlp -J --flat-playlist` against query (a search
// expression for SearchQuery, or a playlist/channel URL for
// SearchPlaylist) and returns up to limit parsed results.
func (c *Client) Search(ctx context.Context, query string, kind SearchKind, limit int) ([]SearchResult, error) {
	target := query
	if kind == SearchQuery {
		n := limit
		if n <= 0 {
			n = 10
		}
		target = fmt.Sprintf("ytsearch%d:%s", n, query)
	}

	cmd := exec.CommandContext(ctx, c.binPath, "-J", "--flat-playlist", target)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ytdlp: search %q: %w", query, err)
	}

	var root flatEntry
	if err := json.Unmarshal(out, &root); err != nil {
		return nil, fmt.Errorf("ytdlp: parse search output: %w", err)
	}

	entries := root.Entries
	if entries == nil {
		entries = []flatEntry{root}
	}
	results := make([]SearchResult, 0, len(entries))
	for _, e := range entries {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, SearchResult{ID: e.ID, Title: e.Title, Uploader: e.Uploader, Duration: e.Duration})
	}
	return results, nil
}

// CachedPath checks whether id has already been downloaded by scanning
// cacheDir for a file whose stem matches id, returning it without
// invoking yt-dlp again.
func (c *Client) CachedPath(id string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(c.cacheDir, id+".*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// Download fetches id (a YouTube video ID) as audio-only, embedding
// thumbnail and metadata, returning the resulting file path. A
// previously-cached download short-circuits the subprocess spawn.
func (c *Client) Download(ctx context.Context, id string) (string, error) {
	if path, ok := c.CachedPath(id); ok {
		return path, nil
	}

	outputTemplate := filepath.Join(c.cacheDir, "%(id)s.%(ext)s")
	url := "https://www.youtube.com/watch?v=" + id

	cmd := exec.CommandContext(ctx, c.binPath,
		"-x", "--embed-thumbnail", "--embed-metadata",
		"-f", "bestaudio",
		"--convert-thumbnails", "jpg",
		"--output", outputTemplate,
		url,
	)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ytdlp: download %s: %w", id, err)
	}

	path, ok := c.CachedPath(id)
	if !ok {
		return "", fmt.Errorf("ytdlp: download %s completed but no cached file found", id)
	}
	return path, nil
}

// ResolvePlaylist expands a playlist/channel URL into its member video
// IDs without downloading anything, for queueing whole playlists.
func (c *Client) ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	results, err := c.Search(ctx, playlistURL, SearchPlaylist, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

// VideoIDFromURL extracts the video id from a full YouTube URL, or
// returns the input unchanged if it already looks like a bare id.
func VideoIDFromURL(s string) string {
	if !strings.Contains(s, "://") {
		return s
	}
	if idx := strings.Index(s, "v="); idx >= 0 {
		rest := s[idx+2:]
		if amp := strings.IndexByte(rest, '&'); amp >= 0 {
			rest = rest[:amp]
		}
		return rest
	}
	if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
