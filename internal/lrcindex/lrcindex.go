// Package lrcindex walks a lyrics directory indexing `.lrc` front-matter
// (artist/title/album/length) so the currently playing song can be
// matched against a lyrics file without re-parsing every file on every
// song change, mirroring the front-matter-only read stopping at the
// first timestamp line from the Rust LrcIndex this is grounded on.
package lrcindex

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"rmpc/internal/mpdmodel"
)

// Index is a concurrency-safe, rebuildable collection of indexed lyric
// files. Zero value is usable.
type Index struct {
	mu      sync.RWMutex
	entries []mpdmodel.LrcIndexEntry
}

// Len reports how many files are currently indexed.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Build walks dir recursively, replacing the index wholesale with every
// `.lrc` file that carries enough front-matter (artist+title+album) to
// be indexed. Files failing to parse, or missing required fields, are
// skipped rather than aborting the walk.
func (x *Index) Build(dir string) error {
	var entries []mpdmodel.LrcIndexEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".lrc") {
			return nil
		}
		entry, ok, err := readFrontMatter(path)
		if err != nil || !ok {
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lrcindex: walk %s: %w", dir, err)
	}

	x.mu.Lock()
	x.entries = entries
	x.mu.Unlock()
	return nil
}

// IndexFile parses a single path and merges it into the index, replacing
// any existing entry for the same path. Used for IndexSingleLrc requests
// (the remote index-lrc command) instead of a full rebuild.
func (x *Index) IndexFile(path string) error {
	entry, ok, err := readFrontMatter(path)
	if err != nil {
		return fmt.Errorf("lrcindex: index %s: %w", path, err)
	}
	if !ok {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for i, e := range x.entries {
		if e.Path == path {
			x.entries[i] = entry
			return nil
		}
	}
	x.entries = append(x.entries, entry)
	return nil
}

// Find returns the first entry whose (artist, title, album) match and
// whose length differs from length by less than 3 seconds, per
// LrcIndexEntry.Matches. A zero length is not a wildcard: an entry
// without a length tag only matches a length under 3 seconds.
func (x *Index) Find(artist, title, album string, length time.Duration) (mpdmodel.LrcIndexEntry, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, e := range x.entries {
		if e.Matches(artist, title, album, length) {
			return e, true
		}
	}
	return mpdmodel.LrcIndexEntry{}, false
}

// readFrontMatter reads path line by line, collecting `[key: value]`
// metadata lines and stopping at the first line whose bracket content
// starts with a digit (a timestamp, i.e. lyrics have begun). Returns
// ok=false if artist, title, or album is missing, matching the source's
// "not enough metadata to index" skip.
func readFrontMatter(path string) (mpdmodel.LrcIndexEntry, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return mpdmodel.LrcIndexEntry{}, false, err
	}
	defer f.Close()

	var title, artist, album string
	var length time.Duration
	var haveLength bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rest, ok := strings.CutPrefix(line, "[")
		if !ok {
			break
		}
		meta, after, ok := strings.Cut(rest, "]")
		if !ok {
			break
		}
		if after != "" {
			break
		}
		if meta == "" {
			break
		}
		if meta[0] >= '0' && meta[0] <= '9' {
			break
		}
		key, value, ok := strings.Cut(meta, ":")
		if !ok {
			break
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "ti":
			title = value
		case "ar":
			artist = value
		case "al":
			album = value
		case "length":
			if d, err := parseLength(value); err == nil {
				length = d
				haveLength = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return mpdmodel.LrcIndexEntry{}, false, err
	}
	if artist == "" || title == "" || album == "" {
		return mpdmodel.LrcIndexEntry{}, false, nil
	}
	entry := mpdmodel.LrcIndexEntry{Path: path, Title: title, Artist: artist, Album: album}
	if haveLength {
		entry.Length = length
	}
	return entry, true, nil
}

// parseLength parses an LRC "length" field, either "mm:ss" or a bare
// second count.
func parseLength(s string) (time.Duration, error) {
	if mins, secs, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(strings.TrimSpace(mins))
		if err != nil {
			return 0, err
		}
		sec, err := strconv.ParseFloat(strings.TrimSpace(secs), 64)
		if err != nil {
			return 0, err
		}
		return time.Duration(m)*time.Minute + time.Duration(sec*float64(time.Second)), nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(sec * float64(time.Second)), nil
}
