// Package work implements the CPU-bound/side-effectful work worker of
// spec.md §4.3: one goroutine serializing lyrics indexing, image
// encoding, yt-dlp orchestration, and album-art loader subprocesses, so
// the UI thread never blocks on any of them. Each submitted job produces
// exactly one events.WorkDoneMsg delivered through the callback passed
// to NewWorker, mirroring the teacher's self-rescheduling tea.Cmd
// pattern (a worker goroutine feeding a channel that a tea.Cmd drains).
package work

import (
	"context"

	"rmpc/internal/albumart"
	"rmpc/internal/events"
	"rmpc/internal/image"
	"rmpc/internal/lrcindex"
	"rmpc/internal/ytdlp"
)

// Job is a unit of work; it runs on the worker goroutine and returns the
// WorkDoneMsg to deliver back to the event loop.
type Job func() events.WorkDoneMsg

// Worker runs submitted Jobs one at a time on a dedicated goroutine.
type Worker struct {
	jobs   chan Job
	deliver func(events.WorkDoneMsg)
	done   chan struct{}
}

// NewWorker starts the worker goroutine. deliver is invoked once per
// completed Job, from the worker goroutine — callers that need to reach
// the UI thread must have deliver hop onto whatever channel/Program.Send
// mechanism the event loop uses.
func NewWorker(deliver func(events.WorkDoneMsg)) *Worker {
	w := &Worker{
		jobs:    make(chan Job, 64),
		deliver: deliver,
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	for j := range w.jobs {
		w.deliver(j())
	}
	close(w.done)
}

// Submit enqueues job for execution. Safe to call from any goroutine.
func (w *Worker) Submit(job Job) { w.jobs <- job }

// Shutdown closes the queue and waits for the worker to drain and exit.
func (w *Worker) Shutdown() {
	close(w.jobs)
	<-w.done
}

// ResizeImageJob wraps a Backend.CreateData-shaped closure for dispatch
// through the worker, matching image.WorkSubmitter's contract so the
// image facade can submit through this same worker.
func ResizeImageJob(encode func() (image.EncodedData, error)) Job {
	return func() events.WorkDoneMsg {
		data, err := encode()
		return events.WorkDoneMsg{Kind: events.WorkImageResized, Payload: data, Err: err}
	}
}

// Submitter adapts a Worker to image.WorkSubmitter: the facade's encode
// closure is wrapped into a Job, and onDone is invoked on the worker
// goroutine as soon as the closure returns, so the facade gets its own
// typed callback instead of the generic union. The Job still returns a
// WorkImageResized WorkDoneMsg, which is delivered like any other.
func Submitter(w *Worker) image.WorkSubmitter {
	return func(job func() (image.EncodedData, error), onDone func(image.EncodedData, error)) {
		w.Submit(func() events.WorkDoneMsg {
			data, err := job()
			onDone(data, err)
			return events.WorkDoneMsg{Kind: events.WorkImageResized, Payload: data, Err: err}
		})
	}
}

// IndexLyricsJob walks lyricsDir, rebuilding idx wholesale.
func IndexLyricsJob(idx *lrcindex.Index, lyricsDir string) Job {
	return func() events.WorkDoneMsg {
		err := idx.Build(lyricsDir)
		return events.WorkDoneMsg{Kind: events.WorkLyricsIndexed, Payload: idx.Len(), Err: err}
	}
}

// IndexSingleLrcJob merges one file into idx without a full rebuild.
func IndexSingleLrcJob(idx *lrcindex.Index, path string) Job {
	return func() events.WorkDoneMsg {
		err := idx.IndexFile(path)
		return events.WorkDoneMsg{Kind: events.WorkLyricsIndexed, Payload: path, Err: err}
	}
}

// AlbumArtPayload is the WorkDoneMsg.Payload for a WorkAlbumArtLoaded
// result: the parsed loader result plus any non-fatal protocol warnings
// (unknown keys) logged by the caller.
type AlbumArtPayload struct {
	Result   albumart.Result
	Warnings []string
}

// LoadAlbumArtJob spawns the configured external loader for file.
func LoadAlbumArtJob(ctx context.Context, loaderPath, file string) Job {
	return func() events.WorkDoneMsg {
		result, warnings, err := albumart.Load(ctx, loaderPath, file)
		return events.WorkDoneMsg{
			Kind:    events.WorkAlbumArtLoaded,
			Payload: AlbumArtPayload{Result: result, Warnings: warnings},
			Err:     err,
		}
	}
}

// SearchYtJob runs a yt-dlp search/flat-playlist listing.
func SearchYtJob(ctx context.Context, client *ytdlp.Client, query string, kind ytdlp.SearchKind, limit int) Job {
	return func() events.WorkDoneMsg {
		results, err := client.Search(ctx, query, kind, limit)
		return events.WorkDoneMsg{Kind: events.WorkYtDlpDownloaded, Payload: results, Err: err}
	}
}

// YtDlpDownloadJob downloads id via client, caching the result.
func YtDlpDownloadJob(ctx context.Context, client *ytdlp.Client, id string) Job {
	return func() events.WorkDoneMsg {
		path, err := client.Download(ctx, id)
		return events.WorkDoneMsg{Kind: events.WorkYtDlpDownloaded, Payload: path, Err: err}
	}
}

// YtDlpResolvePlaylistJob expands a playlist URL into member video IDs.
func YtDlpResolvePlaylistJob(ctx context.Context, client *ytdlp.Client, playlistURL string) Job {
	return func() events.WorkDoneMsg {
		ids, err := client.ResolvePlaylist(ctx, playlistURL)
		return events.WorkDoneMsg{Kind: events.WorkYtDlpDownloaded, Payload: ids, Err: err}
	}
}

// CommandJob resolves a user-typed internal command (fn) into its
// follow-up MPD query result, routed back to the originating pane by
// requestID/target via WorkMpdCommandFinished.
func CommandJob(requestID, target string, fn func() (any, error)) Job {
	return func() events.WorkDoneMsg {
		data, err := fn()
		return events.WorkDoneMsg{
			Kind:      events.WorkMpdCommandFinished,
			RequestID: requestID,
			Target:    target,
			Data:      data,
			Err:       err,
		}
	}
}
