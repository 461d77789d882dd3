package image

import (
	"bytes"
	"io"
	"sync"
)

// Method selects which Backend a Facade should use; Auto defers to
// runtime detection (see detect.go).
type Method int

const (
	MethodAuto Method = iota
	MethodKitty
	MethodIterm2
	MethodSixel
	MethodUeberzugX11
	MethodUeberzugWayland
	MethodBlock
	MethodNone
)

// WorkSubmitter is the facade's one dependency on the work worker: run
// job off the UI thread, then call onDone with its result. Implementers
// must call onDone exactly once and may do so from any goroutine.
type WorkSubmitter func(job func() (EncodedData, error), onDone func(EncodedData, error))

// Facade is the coalescing front-end every pane talks to instead of a
// concrete Backend. It guarantees at most one encode in flight and that
// only the freshest request's output is ever surfaced, per §4.4. Encoding
// runs off-thread via WorkSubmitter; once coalescing settles on a final
// result, onReady delivers it back to the UI thread (typically by posting
// a Bubble Tea message), which is the only context allowed to call
// Display/Hide/Cleanup against the real terminal.
type Facade struct {
	backend Backend
	submit  WorkSubmitter
	onReady func(EncodedData)
	onError func(error)

	mu           sync.Mutex
	current      []byte
	defaultArt   []byte
	lastArea     Rect
	isShowing    bool
	requestQueue [][]byte
}

// NewFacade builds a Facade around the chosen backend.
func NewFacade(backend Backend, defaultArt []byte, submit WorkSubmitter, onReady func(EncodedData), onError func(error)) *Facade {
	return &Facade{backend: backend, defaultArt: defaultArt, submit: submit, onReady: onReady, onError: onError}
}

// SetSize records the target rect subsequent encodes should fit.
func (f *Facade) SetSize(area Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArea = area
}

// ShowDefault displays the built-in placeholder art.
func (f *Facade) ShowDefault() {
	f.Show(f.defaultArt)
}

// ShowCurrent redisplays whatever was last shown, e.g. after a resize.
func (f *Facade) ShowCurrent() {
	f.mu.Lock()
	data := f.current
	f.mu.Unlock()
	if data == nil {
		return
	}
	f.Show(data)
}

// Show is the coalescing entry point: push the request, and only if no
// encode was already in flight, dispatch one to the work worker.
func (f *Facade) Show(data []byte) {
	f.mu.Lock()
	f.isShowing = true
	f.current = data
	f.requestQueue = append(f.requestQueue, data)
	alreadyInFlight := len(f.requestQueue) > 1
	area := f.lastArea
	f.mu.Unlock()

	if alreadyInFlight {
		return
	}

	f.dispatch(data, area)
}

func (f *Facade) dispatch(data []byte, area Rect) {
	f.submit(
		func() (EncodedData, error) { return f.backend.CreateData(data, area, 0, AlignCenter, AlignCenter) },
		f.onEncodeDone,
	)
}

func (f *Facade) onEncodeDone(encoded EncodedData, err error) {
	if err != nil {
		f.encodeFailed(err)
		return
	}

	f.mu.Lock()
	if !f.isShowing {
		f.requestQueue = nil
		f.mu.Unlock()
		return
	}
	n := len(f.requestQueue)
	if n == 0 {
		f.mu.Unlock()
		if f.onReady != nil {
			f.onReady(encoded)
		}
		return
	}
	newest := f.requestQueue[n-1]
	hasNewer := n > 1
	f.requestQueue = nil
	if hasNewer {
		// Keep the re-dispatched request queued so a Show arriving while
		// it encodes sees an encode in flight.
		f.requestQueue = [][]byte{newest}
	}
	area := f.lastArea
	f.mu.Unlock()

	if hasNewer {
		f.dispatch(newest, area)
		return
	}

	if f.onReady != nil {
		f.onReady(encoded)
	}
}

// encodeFailed pops the newest queued request and, if it is not the one
// that just failed, retries with it, discarding everything else, matching
// image_processing_failed in facade.rs.
func (f *Facade) encodeFailed(err error) {
	if f.onError != nil {
		f.onError(err)
	}

	f.mu.Lock()
	n := len(f.requestQueue)
	if n == 0 {
		f.mu.Unlock()
		return
	}
	newest := f.requestQueue[n-1]
	shouldRetry := n > 1
	f.requestQueue = nil
	f.mu.Unlock()

	if shouldRetry {
		f.Show(newest)
	}
}

// Display renders already-encoded data via the backend. Must be called
// from the UI thread only, in response to the onReady callback.
func (f *Facade) Display(w io.Writer, data EncodedData, bg *Color) error {
	f.mu.Lock()
	showing := f.isShowing
	area := f.lastArea
	f.mu.Unlock()
	if !showing {
		return nil
	}
	if err := f.backend.Hide(w, area, bg); err != nil {
		return err
	}
	return f.backend.Display(w, data, bg)
}

// Hide stops showing album art and clears in-flight state.
func (f *Facade) Hide(w io.Writer, bg *Color) error {
	f.mu.Lock()
	f.isShowing = false
	area := f.lastArea
	f.mu.Unlock()
	return f.backend.Hide(w, area, bg)
}

// Cleanup releases the backend's held resources.
func (f *Facade) Cleanup() error {
	f.mu.Lock()
	area := f.lastArea
	f.isShowing = false
	f.mu.Unlock()
	return f.backend.Cleanup(area)
}

// BackendName reports which backend this facade wraps, for mismatch
// diagnostics.
func (f *Facade) BackendName() string {
	if f.backend == nil {
		return "none"
	}
	return f.backend.Name()
}

// RenderInline renders already-encoded data to a plain string instead of
// a terminal-attached io.Writer. Only meaningful for backends whose
// output is safe to embed directly inside composited text (the block
// backend's half-block glyphs plus SGR color codes); protocol backends
// that rely on absolute cursor positioning (Kitty/iTerm2/Sixel/Ueberzug)
// must keep going through Display against the real terminal.
func (f *Facade) RenderInline(data EncodedData) (string, error) {
	var buf bytes.Buffer
	if err := f.backend.Display(&buf, data, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}
