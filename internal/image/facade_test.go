package image

import (
	"io"
	"testing"
)

type fakeData struct{ tag string }

func (fakeData) backendName() string { return "fake" }

type fakeBackend struct {
	created []string
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) CreateData(data []byte, area Rect, maxSize int, halign, valign Align) (EncodedData, error) {
	b.created = append(b.created, string(data))
	return fakeData{tag: string(data)}, nil
}

func (b *fakeBackend) Display(w io.Writer, data EncodedData, bg *Color) error { return nil }
func (b *fakeBackend) Hide(w io.Writer, area Rect, bg *Color) error           { return nil }
func (b *fakeBackend) Cleanup(area Rect) error                                { return nil }

// manualSubmitter captures submitted jobs instead of running them, so the
// test controls exactly when each encode "completes".
type manualSubmitter struct {
	pending []func()
}

func (m *manualSubmitter) submit(job func() (EncodedData, error), onDone func(EncodedData, error)) {
	m.pending = append(m.pending, func() {
		data, err := job()
		onDone(data, err)
	})
}

func (m *manualSubmitter) runOldest() {
	if len(m.pending) == 0 {
		return
	}
	job := m.pending[0]
	m.pending = m.pending[1:]
	job()
}

func TestFacadeCoalescesRequestsMadeBeforeCompletion(t *testing.T) {
	backend := &fakeBackend{}
	sub := &manualSubmitter{}
	var ready []string
	f := NewFacade(backend, nil, sub.submit, func(data EncodedData) {
		ready = append(ready, data.(fakeData).tag)
	}, nil)

	f.Show([]byte("data1"))
	f.Show([]byte("data2"))
	f.Show([]byte("data3"))

	if len(sub.pending) != 1 {
		t.Fatalf("expected exactly one dispatched job before completion, got %d", len(sub.pending))
	}
	if len(backend.created) != 0 {
		t.Fatalf("CreateData must not run until the test drives the job, got %d calls", len(backend.created))
	}

	sub.runOldest()

	if len(backend.created) != 1 || backend.created[0] != "data1" {
		t.Fatalf("expected the first dispatch to encode data1, got %v", backend.created)
	}
	if len(sub.pending) != 1 {
		t.Fatalf("expected exactly one more dispatch after the first completes, got %d", len(sub.pending))
	}

	sub.runOldest()

	if len(backend.created) != 2 || backend.created[1] != "data3" {
		t.Fatalf("expected the second dispatch to encode the freshest request (data3), got %v", backend.created)
	}
	if len(sub.pending) != 0 {
		t.Fatalf("data2 must never be dispatched, but queue has %d pending jobs", len(sub.pending))
	}
	if len(ready) != 1 || ready[0] != "data3" {
		t.Fatalf("expected exactly one ready callback for data3, got %v", ready)
	}
}

func TestFacadeRetriesNewestRequestOnEncodeFailure(t *testing.T) {
	backend := &fakeBackend{}
	sub := &manualSubmitter{}
	var errs int
	f := NewFacade(backend, nil, func(job func() (EncodedData, error), onDone func(EncodedData, error)) {
		sub.pending = append(sub.pending, func() {
			onDone(nil, io.ErrUnexpectedEOF)
		})
	}, nil, func(error) { errs++ })

	f.Show([]byte("data1"))
	f.Show([]byte("data2"))

	sub.runOldest()

	if errs != 1 {
		t.Fatalf("expected one error callback, got %d", errs)
	}
}

func TestFacadeHideStopsShowing(t *testing.T) {
	backend := &fakeBackend{}
	sub := &manualSubmitter{}
	f := NewFacade(backend, nil, sub.submit, nil, nil)

	f.Show([]byte("data1"))
	if err := f.Hide(io.Discard, nil); err != nil {
		t.Fatalf("Hide returned error: %v", err)
	}

	sub.runOldest()

	if len(backend.created) != 1 {
		t.Fatalf("Hide must not cancel an already-dispatched encode, got %d calls", len(backend.created))
	}
}
