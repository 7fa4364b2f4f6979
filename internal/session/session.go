package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/giobyte8/imgresize/internal/export"
	"github.com/giobyte8/imgresize/internal/models"
	"github.com/giobyte8/imgresize/internal/raster"
	"github.com/giobyte8/imgresize/internal/source"
	"github.com/giobyte8/imgresize/internal/state"
	"github.com/giobyte8/imgresize/internal/telemetry"
	"github.com/giobyte8/imgresize/internal/telemetry/metrics"
)

// Decoder turns the bytes of a picked file into a SourceImage
type Decoder func(name string, data []byte) (*models.SourceImage, error)

type Options struct {
	Resampler raster.Resampler
	Exporter  export.Exporter
	Sink      export.Sink
	Presenter Presenter
	Telemetry *telemetry.TelemetrySvc

	// Defaults to source.Decode
	Decode Decoder
}

// Session is one resizer instance: one image, one scale, one output
// format. Loads, renders and exports run in the background; each load
// and render is numbered and only the most recent one may update the
// session.
type Session struct {
	id   uuid.UUID
	opts Options

	mu        sync.Mutex
	st        state.State
	preview   *image.RGBA
	loadSeq   uint64
	renderSeq uint64

	inflight sync.WaitGroup
}

func New(opts Options) *Session {
	if opts.Resampler == nil {
		opts.Resampler = raster.BiLinearResampler{}
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewNoopTelemetrySvc()
	}
	if opts.Exporter == nil {
		opts.Exporter = export.NewNativeExporter(opts.Resampler, opts.Telemetry)
	}
	if opts.Sink == nil {
		opts.Sink = export.NewDirSink(".")
	}
	if opts.Presenter == nil {
		opts.Presenter = discardPresenter{}
	}
	if opts.Decode == nil {
		opts.Decode = source.Decode
	}

	return &Session{
		id:   uuid.New(),
		opts: opts,
		st:   state.Initial(),
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Snapshot of the current state
func (s *Session) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Most recently applied preview surface, nil when there is none. The
// returned image is never written to again by the session.
func (s *Session) Preview() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Blocks until every operation started so far has completed
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Starts loading data as a new source image. The previous image is
// discarded immediately. Returns the load request number.
func (s *Session) Load(ctx context.Context, name string, data []byte) uint64 {
	return s.startLoad(ctx, name, func() ([]byte, error) {
		return data, nil
	})
}

// Like Load, reading the file at path in the background
func (s *Session) LoadFile(ctx context.Context, path string) uint64 {
	return s.startLoad(ctx, filepath.Base(path), func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		return data, nil
	})
}

func (s *Session) startLoad(
	ctx context.Context,
	name string,
	read func() ([]byte, error),
) uint64 {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.st = state.Apply(s.st, state.LoadStarted{Seq: seq, Name: name}).State
	s.dropPreviewLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	slog.Debug("Loading image", "session", s.id, "name", name, "seq", seq)

	go func() {
		defer s.inflight.Done()

		data, err := read()
		var src *models.SourceImage
		if err == nil {
			src, err = s.opts.Decode(name, data)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			src, err = nil, ctxErr
		}

		var event state.Event = state.LoadSucceeded{Seq: seq, Source: src}
		if err != nil {
			event = state.LoadFailed{Seq: seq, Err: err}
		}

		s.mu.Lock()
		res := state.Apply(s.st, event)
		var stale state.ErrStaleLoad
		if errors.As(res.Err, &stale) {
			s.mu.Unlock()
			slog.Debug("Discarding stale load", "session", s.id, "seq", seq)
			return
		}
		s.st = res.State
		if res.Render {
			s.scheduleRenderLocked(ctx)
		}
		snapshot := s.st
		s.mu.Unlock()

		if res.Err != nil {
			s.opts.Telemetry.Metrics().Increment(
				metrics.ImageLoadFailed,
				map[string]string{"name": name},
			)
		} else {
			s.opts.Telemetry.Metrics().Increment(
				metrics.ImageLoaded,
				map[string]string{
					"mimeType": src.MIMEType,
					"width":    fmt.Sprintf("%d", src.Width),
					"height":   fmt.Sprintf("%d", src.Height),
				},
			)
		}

		s.opts.Presenter.Present(Outcome{
			Op:    OpLoad,
			Seq:   seq,
			State: snapshot,
			Err:   res.Err,
		})
	}()

	return seq
}

// Moves the slider to percent
func (s *Session) SetSlider(ctx context.Context, percent int) error {
	return s.dispatch(ctx, state.SliderMoved{Percent: percent})
}

// Types text into the numeric field. Invalid text is kept as a draft
// and the error is returned; the committed scale does not change.
func (s *Session) SetScaleText(ctx context.Context, text string) error {
	return s.dispatch(ctx, state.TextEdited{Text: text})
}

// Puts the scale back to 100%
func (s *Session) ResetScale(ctx context.Context) error {
	return s.dispatch(ctx, state.ScaleReset{})
}

func (s *Session) ChooseFormat(format models.OutputFormat) error {
	return s.dispatch(context.Background(), state.FormatChosen{Format: format})
}

// Discards the image and returns scale and format to their defaults
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state.Apply(s.st, state.Cleared{}).State
	s.dropPreviewLocked()
	slog.Debug("Session cleared", "session", s.id)
}

func (s *Session) dispatch(ctx context.Context, e state.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := state.Apply(s.st, e)
	s.st = res.State
	if res.Render {
		s.scheduleRenderLocked(ctx)
	}

	return res.Err
}

// Invalidates in-flight renders and forgets the current preview
func (s *Session) dropPreviewLocked() {
	s.renderSeq++
	s.preview = nil
}

func (s *Session) scheduleRenderLocked(ctx context.Context) {
	s.renderSeq++
	seq := s.renderSeq
	img := s.st.Source.Image
	factor := s.st.Scale.Scale()
	s.inflight.Add(1)

	go func() {
		defer s.inflight.Done()

		canvas := raster.NewCanvas()
		canvas.Render(img, factor, s.opts.Resampler)

		s.mu.Lock()
		if seq != s.renderSeq || ctx.Err() != nil {
			s.mu.Unlock()
			slog.Debug("Discarding stale render", "session", s.id, "seq", seq)
			return
		}
		s.preview = canvas.Image()
		snapshot := s.st
		s.mu.Unlock()

		s.opts.Telemetry.Metrics().Increment(
			metrics.PreviewRendered,
			map[string]string{"resampler": s.opts.Resampler.Name()},
		)

		s.opts.Presenter.Present(Outcome{
			Op:      OpRender,
			Seq:     seq,
			State:   snapshot,
			Preview: canvas.Image(),
			Width:   canvas.Width(),
			Height:  canvas.Height(),
		})
	}()
}

// Starts an export of the current image at the committed scale and
// format. Only a missing image is reported synchronously; the result
// of the export itself goes to the presenter.
func (s *Session) Download(ctx context.Context) error {
	s.mu.Lock()
	if !s.st.Ready() {
		s.mu.Unlock()
		return state.ErrNoImage
	}
	req := export.Request{
		Source: s.st.Source,
		Scale:  s.st.Scale.Scale(),
		Format: s.st.Format,
	}
	snapshot := s.st
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()

		outcome := Outcome{Op: OpExport, State: snapshot}

		d, err := s.opts.Exporter.Export(ctx, req)
		if err == nil {
			outcome.Width, outcome.Height = d.Width, d.Height
			outcome.Path, err = s.opts.Sink.Save(d)
		}

		if err != nil {
			outcome.Err = fmt.Errorf("export failed: %w", err)
			s.opts.Telemetry.Metrics().Increment(
				metrics.ExportFailed,
				map[string]string{"format": req.Format.String()},
			)
		}

		s.opts.Presenter.Present(outcome)
	}()

	return nil
}
