package state

import (
	"fmt"

	"github.com/giobyte8/imgresize/internal/models"
)

// Apply is the transition function of the resizer. It never mutates
// its input.
func Apply(s State, e Event) Result {
	switch e := e.(type) {
	case LoadStarted:
		// Previous image is discarded right away. The output format is
		// kept across uploads, only Cleared resets it.
		next := s
		next.Phase = PhaseLoading
		next.Source = nil
		next.LoadSeq = e.Seq
		return Result{State: next}

	case LoadSucceeded:
		if s.Phase != PhaseLoading || e.Seq != s.LoadSeq {
			return Result{State: s, Err: ErrStaleLoad{Seq: e.Seq, Latest: s.LoadSeq}}
		}
		if e.Source == nil {
			return Apply(s, LoadFailed{Seq: e.Seq, Err: fmt.Errorf("decoder returned no image")})
		}

		next := s
		next.Phase = PhaseReady
		next.Source = e.Source
		next.Scale = s.Scale.Reset()
		return Result{State: next, Render: true}

	case LoadFailed:
		if s.Phase != PhaseLoading || e.Seq != s.LoadSeq {
			return Result{State: s, Err: ErrStaleLoad{Seq: e.Seq, Latest: s.LoadSeq}}
		}

		next := s
		next.Phase = PhaseEmpty
		next.Source = nil
		next.Scale = s.Scale.Reset()
		return Result{State: next, Err: e.Err}

	case SliderMoved:
		if !s.Ready() {
			return Result{State: s, Err: ErrNoImage}
		}

		next := s
		next.Scale = s.Scale.SetFromSlider(e.Percent)
		return Result{State: next, Render: true}

	case TextEdited:
		if !s.Ready() {
			return Result{State: s, Err: ErrNoImage}
		}

		controller, err := s.Scale.SetFromText(e.Text)
		next := s
		next.Scale = controller
		if err != nil {
			return Result{State: next, Err: err}
		}
		return Result{State: next, Render: true}

	case ScaleReset:
		if !s.Ready() {
			return Result{State: s, Err: ErrNoImage}
		}

		next := s
		next.Scale = s.Scale.Reset()
		return Result{State: next, Render: true}

	case FormatChosen:
		if e.Format != models.FormatPNG && e.Format != models.FormatJPG {
			return Result{State: s, Err: fmt.Errorf("unsupported output format %q", e.Format)}
		}

		// Format only matters at export time, nothing to redraw
		next := s
		next.Format = e.Format
		return Result{State: next}

	case Cleared:
		next := Initial()
		// Keep the sequence so loads started before the clear are
		// recognized as stale
		next.LoadSeq = s.LoadSeq
		return Result{State: next}

	default:
		return Result{State: s, Err: fmt.Errorf("unknown event %T", e)}
	}
}
