package session

import (
	"image"

	"github.com/giobyte8/imgresize/internal/state"
)

type Op string

const (
	OpLoad   Op = "load"
	OpRender Op = "render"
	OpExport Op = "export"
)

// Outcome is the completion of an asynchronous operation. Err is nil
// on success. Outcomes of superseded requests are never delivered.
type Outcome struct {
	Op  Op
	Seq uint64

	// Session state right after the outcome was applied
	State state.State

	// Set for successful renders
	Preview *image.RGBA

	// Set for successful exports
	Path   string
	Width  int
	Height int

	Err error
}

// Presenter is the single place outcomes are reported to. It decides
// whether and how failures are shown to the user.
type Presenter interface {
	Present(o Outcome)
}

type PresenterFunc func(o Outcome)

func (f PresenterFunc) Present(o Outcome) {
	f(o)
}

type discardPresenter struct{}

func (discardPresenter) Present(Outcome) {}
