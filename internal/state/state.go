package state

import (
	"errors"
	"fmt"

	"github.com/giobyte8/imgresize/internal/models"
	"github.com/giobyte8/imgresize/internal/scale"
)

var ErrNoImage = errors.New("no image loaded")

type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the single value describing a resizer session. Source is
// set only in PhaseReady, LoadSeq identifies the load that is allowed
// to complete while in PhaseLoading.
type State struct {
	Phase   Phase
	Source  *models.SourceImage
	Scale   scale.Controller
	Format  models.OutputFormat
	LoadSeq uint64
}

func Initial() State {
	return State{
		Phase:  PhaseEmpty,
		Scale:  scale.NewController(),
		Format: models.DefaultFormat,
	}
}

func (s State) Ready() bool {
	return s.Phase == PhaseReady && s.Source != nil
}

// Result of applying an event. Render asks the caller to redraw the
// preview from the new state. Err reports a rejected event, in which
// case State may still differ from the input (e.g. a scale draft).
type Result struct {
	State  State
	Render bool
	Err    error
}
