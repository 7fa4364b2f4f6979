package state

import (
	"fmt"

	"github.com/giobyte8/imgresize/internal/models"
)

type Event interface {
	isEvent()
}

// A new file was picked, Seq is its load request number
type LoadStarted struct {
	Seq  uint64
	Name string
}

type LoadSucceeded struct {
	Seq    uint64
	Source *models.SourceImage
}

type LoadFailed struct {
	Seq uint64
	Err error
}

type SliderMoved struct {
	Percent int
}

type TextEdited struct {
	Text string
}

// Reset link next to the slider, only the scale goes back to 100%
type ScaleReset struct{}

type FormatChosen struct {
	Format models.OutputFormat
}

// Reset/upload button, everything goes back to the initial state
type Cleared struct{}

func (LoadStarted) isEvent()   {}
func (LoadSucceeded) isEvent() {}
func (LoadFailed) isEvent()    {}
func (SliderMoved) isEvent()   {}
func (TextEdited) isEvent()    {}
func (ScaleReset) isEvent()    {}
func (FormatChosen) isEvent()  {}
func (Cleared) isEvent()       {}

// ErrStaleLoad is reported when a load completes after a newer load
// was started or the session was cleared
type ErrStaleLoad struct {
	Seq    uint64
	Latest uint64
}

func (e ErrStaleLoad) Error() string {
	return fmt.Sprintf("load #%d superseded by #%d", e.Seq, e.Latest)
}
