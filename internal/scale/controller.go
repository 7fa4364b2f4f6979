package scale

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinPercent     = 10
	MaxPercent     = 200
	DefaultPercent = 100
)

var (
	ErrNotANumber = errors.New("scale is not a number")
	ErrOutOfRange = fmt.Errorf(
		"scale must be between %d and %d percent",
		MinPercent,
		MaxPercent,
	)
)

// Controller holds the committed scale factor and the text shown in
// the numeric field. The draft may hold invalid input while the user
// is typing; the committed value is only replaced by a valid one.
//
// Controller is a value type, every transition returns a new one.
type Controller struct {
	committed float64
	display   string
	draft     string
}

func NewController() Controller {
	return Controller{
		committed: 1,
		display:   strconv.Itoa(DefaultPercent),
		draft:     strconv.Itoa(DefaultPercent),
	}
}

// Committed scale factor, always within [0.10, 2.00]
func (c Controller) Scale() float64 {
	if c.committed == 0 {
		return 1
	}
	return c.committed
}

// Slider position for the committed scale
func (c Controller) Percent() int {
	return int(math.Round(c.Scale() * 100))
}

// Display string of the committed value
func (c Controller) Display() string {
	if c.display == "" {
		return strconv.Itoa(DefaultPercent)
	}
	return c.display
}

// Text currently in the numeric field. Equals Display() unless the
// last text edit was rejected.
func (c Controller) Draft() string {
	if c.display == "" {
		return c.Display()
	}
	return c.draft
}

// Reports whether the field shows text that was not committed
func (c Controller) Dirty() bool {
	return c.Draft() != c.Display()
}

// Commits percent/100. The range widget clamps its value, so out of
// range input is clamped here as well.
func (c Controller) SetFromSlider(percent int) Controller {
	percent = min(max(percent, MinPercent), MaxPercent)
	text := strconv.Itoa(percent)

	return Controller{
		committed: float64(percent) / 100,
		display:   text,
		draft:     text,
	}
}

// Parses text as a percentage. On failure the returned controller
// keeps the committed value and only the draft changes, along with
// an error wrapping ErrNotANumber or ErrOutOfRange.
func (c Controller) SetFromText(text string) (Controller, error) {
	next := Controller{
		committed: c.Scale(),
		display:   c.Display(),
		draft:     text,
	}

	percent, err := ParsePercent(text)
	if err != nil {
		return next, err
	}

	trimmed := strings.TrimSpace(text)
	return Controller{
		committed: percent / 100,
		display:   trimmed,
		draft:     trimmed,
	}, nil
}

func (c Controller) Reset() Controller {
	return NewController()
}

// Parses a percentage typed by the user and checks it is in range
func ParsePercent(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	percent, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(percent) || math.IsInf(percent, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}

	if percent < MinPercent || percent > MaxPercent {
		return 0, fmt.Errorf("%w: got %s", ErrOutOfRange, trimmed)
	}

	return percent, nil
}
