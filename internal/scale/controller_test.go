package scale

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestNewController_Defaults(t *testing.T) {
	c := NewController()
	if c.Scale() != 1 {
		t.Fatalf("expected scale 1, got %v", c.Scale())
	}
	if c.Display() != "100" || c.Draft() != "100" {
		t.Fatalf("expected display and draft '100', got %q / %q", c.Display(), c.Draft())
	}
	if c.Percent() != 100 {
		t.Fatalf("expected slider at 100, got %d", c.Percent())
	}
}

func TestSetFromSlider_AllPercents(t *testing.T) {
	for p := MinPercent; p <= MaxPercent; p++ {
		c := NewController().SetFromSlider(p)
		if math.Abs(c.Scale()-float64(p)/100) > 1e-12 {
			t.Fatalf("percent %d: expected scale %v, got %v", p, float64(p)/100, c.Scale())
		}
		if c.Display() != strconv.Itoa(p) {
			t.Fatalf("percent %d: expected display %q, got %q", p, strconv.Itoa(p), c.Display())
		}
		if c.Percent() != p {
			t.Fatalf("percent %d: slider position %d", p, c.Percent())
		}
		if c.Dirty() {
			t.Fatalf("percent %d: controller should not be dirty", p)
		}
	}
}

func TestSetFromSlider_ClampsLikeRangeWidget(t *testing.T) {
	if got := NewController().SetFromSlider(5).Percent(); got != MinPercent {
		t.Errorf("expected clamp to %d, got %d", MinPercent, got)
	}
	if got := NewController().SetFromSlider(500).Percent(); got != MaxPercent {
		t.Errorf("expected clamp to %d, got %d", MaxPercent, got)
	}
}

func TestSetFromText_InvalidKeepsCommittedScale(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{"abc", ErrNotANumber},
		{"", ErrNotANumber},
		{"NaN", ErrNotANumber},
		{"Inf", ErrNotANumber},
		{"12px", ErrNotANumber},
		{"5", ErrOutOfRange},
		{"9.99", ErrOutOfRange},
		{"200.5", ErrOutOfRange},
		{"-50", ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			base := NewController().SetFromSlider(75)
			next, err := base.SetFromText(tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if next.Scale() != base.Scale() {
				t.Errorf("committed scale changed from %v to %v", base.Scale(), next.Scale())
			}
			if next.Display() != "75" {
				t.Errorf("committed display changed to %q", next.Display())
			}
			if next.Draft() != tt.text {
				t.Errorf("expected draft %q, got %q", tt.text, next.Draft())
			}
			if next.Percent() != 75 {
				t.Errorf("slider moved to %d", next.Percent())
			}
		})
	}
}

func TestSetFromText_ValidCommits(t *testing.T) {
	tests := []struct {
		text    string
		scale   float64
		display string
		percent int
	}{
		{"10", 0.10, "10", 10},
		{"200", 2.00, "200", 200},
		{" 50 ", 0.50, "50", 50},
		{"50.5", 0.505, "50.5", 51},
		{"1e2", 1.00, "1e2", 100},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			next, err := NewController().SetFromText(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(next.Scale()-tt.scale) > 1e-12 {
				t.Errorf("expected scale %v, got %v", tt.scale, next.Scale())
			}
			if next.Display() != tt.display || next.Draft() != tt.display {
				t.Errorf("expected display %q, got %q / %q", tt.display, next.Display(), next.Draft())
			}
			if next.Percent() != tt.percent {
				t.Errorf("expected slider %d, got %d", tt.percent, next.Percent())
			}
		})
	}
}

func TestSetFromText_RecoversAfterInvalidDraft(t *testing.T) {
	c, err := NewController().SetFromText("5")
	if err == nil {
		t.Fatal("expected error for '5'")
	}
	if !c.Dirty() || c.Draft() != "5" {
		t.Fatalf("expected dirty draft '5', got %q", c.Draft())
	}

	c, err = c.SetFromText("50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Scale() != 0.5 || c.Dirty() {
		t.Fatalf("expected committed 0.5 and clean draft, got %v dirty=%v", c.Scale(), c.Dirty())
	}
}

func TestReset_Idempotent(t *testing.T) {
	c, _ := NewController().SetFromSlider(30).SetFromText("abc")

	once := c.Reset()
	twice := once.Reset()
	if once != twice {
		t.Fatalf("reset is not idempotent: %+v vs %+v", once, twice)
	}
	if once.Scale() != 1 || once.Display() != "100" || once.Draft() != "100" {
		t.Fatalf("unexpected reset state: %+v", once)
	}
}

func TestZeroValueBehavesAsDefault(t *testing.T) {
	var c Controller
	if c.Scale() != 1 || c.Display() != "100" || c.Draft() != "100" || c.Dirty() {
		t.Fatalf("zero controller should read as default, got %+v", c)
	}

	next, err := c.SetFromText("abc")
	if err == nil {
		t.Fatal("expected error")
	}
	if next.Scale() != 1 || next.Display() != "100" {
		t.Fatalf("unexpected state after invalid text: %+v", next)
	}
}
