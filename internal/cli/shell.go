package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/giobyte8/imgresize/internal/models"
	"github.com/giobyte8/imgresize/internal/preview"
	"github.com/giobyte8/imgresize/internal/raster"
	"github.com/giobyte8/imgresize/internal/scale"
	"github.com/giobyte8/imgresize/internal/session"
	"github.com/giobyte8/imgresize/internal/state"
)

const prompt = "> "

var ErrUnknownCommand = errors.New("unknown command")

const helpText = `Commands:
  load <path>        pick an image file
  slider <10-200>    move the resolution slider
  scale <percent>    type a percentage into the numeric field
  reset              set the resolution back to 100%
  format png|jpg     choose the download format
  download           save resized-image.<format> to the output directory
  clear              discard the image, scale and format
  status             show the current state
  preview            draw the current preview again
  help               show this help
  quit               exit
`

// Shell reads commands, forwards them to a session and prints every
// outcome the session reports. It is the session's Presenter.
type Shell struct {
	session  *session.Session
	renderer *preview.Renderer

	outMu sync.Mutex
	out   io.Writer
}

// renderer may be nil to disable terminal previews
func NewShell(out io.Writer, renderer *preview.Renderer) *Shell {
	return &Shell{
		out:      out,
		renderer: renderer,
	}
}

func (sh *Shell) Attach(s *session.Session) {
	sh.session = s
}

func (sh *Shell) printf(format string, args ...any) {
	sh.outMu.Lock()
	defer sh.outMu.Unlock()
	fmt.Fprintf(sh.out, format, args...)
}

// Reads commands from in until EOF, quit or ctx is done. Each command
// completes, including its background work, before the next one is read.
func (sh *Shell) Run(ctx context.Context, in io.Reader, interactive bool) error {
	if sh.session == nil {
		return fmt.Errorf("shell has no session attached")
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	next := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}

			select {
			case <-next:
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if interactive {
			sh.printf("%s", prompt)
		}

		var line string
		var ok bool
		select {
		case line, ok = <-lines:
		case <-ctx.Done():
			return ctx.Err()
		}
		if !ok {
			break
		}

		quit, err := sh.Execute(ctx, line)
		sh.session.Wait()
		if err != nil {
			sh.printf("%s\n", err)
		}
		if quit {
			return nil
		}
		next <- struct{}{}
	}

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("failed to read commands: %w", err)
		}
	default:
	}
	return nil
}

// Runs a single command line. Errors returned here are user mistakes
// meant to be printed, not failures of the shell.
func (sh *Shell) Execute(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	slog.Debug("Executing command", "command", cmd, "argument", arg)

	switch strings.ToLower(cmd) {
	case "load", "open":
		if arg == "" {
			return false, fmt.Errorf("usage: load <path>")
		}
		sh.session.LoadFile(ctx, arg)
		return false, nil

	case "slider":
		percent, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("usage: slider <%d-%d>", scale.MinPercent, scale.MaxPercent)
		}
		return false, sh.explain(sh.session.SetSlider(ctx, percent))

	case "scale":
		return false, sh.explain(sh.session.SetScaleText(ctx, arg))

	case "reset":
		return false, sh.explain(sh.session.ResetScale(ctx))

	case "format":
		format, err := models.ParseOutputFormat(arg)
		if err != nil {
			return false, fmt.Errorf("usage: format png|jpg")
		}
		if err := sh.session.ChooseFormat(format); err != nil {
			return false, err
		}
		sh.printf("Output format: %s\n", strings.ToUpper(format.String()))
		return false, nil

	case "download", "save":
		return false, sh.explain(sh.session.Download(ctx))

	case "clear":
		sh.session.Clear()
		sh.printf("Cleared. Load an image to start again.\n")
		return false, nil

	case "status":
		sh.printStatus(sh.session.State())
		return false, nil

	case "preview":
		if !sh.session.State().Ready() {
			return false, sh.explain(state.ErrNoImage)
		}
		sh.printPreview(sh.session.State(), sh.session.Preview())
		return false, nil

	case "help", "?":
		sh.printf("%s", helpText)
		return false, nil

	case "quit", "exit":
		return true, nil

	default:
		return false, fmt.Errorf("%w %q, type 'help' for a list", ErrUnknownCommand, cmd)
	}
}

// Turns session errors into messages for the user
func (sh *Shell) explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, state.ErrNoImage):
		return fmt.Errorf("no image loaded, use 'load <path>' first")
	case errors.Is(err, scale.ErrNotANumber), errors.Is(err, scale.ErrOutOfRange):
		st := sh.session.State()
		return fmt.Errorf(
			"resolution stays at %d%% (field shows %q, enter %d-%d)",
			st.Scale.Percent(),
			st.Scale.Draft(),
			scale.MinPercent,
			scale.MaxPercent,
		)
	default:
		return err
	}
}

func (sh *Shell) Present(o session.Outcome) {
	switch o.Op {
	case session.OpLoad:
		if o.Err != nil {
			if errors.Is(o.Err, context.Canceled) {
				return
			}
			slog.Warn("Image load failed", "error", o.Err)
			sh.printf("Could not load image: %s\n", o.Err)
			return
		}
		src := o.State.Source
		sh.printf("Loaded %s (%dx%d, %s)\n", src.Name, src.Width, src.Height, src.MIMEType)

	case session.OpRender:
		sh.printPreview(o.State, o.Preview)

	case session.OpExport:
		if o.Err != nil {
			slog.Error("Download failed", "error", o.Err)
			sh.printf("Download failed: %s\n", o.Err)
			return
		}
		sh.printf("Saved %s (%dx%d)\n", o.Path, o.Width, o.Height)
	}
}

func (sh *Shell) printPreview(st state.State, img *image.RGBA) {
	if img == nil {
		return
	}

	sh.printf(
		"Resolution: %d%% (%dx%d)\n",
		st.Scale.Percent(),
		img.Bounds().Dx(),
		img.Bounds().Dy(),
	)
	if sh.renderer != nil {
		sh.printf("%s\n", sh.renderer.Render(img))
	}
}

func (sh *Shell) printStatus(st state.State) {
	if !st.Ready() {
		sh.printf(
			"Status: %s, format %s\n",
			st.Phase,
			strings.ToUpper(st.Format.String()),
		)
		return
	}

	src := st.Source
	w, h := raster.TargetSize(src.Width, src.Height, st.Scale.Scale())
	sh.printf(
		"Image: %s (%dx%d)\nResolution: %d%% -> %dx%d\nField: %s\nFormat: %s (%s)\n",
		src.Name,
		src.Width,
		src.Height,
		st.Scale.Percent(),
		w,
		h,
		st.Scale.Draft(),
		strings.ToUpper(st.Format.String()),
		st.Format.DownloadName(),
	)
}
