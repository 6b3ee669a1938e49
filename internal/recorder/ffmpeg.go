package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"demoreel/internal/textutil"
)

// Grabber captures one encoded still of the screen.
type Grabber interface {
	Grab(ctx context.Context) ([]byte, error)
}

// FrameWriter appends encoded stills to a video container.
type FrameWriter interface {
	WriteFrame(frame []byte) error
	Close() error
}

// WriterFactory opens a FrameWriter for the output path. Its failure is the
// one recording error that is fatal.
type WriterFactory func(ctx context.Context, path string) (FrameWriter, error)

const stderrTailLines = 8

// FFmpegGrabber grabs single PNG frames with ffmpeg's platform screen device.
type FFmpegGrabber struct {
	Binary  string
	GOOS    string
	Display string
}

// Args returns the ffmpeg arguments for one frame grab.
func (g FFmpegGrabber) Args() []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	args = append(args, grabInput(g.GOOS, g.Display)...)
	return append(args, "-frames:v", "1", "-f", "image2pipe", "-vcodec", "png", "-")
}

func grabInput(goos, display string) []string {
	switch goos {
	case "windows":
		return []string{"-f", "gdigrab", "-i", "desktop"}
	case "darwin":
		// avfoundation takes a device index; X11-style values mean "use the default screen".
		if display == "" || strings.HasPrefix(display, ":") {
			display = "1"
		}
		return []string{"-f", "avfoundation", "-i", display + ":none"}
	default:
		if display == "" {
			display = ":0.0"
		}
		return []string{"-f", "x11grab", "-i", display}
	}
}

// Grab implements Grabber.
func (g FFmpegGrabber) Grab(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, g.Binary, g.Args()...) //nolint:gosec
	var stdout bytes.Buffer
	stderr := textutil.NewLineTail(stderrTailLines)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg grab: %w: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, errors.New("ffmpeg grab: empty frame")
	}
	return stdout.Bytes(), nil
}

// FFmpegWriterOptions configures the ffmpeg frame writer.
type FFmpegWriterOptions struct {
	Binary    string
	FrameRate int
	Width     int
	Height    int
}

// Args returns the ffmpeg arguments that read PNG stills on stdin and write
// an H.264 MP4 at the session frame size.
func (o FFmpegWriterOptions) Args(path string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "image2pipe",
		"-framerate", strconv.Itoa(o.FrameRate),
		"-i", "-",
		"-vf", fmt.Sprintf("scale=%d:%d", o.Width, o.Height),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(o.FrameRate),
		path,
	}
}

// NewFFmpegWriterFactory returns a WriterFactory that spawns one ffmpeg
// encoder per recording.
func NewFFmpegWriterFactory(opts FFmpegWriterOptions) WriterFactory {
	return func(ctx context.Context, path string) (FrameWriter, error) {
		return openFFmpegWriter(opts, path)
	}
}

type ffmpegWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *textutil.LineTail
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// The encoder outlives the recording context so a cancelled session can
// still finalize its container.
func openFFmpegWriter(opts FFmpegWriterOptions, path string) (*ffmpegWriter, error) {
	cmd := exec.Command(opts.Binary, opts.Args(path)...) //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg writer: %w", err)
	}

	w := &ffmpegWriter{
		cmd:    cmd,
		stdin:  stdin,
		stderr: textutil.NewLineTail(stderrTailLines),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(w.done)
		_, _ = io.Copy(w.stderr, stderrPipe)
	}()
	return w, nil
}

func (w *ffmpegWriter) WriteFrame(frame []byte) error {
	if _, err := w.stdin.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (w *ffmpegWriter) Close() error {
	w.closeOnce.Do(func() {
		_ = w.stdin.Close()
		<-w.done
		if err := w.cmd.Wait(); err != nil {
			w.closeErr = fmt.Errorf("ffmpeg writer: %w: %s", err, w.stderr.String())
		}
	})
	return w.closeErr
}
