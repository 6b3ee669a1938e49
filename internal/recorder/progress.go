package recorder

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"demoreel/internal/logging"
)

// Progress receives frame counts for each clip.
type Progress interface {
	Start(segment Segment, frames int)
	Add(n int)
	Finish()
}

// NewProgress returns a terminal progress bar when w is a TTY and a
// logger-backed reporter otherwise.
func NewProgress(w io.Writer, logger *slog.Logger) Progress {
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return &barProgress{out: w}
		}
	}
	return &logProgress{logger: logger, every: 10 * time.Second}
}

type barProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func (p *barProgress) Start(segment Segment, frames int) {
	p.bar = progressbar.NewOptions(frames,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription(fmt.Sprintf("Segment %d", segment.Number)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *barProgress) Add(n int) {
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

// logProgress emits a debug line at most every interval.
type logProgress struct {
	logger  *slog.Logger
	every   time.Duration
	segment int
	total   int
	done    int
	last    time.Time
}

func (p *logProgress) Start(segment Segment, frames int) {
	p.segment = segment.Number
	p.total = frames
	p.done = 0
	p.last = time.Now()
}

func (p *logProgress) Add(n int) {
	p.done += n
	if time.Since(p.last) < p.every || p.logger == nil {
		return
	}
	p.last = time.Now()
	p.logger.Debug("recording progress",
		logging.Int(logging.FieldSegment, p.segment),
		logging.Int("frames", p.done),
		logging.Int("total", p.total),
	)
}

func (p *logProgress) Finish() {}

type nopProgress struct{}

func (nopProgress) Start(Segment, int) {}
func (nopProgress) Add(int)            {}
func (nopProgress) Finish()            {}
