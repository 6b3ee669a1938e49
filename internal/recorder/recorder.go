package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/zoobzio/clockz"

	"demoreel/internal/config"
	"demoreel/internal/deps"
	"demoreel/internal/ledger"
	"demoreel/internal/logging"
	"demoreel/internal/textutil"
)

// Step names recorded in outcomes besides action names.
const (
	StepSpeech    = "speech"
	StepGrab      = "frame-grab"
	StepWrite     = "frame-write"
	StepReadiness = "readiness"
	StepFinalize  = "finalize"
)

const outcomeDetailLimit = 300

// Report summarizes a finished or interrupted recording.
type Report struct {
	OutputPath string
	Frames     int
	Elapsed    time.Duration
	SizeBytes  int64
	Outcomes   []ledger.Outcome
}

// Failures returns the outcomes that did not succeed.
func (r Report) Failures() []ledger.Outcome {
	var failed []ledger.Outcome
	for _, o := range r.Outcomes {
		if !o.OK {
			failed = append(failed, o)
		}
	}
	return failed
}

// Recorder plays a Script into a video file.
type Recorder struct {
	cfg       config.Recorder
	output    string
	lockPath  string
	script    Script
	grabber   Grabber
	newWriter WriterFactory
	speaker   Speaker
	runner    Runner
	probe     ReadinessProbe
	clock     clockz.Clock
	progress  Progress
	observer  func(ledger.Outcome)
	logger    *slog.Logger
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithScript replaces the default demo script.
func WithScript(script Script) Option {
	return func(r *Recorder) { r.script = script }
}

// WithGrabber replaces the ffmpeg screen grabber.
func WithGrabber(g Grabber) Option {
	return func(r *Recorder) { r.grabber = g }
}

// WithWriterFactory replaces the ffmpeg frame writer.
func WithWriterFactory(f WriterFactory) Option {
	return func(r *Recorder) { r.newWriter = f }
}

// WithSpeaker replaces the platform speech engine.
func WithSpeaker(s Speaker) Option {
	return func(r *Recorder) { r.speaker = s }
}

// WithRunner replaces the subprocess action runner.
func WithRunner(run Runner) Option {
	return func(r *Recorder) { r.runner = run }
}

// WithClock replaces the clock used for frame pacing and timing.
func WithClock(clock clockz.Clock) Option {
	return func(r *Recorder) {
		r.clock = clock
		r.probe.Clock = clock
	}
}

// WithProgress sets the progress reporter.
func WithProgress(p Progress) Option {
	return func(r *Recorder) { r.progress = p }
}

// WithOutput overrides the output path from config.
func WithOutput(path string) Option {
	return func(r *Recorder) { r.output = path }
}

// WithObserver receives every outcome as it is recorded.
func WithObserver(fn func(ledger.Outcome)) Option {
	return func(r *Recorder) { r.observer = fn }
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

// New builds a Recorder from cfg with ffmpeg and platform speech defaults.
func New(cfg *config.Config, opts ...Option) (*Recorder, error) {
	if cfg == nil {
		return nil, errors.New("recorder requires config")
	}
	ffmpeg := deps.ResolveFFmpegPath(cfg.Tools.FFmpeg)
	rc := cfg.Recorder

	r := &Recorder{
		cfg:      rc,
		output:   rc.OutputPath,
		lockPath: cfg.LockPath(),
		script:   DefaultScript(cfg),
		grabber:  FFmpegGrabber{Binary: ffmpeg, GOOS: runtime.GOOS, Display: rc.Display},
		newWriter: NewFFmpegWriterFactory(FFmpegWriterOptions{
			Binary:    ffmpeg,
			FrameRate: rc.FrameRate,
			Width:     rc.Width,
			Height:    rc.Height,
		}),
		speaker:  CommandSpeaker{Binary: cfg.SpeechBinary(), Rate: rc.SpeechRate},
		runner:   ExecRunner{},
		probe:    ReadinessProbe{URL: rc.HealthURL},
		clock:    clockz.RealClock,
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "recorder")
	if r.probe.Clock == nil {
		r.probe.Clock = r.clock
	}
	if rc.FrameRate <= 0 {
		return nil, fmt.Errorf("recorder: frame rate must be positive, got %d", rc.FrameRate)
	}
	if strings.TrimSpace(r.output) == "" {
		return nil, errors.New("recorder: output path is empty")
	}
	return r, nil
}

// Script returns the script the recorder will play.
func (r *Recorder) Script() Script {
	return r.script
}

// OutputPath returns where the video is written.
func (r *Recorder) OutputPath() string {
	return r.output
}

// session holds the per-run mutable state.
type session struct {
	writer    FrameWriter
	lastFrame []byte
	report    Report
}

// Run records the whole script. It fails before recording only when the
// session lock is held or the output cannot be opened. On cancellation it
// finalizes the container and returns the partial report with ctx.Err().
func (r *Recorder) Run(ctx context.Context) (Report, error) {
	lock := NewSessionLock(r.lockPath)
	if err := lock.Acquire(); err != nil {
		return Report{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			r.logger.Warn("failed to release session lock", logging.Error(err))
		}
	}()

	if err := os.MkdirAll(filepath.Dir(r.output), 0o755); err != nil {
		return Report{}, fmt.Errorf("create output directory: %w", err)
	}
	writer, err := r.newWriter(ctx, r.output)
	if err != nil {
		return Report{}, fmt.Errorf("open output %s: %w", r.output, err)
	}

	s := &session{writer: writer, report: Report{OutputPath: r.output}}
	start := r.clock.Now()
	r.logger.Info("recording started",
		logging.String("output", r.output),
		logging.Int("segments", len(r.script)),
		logging.Duration("length", r.script.Duration()),
		logging.Int("fps", r.cfg.FrameRate),
	)

	runErr := r.play(ctx, s)

	if err := writer.Close(); err != nil {
		r.record(s, ledger.Outcome{Name: StepFinalize, Detail: textutil.Summarize(err.Error(), outcomeDetailLimit)})
		logging.WarnWithHint(r.logger, "failed to finalize recording", "finalize_failed",
			"check ffmpeg output; the video file may be incomplete", logging.Error(err))
	}

	s.report.Elapsed = r.clock.Since(start)
	if info, statErr := os.Stat(r.output); statErr == nil {
		s.report.SizeBytes = info.Size()
	}

	if runErr != nil {
		r.logger.Warn("recording interrupted",
			logging.Int("frames", s.report.Frames),
			logging.Duration("elapsed", s.report.Elapsed),
		)
		return s.report, runErr
	}
	r.logger.Info("recording finished",
		logging.String("output", r.output),
		logging.Int("frames", s.report.Frames),
		logging.Int("failures", len(s.report.Failures())),
	)
	return s.report, nil
}

func (r *Recorder) play(ctx context.Context, s *session) error {
	for _, seg := range r.script {
		segLogger := r.logger.With(logging.Int(logging.FieldSegment, seg.Number))
		segLogger.Info(fmt.Sprintf("%s (%d sec)", seg.Title, int(seg.Duration().Seconds())))

		for _, step := range seg.Steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch {
			case step.Clip != nil:
				if err := r.playClip(ctx, s, seg, *step.Clip, segLogger); err != nil {
					return err
				}
			case step.Action != nil:
				r.runAction(ctx, s, seg, *step.Action, segLogger)
			}
		}
	}
	return ctx.Err()
}

func (r *Recorder) playClip(ctx context.Context, s *session, seg Segment, clip Clip, logger *slog.Logger) error {
	if clip.Narration != "" {
		logger.Info("narration", logging.String(logging.FieldStep, StepSpeech), logging.String("text", clip.Narration))
		if r.cfg.SpeechEnabled {
			began := r.clock.Now()
			if err := r.speaker.Say(ctx, clip.Narration); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.record(s, ledger.Outcome{
					Segment:  seg.Number,
					Name:     StepSpeech,
					Detail:   textutil.Summarize(err.Error(), outcomeDetailLimit),
					Duration: r.clock.Since(began),
				})
				logger.Warn("narration failed", logging.String(logging.FieldStep, StepSpeech), logging.Error(err))
			}
		}
	}
	return r.capture(ctx, s, seg, FramesFor(clip.Duration, r.cfg.FrameRate), logger)
}

// capture grabs and writes frames on a fixed 1/fps schedule. A failed grab
// repeats the previous frame so the clip keeps its length; grab and write
// failures are summarized as one outcome each per clip.
func (r *Recorder) capture(ctx context.Context, s *session, seg Segment, frames int, logger *slog.Logger) error {
	if frames <= 0 {
		return nil
	}
	interval := r.cfg.FrameInterval()
	r.progress.Start(seg, frames)
	defer r.progress.Finish()

	var (
		grabFailures, writeFailures int
		lastGrabErr, lastWriteErr   error
	)
	began := r.clock.Now()
	defer func() {
		if grabFailures > 0 {
			r.record(s, ledger.Outcome{
				Segment:  seg.Number,
				Name:     StepGrab,
				Detail:   fmt.Sprintf("%d of %d grabs failed: %s", grabFailures, frames, textutil.Summarize(lastGrabErr.Error(), outcomeDetailLimit)),
				Duration: r.clock.Since(began),
			})
			logger.Warn("frame grabs failed",
				logging.String(logging.FieldStep, StepGrab),
				logging.Int("failed", grabFailures),
				logging.Int("frames", frames),
				logging.Error(lastGrabErr),
			)
		}
		if writeFailures > 0 {
			r.record(s, ledger.Outcome{
				Segment:  seg.Number,
				Name:     StepWrite,
				Detail:   fmt.Sprintf("%d of %d writes failed: %s", writeFailures, frames, textutil.Summarize(lastWriteErr.Error(), outcomeDetailLimit)),
				Duration: r.clock.Since(began),
			})
			logger.Warn("frame writes failed",
				logging.String(logging.FieldStep, StepWrite),
				logging.Int("failed", writeFailures),
				logging.Error(lastWriteErr),
			)
		}
	}()

	for i := 0; i < frames; i++ {
		if i > 0 && interval > 0 {
			due := began.Add(time.Duration(i) * interval)
			if wait := due.Sub(r.clock.Now()); wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-r.clock.After(wait):
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := r.grabber.Grab(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			grabFailures++
			lastGrabErr = err
			frame = s.lastFrame
		} else {
			s.lastFrame = frame
		}
		if frame == nil {
			r.progress.Add(1)
			continue
		}
		if err := s.writer.WriteFrame(frame); err != nil {
			writeFailures++
			lastWriteErr = err
		} else {
			s.report.Frames++
		}
		r.progress.Add(1)
	}
	return nil
}

func (r *Recorder) runAction(ctx context.Context, s *session, seg Segment, action Action, logger *slog.Logger) {
	logger = logger.With(logging.String(logging.FieldStep, action.Name))
	logger.Info("running action", logging.String("command", strings.Join(action.Argv, " ")))

	actionCtx := ctx
	cancel := func() {}
	if action.Timeout > 0 {
		actionCtx, cancel = r.clock.WithTimeout(ctx, action.Timeout)
	}
	began := r.clock.Now()
	output, err := r.runner.Run(actionCtx, action)
	cancel()

	outcome := ledger.Outcome{
		Segment:  seg.Number,
		Name:     action.Name,
		OK:       err == nil,
		Duration: r.clock.Since(began),
	}
	if err != nil {
		outcome.Detail = textutil.Summarize(err.Error()+" "+output, outcomeDetailLimit)
		logger.Warn("action failed; continuing", logging.Error(err), logging.String("output", textutil.Summarize(output, outcomeDetailLimit)))
	} else {
		outcome.Detail = textutil.Summarize(output, outcomeDetailLimit)
		logger.Info("action finished", logging.String("response", outcome.Detail))
	}
	r.record(s, outcome)

	if action.WaitReady && r.cfg.ReadinessTimeout() > 0 && ctx.Err() == nil {
		r.waitReady(ctx, s, seg, logger)
	}
}

func (r *Recorder) waitReady(ctx context.Context, s *session, seg Segment, logger *slog.Logger) {
	began := r.clock.Now()
	attempts, err := r.probe.Wait(ctx, r.cfg.ReadinessTimeout())
	outcome := ledger.Outcome{
		Segment:  seg.Number,
		Name:     StepReadiness,
		OK:       err == nil,
		Duration: r.clock.Since(began),
	}
	if err != nil {
		outcome.Detail = textutil.Summarize(err.Error(), outcomeDetailLimit)
		logger.Warn("demo stack not ready; continuing",
			logging.String(logging.FieldStep, StepReadiness),
			logging.Int("attempts", attempts),
			logging.Error(err),
		)
	} else {
		outcome.Detail = fmt.Sprintf("healthy after %d attempt(s)", attempts)
		logger.Info("demo stack ready", logging.String(logging.FieldStep, StepReadiness), logging.Int("attempts", attempts))
	}
	r.record(s, outcome)
}

func (r *Recorder) record(s *session, outcome ledger.Outcome) {
	s.report.Outcomes = append(s.report.Outcomes, outcome)
	if r.observer != nil {
		r.observer(outcome)
	}
}
