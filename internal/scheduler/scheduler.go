package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs. A job that is still running when its next
// tick fires is skipped for that tick. Panicking jobs are logged and reported as errors.
type Scheduler struct {
	cron   *cron.Cron
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler using standard five-field cron specs and descriptors such as "@hourly".
func New(logger *slog.Logger) *Scheduler {
	log := logger.With(slog.String("component", "scheduler"))
	cronLog := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers job under a cron schedule, e.g. "@hourly", "@every 5m" or "*/10 * * * *".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(job)
	})
	if err != nil {
		return err
	}

	s.log.Info("Job registered", slog.String("schedule", schedule), slog.String("job", job.Name()))
	return nil
}

// RunNow executes a job immediately (outside schedule). A panic is recovered and returned as an error.
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info("Running job immediately", slog.String("job", job.Name()))
	return s.execute(job)
}

func (s *Scheduler) run(job Job) {
	s.log.Debug("Running job", slog.String("job", job.Name()))
	if err := s.execute(job); err != nil {
		s.log.Error("Job failed", slog.String("job", job.Name()), slog.String("error", err.Error()))
		return
	}
	s.log.Debug("Job completed", slog.String("job", job.Name()))
}

func (s *Scheduler) execute(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Job panicked",
				slog.String("job", job.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("job %s panicked: %v", job.Name(), r)
		}
	}()
	return job.Run(s.ctx)
}

// cronLogger routes cron's own messages (skipped ticks, recovered panics) into slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
