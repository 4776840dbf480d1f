// Package scheduler runs named background tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/teamthree/jobapply/internal/pkg/logger"
)

// TaskFunc is the unit of work a scheduled task performs. Errors are logged
// and never stop the schedule.
type TaskFunc func(ctx context.Context) error

type task struct {
	name     string
	schedule string
	fn       TaskFunc
	entryID  cron.EntryID
	running  bool
}

// Scheduler owns a set of named cron tasks. All schedules are evaluated in
// UTC regardless of host timezone.
type Scheduler struct {
	cron  *cron.Cron
	mu    sync.Mutex
	tasks map[string]*task
}

// New creates a scheduler with no tasks registered.
func New() *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		tasks: make(map[string]*task),
	}
}

// RegisterTask adds a named task with a cron schedule. The task is inactive
// until Start or StartAll is called. Registering a name twice is an error.
func (s *Scheduler) RegisterTask(name, schedule string, fn TaskFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[name]; exists {
		return fmt.Errorf("task %q already registered", name)
	}

	// Validate the expression up front so a bad schedule fails at startup
	// rather than at first activation.
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q for task %q: %w", schedule, name, err)
	}

	s.tasks[name] = &task{name: name, schedule: schedule, fn: fn}
	logger.Info().Str("task", name).Str("schedule", schedule).Msg("Registered scheduled task")
	return nil
}

// Start activates a single registered task. Starting an already running task
// is a no-op.
func (s *Scheduler) Start(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(name)
}

func (s *Scheduler) startLocked(name string) error {
	t, exists := s.tasks[name]
	if !exists {
		return fmt.Errorf("task %q not registered", name)
	}
	if t.running {
		return nil
	}

	entryID, err := s.cron.AddFunc(t.schedule, func() { s.runTask(t) })
	if err != nil {
		return fmt.Errorf("failed to schedule task %q: %w", name, err)
	}

	t.entryID = entryID
	t.running = true
	logger.Info().Str("task", name).Msg("Started scheduled task")
	return nil
}

// Stop deactivates a single task. Its registration is kept so it can be
// started again.
func (s *Scheduler) Stop(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.tasks[name]
	if !exists {
		return fmt.Errorf("task %q not registered", name)
	}
	if !t.running {
		return nil
	}

	s.cron.Remove(t.entryID)
	t.running = false
	logger.Info().Str("task", name).Msg("Stopped scheduled task")
	return nil
}

// StartAll activates every registered task and starts the cron runner.
func (s *Scheduler) StartAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.tasks {
		if err := s.startLocked(name); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// StopAll deactivates every task without discarding registrations.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.running {
			s.cron.Remove(t.entryID)
			t.running = false
		}
	}
}

// RunNow executes a task immediately, outside its schedule. The task does
// not need to be started.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	t, exists := s.tasks[name]
	s.mu.Unlock()

	if !exists {
		return fmt.Errorf("task %q not registered", name)
	}

	return t.fn(ctx)
}

// IsRunning reports whether a task is currently scheduled.
func (s *Scheduler) IsRunning(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.tasks[name]
	return exists && t.running
}

// TaskStatus describes one registered task.
type TaskStatus struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	Running  bool   `json:"running"`
}

// TaskStatuses returns the status of every registered task.
func (s *Scheduler) TaskStatuses() []TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]TaskStatus, 0, len(s.tasks))
	for _, t := range s.tasks {
		statuses = append(statuses, TaskStatus{
			Name:     t.name,
			Schedule: t.schedule,
			Running:  t.running,
		})
	}
	return statuses
}

// TaskNames returns the names of all registered tasks.
func (s *Scheduler) TaskNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	return names
}

// Destroy stops the cron runner and waits for in-flight task executions to
// finish. The scheduler cannot be reused afterwards.
func (s *Scheduler) Destroy() {
	s.mu.Lock()
	for _, t := range s.tasks {
		if t.running {
			s.cron.Remove(t.entryID)
			t.running = false
		}
	}
	s.tasks = make(map[string]*task)
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Scheduler destroyed")
}

func (s *Scheduler) runTask(t *task) {
	start := time.Now()
	logger.Debug().Str("task", t.name).Msg("Running scheduled task")

	if err := t.fn(context.Background()); err != nil {
		logger.Error().Err(err).Str("task", t.name).Msg("Scheduled task failed")
		return
	}

	logger.Debug().
		Str("task", t.name).
		Dur("duration", time.Since(start)).
		Msg("Scheduled task finished")
}
