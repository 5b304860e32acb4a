package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/AzielCF/az-cast/config"
	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	domainBroadcast "github.com/AzielCF/az-cast/domains/broadcast"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	"github.com/AzielCF/az-cast/usecase"
)

// Slot identifies one scheduling opportunity: a weekday/hour pair. At most
// one dispatch is triggered per slot for the lifetime of the process.
type Slot struct {
	Weekday domainAnnouncement.Weekday
	Hour    int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s@%02dh", s.Weekday, s.Hour)
}

// Scheduler drives all dispatch decisions from a single recurring timer.
// It owns the transient consumed-slot set; everything else is read from
// the injected stores on every tick.
type Scheduler struct {
	announcements domainAnnouncement.IAnnouncementUsecase
	schedule      domainSchedule.IScheduleUsecase
	channels      domainChannel.IChannelUsecase
	broadcaster   domainBroadcast.IBroadcastUsecase

	now func() time.Time

	mu       sync.Mutex
	consumed map[Slot]struct{}

	cron *cron.Cron
}

// Option tweaks a Scheduler, mainly for tests.
type Option func(*Scheduler)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func NewScheduler(
	announcements domainAnnouncement.IAnnouncementUsecase,
	schedule domainSchedule.IScheduleUsecase,
	channels domainChannel.IChannelUsecase,
	broadcaster domainBroadcast.IBroadcastUsecase,
	opts ...Option,
) *Scheduler {
	s := &Scheduler{
		announcements: announcements,
		schedule:      schedule,
		channels:      channels,
		broadcaster:   broadcaster,
		now:           time.Now,
		consumed:      make(map[Slot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the hourly tick and runs until ctx is cancelled. The
// consumed-slot set lives only in memory: a restart within an eligible hour
// can re-send that slot, a trade-off kept from the announcement use case
// (duplicates within one process are worse than an occasional repeat after
// an operator restart).
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(config.SchedulerCronSpec, func() { s.Tick(ctx) }); err != nil {
		return fmt.Errorf("failed to register dispatch tick: %w", err)
	}
	s.cron.Start()
	logrus.Infof("[SCHEDULER] Dispatch loop started (spec %q)", config.SchedulerCronSpec)

	go func() {
		<-ctx.Done()
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		logrus.Info("[SCHEDULER] Dispatch loop stopped")
	}()

	return nil
}

// Tick evaluates one scheduling opportunity. Every outcome other than a
// dispatch resolves to a skip; nothing here is treated as fatal.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()
	weekday, ok := domainAnnouncement.WeekdayFromTime(now.Weekday())
	if !ok {
		logrus.Debug("[SCHEDULER] Non-operating day, skipping")
		return
	}
	hour := now.Hour()

	hours, err := s.schedule.Hours(ctx)
	if err != nil {
		logrus.WithError(err).Error("[SCHEDULER] Failed to read schedule, skipping tick")
		return
	}
	if !containsHour(hours, hour) {
		logrus.Debugf("[SCHEDULER] Hour %d not in schedule %v, skipping", hour, hours)
		return
	}

	slot := Slot{Weekday: weekday, Hour: hour}

	s.mu.Lock()
	if _, done := s.consumed[slot]; done {
		s.mu.Unlock()
		logrus.Debugf("[SCHEDULER] Slot %s already dispatched, skipping", slot)
		return
	}
	s.mu.Unlock()

	entry, err := s.announcements.Get(ctx, weekday)
	if err != nil {
		// Incomplete content is expected during setup, not a fault.
		logrus.Warnf("[SCHEDULER] Slot %s eligible but no caption stored for %s, skipping", slot, weekday)
		return
	}
	if entry.MediaPath == "" {
		logrus.Warnf("[SCHEDULER] Slot %s eligible but no media asset stored for %s, skipping", slot, weekday)
		return
	}

	data, err := os.ReadFile(entry.MediaPath)
	if err != nil {
		logrus.WithError(err).Errorf("[SCHEDULER] Failed to read media asset %s, skipping slot %s", entry.MediaPath, slot)
		return
	}

	destinations, err := s.channels.ListApproved(ctx)
	if err != nil {
		logrus.WithError(err).Error("[SCHEDULER] Failed to read approved destinations, skipping tick")
		return
	}

	// Consume the slot before delivery: a slow or partially failing
	// broadcast must not let an overlapping tick trigger a second send.
	// At most once per slot beats at least once for announcements.
	s.mu.Lock()
	if _, done := s.consumed[slot]; done {
		s.mu.Unlock()
		return
	}
	s.consumed[slot] = struct{}{}
	s.mu.Unlock()

	logrus.Infof("[SCHEDULER] Dispatching slot %s to %d destination(s)", slot, len(destinations))

	media := domainBroadcast.Media{
		Data:     data,
		MimeType: usecase.MimeTypeForExtension(filepath.Ext(entry.MediaPath)),
		FileName: filepath.Base(entry.MediaPath),
	}
	s.broadcaster.Dispatch(ctx, entry.Caption, media, destinations)
}

// ConsumedSlots reports how many slots were dispatched this process lifetime.
func (s *Scheduler) ConsumedSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.consumed)
}

func containsHour(hours []int, hour int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}
