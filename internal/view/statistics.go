package view

import (
	"context"
	"sync"
	"time"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/stats"
	"github.com/example/studytrack/pkg/models"
)

// StatsState is the snapshot behind the statistics screen: global totals
// plus the calendar heatmap for the displayed month.
type StatsState struct {
	Phase          Phase
	TotalDone      int
	Accuracy       int
	LastActiveDate string
	ActivityByDay  map[string]int
	Year           int
	Month          time.Month
	CalendarDays   []stats.CalendarDay
}

// StatsView watches the activity log and recomputes StatsState on every
// change or month navigation. Month navigation is local view state; it
// re-derives the calendar from the cached log snapshot without touching
// the store.
type StatsView struct {
	out chan StatsState
	ctx context.Context

	mu       sync.Mutex
	year     int
	month    time.Month
	logs     []models.ActivityLog
	haveLogs bool
}

// WatchStats starts a statistics watcher displaying the given month.
func WatchStats(ctx context.Context, store *database.Store, year int, month time.Month) *StatsView {
	v := &StatsView{
		out:   make(chan StatsState, 1),
		ctx:   ctx,
		year:  year,
		month: month,
	}
	v.out <- StatsState{Phase: PhaseLoading, Year: year, Month: month}

	logsCh := store.WatchAllLogs(ctx)
	go func() {
		defer close(v.out)
		for {
			select {
			case <-ctx.Done():
				return
			case logs, ok := <-logsCh:
				if !ok {
					return
				}
				v.mu.Lock()
				v.logs = logs
				v.haveLogs = true
				v.emitLocked()
				v.mu.Unlock()
			}
		}
	}()

	return v
}

// States is the snapshot stream; one emission per log change or month
// navigation, latest-wins.
func (v *StatsView) States() <-chan StatsState { return v.out }

// PrevMonth moves the displayed calendar one month back.
func (v *StatsView) PrevMonth() { v.shiftMonth(-1) }

// NextMonth moves the displayed calendar one month forward.
func (v *StatsView) NextMonth() { v.shiftMonth(1) }

func (v *StatsView) shiftMonth(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	shifted := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	v.year = shifted.Year()
	v.month = shifted.Month()
	v.emitLocked()
}

// emitLocked rebuilds the state from cached inputs; v.mu must be held.
func (v *StatsView) emitLocked() {
	if !v.haveLogs || v.ctx.Err() != nil {
		return
	}

	activity := stats.ActivityByDay(v.logs)
	state := StatsState{
		Phase:          PhasePopulated,
		TotalDone:      len(v.logs),
		Accuracy:       stats.Accuracy(v.logs),
		LastActiveDate: stats.LastActiveDate(v.logs),
		ActivityByDay:  activity,
		Year:           v.year,
		Month:          v.month,
		CalendarDays:   stats.BuildCalendarMonth(v.year, v.month, activity),
	}
	if len(v.logs) == 0 {
		state.Phase = PhaseEmpty
	}

	select {
	case <-v.out:
	default:
	}
	select {
	case v.out <- state:
	case <-v.ctx.Done():
	}
}
