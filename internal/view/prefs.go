// Package view composes the store's live queries into consistent,
// UI-ready screen states. Each watcher is a dataflow node: it re-emits a
// complete immutable snapshot whenever any of its inputs changes, and
// where the set of rows to watch depends on another stream's value (the
// active project's units) it re-subscribes on every upstream change,
// cancelling the previous subscription so stale data can never overwrite
// newer state.
package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/studytrack/pkg/models"
)

// LabelFormat selects how a problem cell is labelled in the grid.
type LabelFormat int

const (
	// LabelUnitDash renders "U1-12".
	LabelUnitDash LabelFormat = iota
	// LabelDecimal renders "1.12" (unit id, problem index).
	LabelDecimal
	// LabelHash renders "Unit1#12".
	LabelHash
)

func (f LabelFormat) String() string {
	switch f {
	case LabelUnitDash:
		return "unit-dash"
	case LabelDecimal:
		return "decimal"
	case LabelHash:
		return "hash"
	default:
		return "unknown"
	}
}

// ParseLabelFormat maps a CLI/config string to a LabelFormat.
func ParseLabelFormat(s string) (LabelFormat, error) {
	switch s {
	case "unit-dash", "":
		return LabelUnitDash, nil
	case "decimal":
		return LabelDecimal, nil
	case "hash":
		return LabelHash, nil
	default:
		return LabelUnitDash, fmt.Errorf("unknown label format %q", s)
	}
}

// FormatLabel renders a problem's display label. A nil unit falls back
// to a generic name so missing-lookup joins degrade to omission, not
// failure.
func FormatLabel(f LabelFormat, unit *models.StudyUnit, p models.Problem) string {
	unitName := "Unit"
	var unitID int64
	if unit != nil {
		unitName = unit.Name
		unitID = unit.ID
	}
	switch f {
	case LabelDecimal:
		return fmt.Sprintf("%d.%d", unitID, p.ProblemIndex)
	case LabelHash:
		return fmt.Sprintf("%s#%d", unitName, p.ProblemIndex)
	default:
		return fmt.Sprintf("%s-%d", unitName, p.ProblemIndex)
	}
}

// Preferences holds process-wide display preferences as an observable
// value. It is injected into every consumer explicitly so tests can
// substitute an isolated instance; it is never persisted to the store.
type Preferences struct {
	mu          sync.Mutex
	labelFormat LabelFormat
	nextID      int
	subs        map[int]chan LabelFormat
}

// NewPreferences creates preferences with the default label format.
func NewPreferences() *Preferences {
	return &Preferences{subs: make(map[int]chan LabelFormat)}
}

// LabelFormat returns the current label format.
func (p *Preferences) LabelFormat() LabelFormat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.labelFormat
}

// SetLabelFormat updates the format and notifies every watcher.
func (p *Preferences) SetLabelFormat(f LabelFormat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labelFormat = f
	for _, ch := range p.subs {
		// latest-wins, same policy as the store's live queries
		select {
		case <-ch:
		default:
		}
		ch <- f
	}
}

// WatchLabelFormat emits the current format immediately, then again on
// every change, until ctx is cancelled.
func (p *Preferences) WatchLabelFormat(ctx context.Context) <-chan LabelFormat {
	ch := make(chan LabelFormat, 1)

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	ch <- p.labelFormat
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}()

	return ch
}
