package database

import "sync"

// Table identifies one logical table for change notification.
type Table string

const (
	TableProjects Table = "projects"
	TableUnits    Table = "units"
	TableProblems Table = "problems"
	TableLogs     Table = "activity_logs"
)

// Broker fans out committed-write notifications to live query
// subscribers. Signals are coalescing: a subscriber that has not yet
// consumed a pending signal does not accumulate more, it just re-runs
// its query once and picks up everything that happened in between.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	tables map[Table]struct{}
	ch     chan struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*subscriber)}
}

// Subscribe registers interest in the given tables. The returned channel
// receives one (coalesced) signal per relevant committed write. The
// cancel function removes the subscription; it is safe to call more
// than once.
func (b *Broker) Subscribe(tables ...Table) (<-chan struct{}, func()) {
	sub := &subscriber{
		tables: make(map[Table]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Notify signals every subscriber watching at least one of the changed
// tables. Never blocks: a subscriber with a pending signal is skipped.
func (b *Broker) Notify(tables ...Table) {
	if len(tables) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !sub.watchesAny(tables) {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

func (s *subscriber) watchesAny(tables []Table) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}
