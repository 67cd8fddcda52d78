package viewmodel

import (
	"noteapp/models"
	"sync"
)

// State is the snapshot the view-model publishes to the UI
type State struct {
	Notes []models.Note
	// Err is the failure of the most recent task, cleared by the next successful load
	Err     error
	Version uint64
}

func (s State) clone() State {
	notes := make([]models.Note, len(s.Notes))
	copy(notes, s.Notes)
	s.Notes = notes
	return s
}

// stateCell owns the published state. Every subscriber channel holds at most
// one undelivered state, always the newest.
type stateCell struct {
	mu          sync.Mutex
	current     State
	subscribers map[uint64]chan State
	nextID      uint64
	closed      bool
}

func newStateCell() *stateCell {
	return &stateCell{
		current:     State{Notes: []models.Note{}},
		subscribers: make(map[uint64]chan State),
	}
}

func (c *stateCell) get() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.clone()
}

func (c *stateCell) update(fn func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.current
	fn(&next)
	next.Version = c.current.Version + 1
	c.current = next

	for _, ch := range c.subscribers {
		deliver(ch, next.clone())
	}
	return next.clone()
}

// deliver must be called with c.mu held: it is the only sender, so the send
// after draining never blocks.
func deliver(ch chan State, s State) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

func (c *stateCell) subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)
	ch <- c.current.clone()

	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextID
	c.nextID++
	c.subscribers[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(sub)
		}
	}
}

// close ends every subscription. Later updates still change the current state.
func (c *stateCell) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
}
