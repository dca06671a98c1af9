package combat

import (
	"context"
	"sync"
	"time"

	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

// DefaultIdleTimeout is how long a campaign mailbox waits for work before exiting
const DefaultIdleTimeout = 2 * time.Minute

// mailbox runs the commands of one campaign one at a time
type mailbox struct {
	jobs    chan func()
	quit    chan struct{}
	pending int // guarded by mailboxes.mu
}

// mailboxes owns one goroutine per campaign with commands in flight
type mailboxes struct {
	mu     sync.Mutex
	boxes  map[string]*mailbox
	idle   time.Duration
	closed bool
	wg     sync.WaitGroup
}

func newMailboxes(idle time.Duration) *mailboxes {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &mailboxes{
		boxes: make(map[string]*mailbox),
		idle:  idle,
	}
}

// do runs fn on the campaign's mailbox and waits for it to finish. Once fn
// has been accepted it runs to completion even if ctx is cancelled.
func (m *mailboxes) do(ctx context.Context, campaignID string, fn func()) error {
	box, err := m.acquire(campaignID)
	if err != nil {
		return err
	}
	defer m.release(box)

	done := make(chan struct{})
	job := func() {
		defer close(done)
		fn()
	}

	select {
	case box.jobs <- job:
	case <-box.quit:
		return apperr.Internal("combat service is closed")
	case <-ctx.Done():
		return ctx.Err()
	}

	<-done
	return nil
}

func (m *mailboxes) acquire(campaignID string) (*mailbox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, apperr.Internal("combat service is closed")
	}

	box, ok := m.boxes[campaignID]
	if !ok {
		box = &mailbox{
			jobs: make(chan func()),
			quit: make(chan struct{}),
		}
		m.boxes[campaignID] = box
		m.wg.Add(1)
		go m.run(campaignID, box)
	}
	box.pending++
	return box, nil
}

func (m *mailboxes) release(box *mailbox) {
	m.mu.Lock()
	box.pending--
	m.mu.Unlock()
}

func (m *mailboxes) run(campaignID string, box *mailbox) {
	defer m.wg.Done()

	timer := time.NewTimer(m.idle)
	defer timer.Stop()

	for {
		select {
		case job := <-box.jobs:
			job()
			timer.Reset(m.idle)
		case <-timer.C:
			// exit only when no caller holds a reference
			m.mu.Lock()
			if box.pending == 0 {
				delete(m.boxes, campaignID)
				m.mu.Unlock()
				return
			}
			m.mu.Unlock()
			timer.Reset(m.idle)
		case <-box.quit:
			return
		}
	}
}

// size reports the number of live mailboxes
func (m *mailboxes) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.boxes)
}

// close stops every mailbox and waits for their goroutines to exit
func (m *mailboxes) close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for id, box := range m.boxes {
		close(box.quit)
		delete(m.boxes, id)
	}
	m.mu.Unlock()

	m.wg.Wait()
}
