package geo

import (
	"sync"
	"time"
)

// Debouncer delays fn until no Trigger has happened for delay, then calls
// it with the most recent input.
type Debouncer struct {
	delay time.Duration
	fn    func(input string)

	mu    sync.Mutex
	timer *time.Timer
	last  string
}

func NewDebouncer(delay time.Duration, fn func(input string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger records input and restarts the quiet period.
func (d *Debouncer) Trigger(input string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = input
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	input := d.last
	d.timer = nil
	d.mu.Unlock()

	d.fn(input)
}
