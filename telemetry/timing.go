package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/sie/output"
)

// TimingCollector keeps every phase started on it as a tree.
//
// Start nests the new phase under the most recent phase that is still
// running, so sequential Start and End calls build the tree without the
// caller passing timers around.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*phase
	open  []*phase
}

type phase struct {
	name     string
	started  time.Time
	elapsed  time.Duration
	done     bool
	count    int
	unit     string
	children []*phase
}

// duration returns the elapsed time of p, measuring up to now while p is
// still running.
func (p *phase) duration() time.Duration {
	if p.done {
		return p.elapsed
	}
	return time.Since(p.started)
}

// NewTimingCollector returns an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := &phase{name: name, started: time.Now()}
	if n := len(c.open); n > 0 {
		parent := c.open[n-1]
		parent.children = append(parent.children, p)
	} else {
		c.roots = append(c.roots, p)
	}
	c.open = append(c.open, p)
	return &timer{c: c, p: p}
}

func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		writeTree(w, root, styles)
	}
}

type timer struct {
	c *TimingCollector
	p *phase
}

func (t *timer) End() {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()

	if t.p.done {
		return
	}
	t.p.elapsed = time.Since(t.p.started)
	t.p.done = true

	for i := len(t.c.open) - 1; i >= 0; i-- {
		if t.c.open[i] == t.p {
			t.c.open = append(t.c.open[:i], t.c.open[i+1:]...)
			break
		}
	}
}

func (t *timer) Child(name string) Timer {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()

	p := &phase{name: name, started: time.Now()}
	t.p.children = append(t.p.children, p)
	return &timer{c: t.c, p: p}
}

func (t *timer) Count(n int, unit string) {
	t.c.mu.Lock()
	t.p.count, t.p.unit = n, unit
	t.c.mu.Unlock()
}
