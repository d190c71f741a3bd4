package frontier

import (
	"net/url"
	"strings"
	"sync"
)

// Entry is a (URL, depth) pair awaiting visitation.
// Depth is the breadth-first distance from the nearest seed URL.
type Entry struct {
	// URL is the watch-page URL to visit.
	URL string

	// Depth is the distance from the seed that discovered this URL.
	Depth int
}

// Frontier is the work-list of one crawl run: a FIFO pending queue, the
// visited set, and the accept budget. All methods are safe for
// concurrent use; one mutex guards every field, making pop+mark-visited
// atomic.
type Frontier struct {
	// mu guards all fields below.
	mu sync.Mutex

	// cond wakes poppers when entries arrive, completions are reported,
	// the budget runs out, or the frontier closes.
	cond *sync.Cond

	// pending is the FIFO queue. Breadth-first order keeps discovery
	// close to the seeds instead of descending one channel's catalog.
	pending []Entry

	// visited maps normalized URLs that have been dequeued or
	// explicitly marked. Checked on push and again on pop.
	visited map[string]bool

	// queued maps normalized URLs currently in the pending queue,
	// so duplicate discoveries don't occupy two slots.
	queued map[string]bool

	// budget is the number of accepts remaining. Only Accept
	// decrements it.
	budget int

	// active counts entries handed out by Pop whose Done call is
	// still outstanding.
	active int

	// closed is set by Close and ends the run for all poppers.
	closed bool
}

// New creates a Frontier with the given accept budget.
func New(budget int) *Frontier {
	f := &Frontier{
		pending: make([]Entry, 0),
		visited: make(map[string]bool),
		queued:  make(map[string]bool),
		budget:  budget,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Push enqueues a URL at the given depth. It reports false without
// enqueueing when the URL was already visited or queued, the budget is
// exhausted, or the frontier is closed.
func (f *Frontier) Push(rawURL string, depth int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.budget <= 0 {
		return false
	}

	key := normalizeURL(rawURL)
	if f.visited[key] || f.queued[key] {
		return false
	}

	f.queued[key] = true
	f.pending = append(f.pending, Entry{URL: rawURL, Depth: depth})
	f.cond.Broadcast()
	return true
}

// Pop returns the next entry in FIFO order and atomically marks its URL
// visited. It blocks while the queue is empty but other workers still
// hold undone entries, since those may push more work. It returns
// ok=false only when the run is over: the queue drained with nothing in
// flight, the budget ran out, or Close was called.
//
// Every successful Pop must be paired with a Done call once the entry's
// processing finishes, or the frontier can never detect drain.
func (f *Frontier) Pop() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		// Entries marked visited while queued are dropped here, not
		// returned. This is the pop-side half of the duplicate defense.
		for len(f.pending) > 0 && f.visited[normalizeURL(f.pending[0].URL)] {
			delete(f.queued, normalizeURL(f.pending[0].URL))
			f.pending = f.pending[1:]
		}

		switch {
		case f.closed || f.budget <= 0:
			return Entry{}, false
		case len(f.pending) > 0:
			e := f.pending[0]
			f.pending = f.pending[1:]
			key := normalizeURL(e.URL)
			delete(f.queued, key)
			f.visited[key] = true
			f.active++
			return e, true
		case f.active == 0:
			return Entry{}, false
		}

		f.cond.Wait()
	}
}

// Done marks the processing of a previously popped entry as finished.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.active > 0 {
		f.active--
	}
	f.cond.Broadcast()
}

// MarkVisited records a URL as visited without dequeueing it.
// A queued entry for the same URL will be silently dropped by Pop.
func (f *Frontier) MarkVisited(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited[normalizeURL(rawURL)] = true
}

// Visited reports whether a URL has been visited.
func (f *Frontier) Visited(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited[normalizeURL(rawURL)]
}

// Accept consumes one unit of the accept budget. It reports false when
// the budget is already exhausted, in which case the caller must not
// treat the video as accepted.
func (f *Frontier) Accept() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.budget <= 0 {
		return false
	}
	f.budget--
	if f.budget == 0 {
		// Wake blocked poppers so they observe exhaustion promptly.
		f.cond.Broadcast()
	}
	return true
}

// Remaining returns the remaining accept budget.
func (f *Frontier) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.budget
}

// Exhausted reports whether the accept budget is fully consumed.
func (f *Frontier) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.budget <= 0
}

// Close ends the run: queued entries are abandoned and all blocked and
// future Pop calls return ok=false. Close is idempotent.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.cond.Broadcast()
}

// Stats returns a snapshot of the frontier state.
func (f *Frontier) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{
		Pending:         len(f.pending),
		Visited:         len(f.visited),
		Active:          f.active,
		RemainingBudget: f.budget,
	}
}

// Stats is a point-in-time snapshot of frontier state, used for
// logging and tests.
type Stats struct {
	// Pending is the number of queued entries.
	Pending int

	// Visited is the number of unique URLs seen so far.
	Visited int

	// Active is the number of popped entries not yet done.
	Active int

	// RemainingBudget is the unconsumed accept budget.
	RemainingBudget int
}

// normalizeURL normalizes a URL for visited-set and queue membership.
//
// Design decision: We normalize URLs because:
//  1. The same watch page can be reached with different URL spellings
//  2. Fragment (#t=30s) doesn't change the page
//  3. Scheme and host are case-insensitive
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
