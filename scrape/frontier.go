package scrape

import "github.com/connexin/atlascrape/bloom"

// Entry is a queued page with its distance from the root.
type Entry struct {
	ID    string
	Depth int
}

// Frontier is a breadth-first traversal queue over Confluence page IDs
// with Bloom filter deduplication, so pages reachable through multiple
// paths are visited once. It is not safe for concurrent use; the
// hierarchy walk is strictly sequential.
type Frontier struct {
	seen  *bloom.Filter
	queue []Entry
}

// NewFrontier creates a new Frontier sized for n expected pages with
// the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push adds a page to the frontier.
// Returns false if the ID has already been seen.
func (f *Frontier) Push(id string, depth int) bool {
	if f.seen.Test(id) {
		return false
	}
	f.seen.Add(id)
	f.queue = append(f.queue, Entry{ID: id, Depth: depth})
	return true
}

// Pop returns the next page in FIFO order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Entry, bool) {
	if len(f.queue) == 0 {
		return Entry{}, false
	}
	e := f.queue[0]
	f.queue = f.queue[1:]
	return e, true
}

// Len returns the number of pages in the queue.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// Seen returns true if the ID has been processed or queued.
func (f *Frontier) Seen(id string) bool {
	return f.seen.Test(id)
}
