package urlstate

import (
	"net/url"
	"sync"
)

func splitTarget(target string) (path, rawQuery string) {
	u, err := url.Parse(target)
	if err != nil {
		return target, ""
	}
	return u.Path, u.RawQuery
}

// History is an in-memory session history, the way a browser tab keeps one.
// Navigate pushes an entry and drops anything ahead of the cursor; Back and
// Forward move the cursor and notify pop-state listeners.
type History struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[int]func()
	nextID    int
}

var (
	_ Location  = (*History)(nil)
	_ PopStater = (*History)(nil)
)

func NewHistory(initial string) *History {
	if initial == "" {
		initial = "/"
	}
	return &History{
		entries:   []string{initial},
		listeners: make(map[int]func()),
	}
}

func (h *History) current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Current returns the full current target.
func (h *History) Current() string {
	return h.current()
}

func (h *History) Path() string {
	path, _ := splitTarget(h.current())
	return path
}

func (h *History) RawQuery() string {
	_, rawQuery := splitTarget(h.current())
	return rawQuery
}

func (h *History) Navigate(target string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], target)
	h.index = len(h.entries) - 1
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back moves one entry back. It returns false at the first entry.
func (h *History) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward. It returns false at the last entry.
func (h *History) Forward() bool {
	return h.move(1)
}

func (h *History) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	listeners := make([]func(), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

func (h *History) OnPopState(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// RequestLocation is the location of a single HTTP request. Navigating
// records the target so the handler can redirect the client to it.
type RequestLocation struct {
	path      string
	rawQuery  string
	target    string
	navigated bool
}

var _ Location = (*RequestLocation)(nil)

func NewRequestLocation(u *url.URL) *RequestLocation {
	return &RequestLocation{path: u.Path, rawQuery: u.RawQuery}
}

// NewLocation builds a RequestLocation from a path and a raw query string.
func NewLocation(path, rawQuery string) *RequestLocation {
	return &RequestLocation{path: path, rawQuery: rawQuery}
}

func (l *RequestLocation) Path() string     { return l.path }
func (l *RequestLocation) RawQuery() string { return l.rawQuery }

func (l *RequestLocation) Navigate(target string) {
	l.target = target
	l.navigated = true
	l.path, l.rawQuery = splitTarget(target)
}

// Target returns the last navigation target, if any.
func (l *RequestLocation) Target() (string, bool) {
	return l.target, l.navigated
}
