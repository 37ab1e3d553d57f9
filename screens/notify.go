package screens

import "sync"

// Notification kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notification is a user-facing toast message.
type Notification struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier is the fire-and-forget notification surface consumed by the
// screens. The HTTP layer drains a Feed into responses.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// Feed buffers notifications until the next response flushes them.
type Feed struct {
	mu      sync.Mutex
	pending []Notification
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Success(title, description string) {
	f.push(NoticeSuccess, title, description)
}

func (f *Feed) Error(title, description string) {
	f.push(NoticeError, title, description)
}

func (f *Feed) push(kind, title, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, Notification{Kind: kind, Title: title, Description: description})
}

// Drain returns the buffered notifications and clears the buffer.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	drained := f.pending
	f.pending = nil
	return drained
}

// describe prefers the backend's own message, falling back to generic text.
func describe(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
