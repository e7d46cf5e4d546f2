package app

import (
	"sync"
	"time"
)

// DefaultNoticeLimit bounds the message log.
const DefaultNoticeLimit = 100

// Notice is one message shown to the user.
type Notice struct {
	Text string
	At   time.Time
}

// Notices is the message log. It receives whines from every session and
// keeps the newest ones for display.
type Notices struct {
	mu      sync.Mutex
	entries []Notice
	limit   int
	logger  *Logger
	now     func() time.Time
}

// NewNotices creates a log holding up to limit messages. Each message is
// also written to logger at info level.
func NewNotices(limit int, logger *Logger) *Notices {
	if limit <= 0 {
		limit = DefaultNoticeLimit
	}
	if logger == nil {
		logger = NullLogger
	}
	return &Notices{limit: limit, logger: logger.WithComponent("notices"), now: time.Now}
}

// Whine records msg.
func (n *Notices) Whine(msg string) {
	n.mu.Lock()
	n.entries = append(n.entries, Notice{Text: msg, At: n.now()})
	if over := len(n.entries) - n.limit; over > 0 {
		n.entries = append(n.entries[:0], n.entries[over:]...)
	}
	n.mu.Unlock()

	n.logger.Info("%s", msg)
}

// Latest returns the newest message.
func (n *Notices) Latest() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.entries) == 0 {
		return Notice{}, false
	}
	return n.entries[len(n.entries)-1], true
}

// All returns the messages, oldest first.
func (n *Notices) All() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.entries...)
}

// Len returns the number of messages kept.
func (n *Notices) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}
