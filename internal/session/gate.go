package session

import "sync"

// Gate allows at most one in-flight submission per session key. A second
// caller is turned away rather than queued.
type Gate struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewGate() *Gate {
	return &Gate{busy: make(map[string]struct{})}
}

// Key identifies a session.
func Key(userID, date string) string {
	return userID + "|" + date
}

// TryEnter marks key busy. When ok is false another submission holds it.
// The returned release must be called exactly once.
func (g *Gate) TryEnter(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.busy[key]; held {
		return nil, false
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, true
}
