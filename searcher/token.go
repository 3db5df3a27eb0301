package searcher

import "sync/atomic"

// Token is a cooperative cancellation flag shared between the caller and a
// running search. It may be set from any goroutine; the search only polls it.
// A nil Token is never cancelled.
type Token struct {
	cancelled atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

func (t *Token) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Reset re-arms the token for another search.
func (t *Token) Reset() {
	t.cancelled.Store(false)
}
