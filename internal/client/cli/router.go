package cli

import (
	"context"
	"sync"
)

// Router records navigation requests coming from outside the REPL, such as
// the HTTP client sending the user back to "/" after a 401. The REPL picks
// them up between commands.
type Router struct {
	mu      sync.Mutex
	pending string
}

func NewRouter() *Router {
	return &Router{}
}

// Redirect implements client.Redirector.
func (r *Router) Redirect(_ context.Context, route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = route
}

// Take returns and clears the pending route.
func (r *Router) Take() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route := r.pending
	r.pending = ""
	return route, route != ""
}
