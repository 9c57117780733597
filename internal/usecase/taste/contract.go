package taste

import "context"

// Advisor produces one structured completion for a system+user exchange.
type Advisor interface {
	Advise(ctx context.Context, system, user string) (string, error)
}
