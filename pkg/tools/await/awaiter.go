// Package await turns channels and tickers into values that block until
// something happens or the context is done.
package await

import "context"

type Awaiter interface {
	// Await reports false when ctx is done first.
	Await(ctx context.Context) (waited bool)
}
