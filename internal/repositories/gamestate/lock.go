package gamestate

import (
	"context"

	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
)

// localLock is a mutex that gives up when the context is done
type localLock chan struct{}

func newLocalLock() localLock {
	return make(localLock, 1)
}

func (l localLock) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return dnderr.InvalidArgument("lock function cannot be nil")
	}

	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return dnderr.Wrap(ctx.Err(), "waiting for game lock")
	}
	defer func() { <-l }()

	return fn(ctx)
}

// stagedKey scopes a staged transaction to the store that opened it, so a
// store used inside another store's lock still sees its own data
type stagedKey struct {
	owner any
}

func withStaged(ctx context.Context, owner, staged any) context.Context {
	return context.WithValue(ctx, stagedKey{owner: owner}, staged)
}

func stagedFrom(ctx context.Context, owner any) any {
	return ctx.Value(stagedKey{owner: owner})
}
