package utils

import (
	"context"
	"time"

	clog "prover-node-mgr/utils/log"
)

// SafeGoRoutineCtx runs f in a goroutine, recovering from panics and
// restarting it after a short pause until ctx is cancelled. Used for the
// background watchers so one bad pass cannot take the whole manager down.
func SafeGoRoutineCtx(ctx context.Context, f func()) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			func() {
				defer func() {
					if r := recover(); r != nil {
						clog.Error("Recovered from panic", "panic", r)
					}
				}()
				f()
			}()

			clog.Error("SafeGoRoutine: function exited, restarting in 1s...")
			select {
			case <-ctx.Done():
				return
			case <-time.After(1 * time.Second):
			}
		}
	}()
}
