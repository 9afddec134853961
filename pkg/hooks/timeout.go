package hooks

import (
	"time"

	"github.com/vango-dev/hooks/pkg/reactive"
)

// UseTimeout returns false until delay has elapsed since the component
// mounted, then true. The flip triggers a re-render. A non-positive delay
// returns true immediately without starting a timer.
//
// Unmounting stops a pending timer.
func UseTimeout(delay time.Duration) bool {
	timedOut := reactive.UseSignal(delay <= 0)
	timer := reactive.UseRef[*time.Timer](nil)

	mounted := UseIsMounted(func() {
		if t := timer.Current(); t != nil {
			t.Stop()
		}
	})

	UseMount(func() reactive.Cleanup {
		if delay <= 0 {
			return nil
		}
		t := time.AfterFunc(delay, func() {
			if mounted.Current() {
				timedOut.Set(true)
			}
		})
		if mounted.Current() {
			timer.Set(t)
		}
		return nil
	})

	return timedOut.Get()
}
