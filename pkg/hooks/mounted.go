package hooks

import (
	"sync/atomic"

	"github.com/vango-dev/hooks/pkg/reactive"
)

// MountedRef reports whether the component that created it is mounted.
// It is safe to read from any goroutine.
type MountedRef struct {
	mounted atomic.Bool
}

// Current reports whether the component is still mounted.
func (m *MountedRef) Current() bool {
	return m.mounted.Load()
}

// UseIsMounted returns a reference that reads true from the first render
// until the component unmounts, and false afterwards.
//
// onCleanup, if non-nil, runs once at unmount, after the reference flips.
// Only the callback passed on the first render is used.
func UseIsMounted(onCleanup func()) *MountedRef {
	return reactive.UseSlot("UseIsMounted", func() *MountedRef {
		m := &MountedRef{}
		m.mounted.Store(true)

		reactive.OnUnmount(func() {
			m.mounted.Store(false)
			if onCleanup != nil {
				onCleanup()
			}
		})
		return m
	})
}

// UseMount runs fn once, after the first render commits. Signals read by fn
// do not become dependencies, so it never re-runs. The Cleanup fn returns,
// if any, runs when the component unmounts.
func UseMount(fn func() reactive.Cleanup) {
	reactive.UseSlot("UseMount", func() *reactive.Effect {
		return reactive.CreateEffect(func() reactive.Cleanup {
			var cleanup reactive.Cleanup
			reactive.Untracked(func() {
				cleanup = fn()
			})
			return cleanup
		})
	})
}
