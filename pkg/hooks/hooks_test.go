package hooks

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hooks/pkg/reactive"
)

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestUseIsMounted(t *testing.T) {
	var refs []*MountedRef
	cleanups := 0

	inst := reactive.Mount(func() {
		refs = append(refs, UseIsMounted(func() { cleanups++ }))
	})

	require.Len(t, refs, 1)
	assert.True(t, refs[0].Current(), "mounted during first render")

	inst.Rerender()
	require.Len(t, refs, 2)
	assert.Same(t, refs[0], refs[1], "reference is stable across renders")
	assert.True(t, refs[1].Current())

	inst.Unmount()
	assert.False(t, refs[0].Current())
	assert.Equal(t, 1, cleanups)

	inst.Unmount()
	assert.Equal(t, 1, cleanups, "cleanup runs once")
}

func TestUseIsMountedUsesFirstCleanup(t *testing.T) {
	var calls []string
	name := "first"

	inst := reactive.Mount(func() {
		n := name
		UseIsMounted(func() { calls = append(calls, n) })
	})

	name = "second"
	inst.Rerender()
	inst.Unmount()

	assert.Equal(t, []string{"first"}, calls)
}

func TestUseIsMountedNilCleanup(t *testing.T) {
	var ref *MountedRef
	inst := reactive.Mount(func() {
		ref = UseIsMounted(nil)
	})

	assert.NotPanics(t, inst.Unmount)
	assert.False(t, ref.Current())
}

func TestUseMountRunsOnce(t *testing.T) {
	var count *reactive.Signal[int]
	runs, cleanups := 0, 0

	inst := reactive.Mount(func() {
		count = reactive.UseSignal(0)
		_ = count.Get()
		UseMount(func() reactive.Cleanup {
			_ = count.Get()
			runs++
			return func() { cleanups++ }
		})
	})

	assert.Equal(t, 1, runs, "runs after first render")

	inst.Act(func() { count.Set(1) })
	inst.Act(func() { count.Set(2) })
	inst.Rerender()

	assert.Equal(t, 4, inst.Renders())
	assert.Equal(t, 1, runs, "never re-runs")
	assert.Equal(t, 0, cleanups)

	inst.Unmount()
	assert.Equal(t, 1, cleanups, "cleanup runs at unmount")
}

func TestUseMountRunsAfterRender(t *testing.T) {
	var order []string

	inst := reactive.Mount(func() {
		UseMount(func() reactive.Cleanup {
			order = append(order, "effect")
			return nil
		})
		order = append(order, "render")
	})
	defer inst.Unmount()

	assert.Equal(t, []string{"render", "effect"}, order)
}

func TestUseMountNilCleanup(t *testing.T) {
	inst := reactive.Mount(func() {
		UseMount(func() reactive.Cleanup { return nil })
	})
	assert.NotPanics(t, inst.Unmount)
}

func TestUseTimeout(t *testing.T) {
	var values []bool

	inst := reactive.Mount(func() {
		values = append(values, UseTimeout(20*time.Millisecond))
	})
	defer inst.Unmount()

	require.Equal(t, []bool{false}, values)

	require.NoError(t, inst.WaitForUpdate(waitCtx(t)))
	assert.Equal(t, []bool{false, true}, values)
}

func TestUseTimeoutNonPositiveDelay(t *testing.T) {
	for _, delay := range []time.Duration{0, -time.Second} {
		var got bool
		inst := reactive.Mount(func() {
			got = UseTimeout(delay)
		})
		assert.True(t, got, "delay %v", delay)
		assert.Equal(t, 1, inst.Renders())
		inst.Unmount()
	}
}

func TestUseTimeoutStoppedOnUnmount(t *testing.T) {
	var got bool
	inst := reactive.Mount(func() {
		got = UseTimeout(20 * time.Millisecond)
	})
	inst.Unmount()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, inst.Flush())
	assert.False(t, got)
	assert.Equal(t, 1, inst.Renders())
}

type payload struct {
	Foo string
}

func TestUseAsyncFnValue(t *testing.T) {
	release := make(chan struct{})
	var state AsyncState[payload]
	var run func(struct{})

	inst := reactive.Mount(func() {
		state, run = UseAsyncFn(func(struct{}) (payload, error) {
			<-release
			return payload{Foo: "bar"}, nil
		})
	})
	defer inst.Unmount()

	assert.Equal(t, AsyncState[payload]{}, state)
	assert.False(t, state.Settled())

	inst.Act(func() { run(struct{}{}) })
	assert.Equal(t, AsyncState[payload]{Loading: true}, state)

	close(release)
	require.NoError(t, inst.WaitForUpdate(waitCtx(t)))

	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.True(t, state.HasValue)
	assert.Equal(t, payload{Foo: "bar"}, state.Value)
	assert.True(t, state.Settled())
}

func TestUseAsyncFnError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	release := make(chan struct{})
	var state AsyncState[payload]
	var run func(int)

	inst := reactive.Mount(func() {
		state, run = UseAsyncFn(func(int) (payload, error) {
			<-release
			return payload{}, errors.New("error!")
		})
	}, reactive.WithLogger(logger))
	defer inst.Unmount()

	inst.Act(func() { run(1) })
	assert.True(t, state.Loading)
	assert.Nil(t, state.Err)

	close(release)
	require.NoError(t, inst.WaitForUpdate(waitCtx(t)))

	assert.False(t, state.Loading)
	require.Error(t, state.Err)
	assert.Equal(t, "error!", state.Err.Error())
	assert.False(t, state.HasValue)
	assert.Contains(t, logs.String(), "async operation failed")
}

func TestUseAsyncFnPanicBecomesError(t *testing.T) {
	var state AsyncState[int]
	var run func(int)

	inst := reactive.Mount(func() {
		state, run = UseAsyncFn(func(n int) (int, error) {
			panic("boom")
		})
	}, reactive.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	defer inst.Unmount()

	run(1)
	ctx := waitCtx(t)
	for !state.Settled() {
		require.NoError(t, inst.WaitForUpdate(ctx))
	}
	require.Error(t, state.Err)
	assert.Contains(t, state.Err.Error(), "boom")
}

func TestUseAsyncFnNoUpdateAfterUnmount(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	var state AsyncState[payload]
	var run func(struct{})

	inst := reactive.Mount(func() {
		state, run = UseAsyncFn(func(struct{}) (payload, error) {
			defer close(finished)
			<-release
			return payload{Foo: "bar"}, nil
		})
	})

	inst.Act(func() { run(struct{}{}) })
	assert.Equal(t, AsyncState[payload]{Loading: true}, state)

	inst.Unmount()
	close(release)
	<-finished
	time.Sleep(10 * time.Millisecond)

	assert.False(t, inst.Flush())
	assert.Equal(t, AsyncState[payload]{Loading: true}, state)
}

func TestUseAsyncFnCallAfterUnmountIgnored(t *testing.T) {
	called := false
	var run func(int)

	inst := reactive.Mount(func() {
		_, run = UseAsyncFn(func(int) (int, error) {
			called = true
			return 1, nil
		})
	})
	inst.Unmount()

	run(1)
	time.Sleep(10 * time.Millisecond)
	assert.False(t, called)
}

func TestUseAsyncFnCallbackMemoisedOnDeps(t *testing.T) {
	var mu sync.Mutex
	var got []string
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	}

	url := "/a"
	label := "first"
	var state AsyncState[string]
	var run func(struct{})

	inst := reactive.Mount(func() {
		l := label
		state, run = UseAsyncFn(func(struct{}) (string, error) {
			record(l)
			return l, nil
		}, url)
	}, reactive.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	defer inst.Unmount()

	settle := func() {
		ctx := waitCtx(t)
		for !state.Settled() {
			require.NoError(t, inst.WaitForUpdate(ctx))
		}
	}

	label = "second"
	inst.Rerender()
	inst.Act(func() { run(struct{}{}) })
	settle()
	assert.Equal(t, "first", state.Value, "same deps keep the first fn")

	url = "/b"
	inst.Rerender()
	inst.Act(func() { run(struct{}{}) })
	settle()
	assert.Equal(t, "second", state.Value, "changed deps pick up the latest fn")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestUseAsyncFnLastToFinishWins(t *testing.T) {
	release := map[string]chan struct{}{
		"slow": make(chan struct{}),
		"fast": make(chan struct{}),
	}
	var state AsyncState[string]
	var run func(string)

	inst := reactive.Mount(func() {
		state, run = UseAsyncFn(func(name string) (string, error) {
			<-release[name]
			return name, nil
		})
	})
	defer inst.Unmount()

	inst.Act(func() {
		run("slow")
		run("fast")
	})

	close(release["fast"])
	require.NoError(t, inst.WaitForUpdate(waitCtx(t)))
	assert.Equal(t, "fast", state.Value)

	close(release["slow"])
	require.NoError(t, inst.WaitForUpdate(waitCtx(t)))
	assert.Equal(t, "slow", state.Value, "an earlier call that settles later overwrites the state")
}
