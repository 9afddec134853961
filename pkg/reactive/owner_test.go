package reactive

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerBasic(t *testing.T) {
	owner := NewOwner(nil)

	assert.NotZero(t, owner.ID())
	assert.Nil(t, owner.Parent(), "root owner has no parent")
	assert.False(t, owner.IsDisposed())
}

func TestOwnerDisposeHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	var order []string
	var mu sync.Mutex
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	grandchild.OnCleanup(record("grandchild"))
	child1.OnCleanup(record("child1"))
	child2.OnCleanup(record("child2"))
	root.OnCleanup(record("root"))

	root.Dispose()

	for _, o := range []*Owner{root, child1, child2, grandchild} {
		assert.True(t, o.IsDisposed(), "owner %d", o.ID())
	}
	assert.Equal(t, []string{"child2", "grandchild", "child1", "root"}, order)
}

func TestOwnerCleanupsRunInReverse(t *testing.T) {
	owner := NewOwner(nil)

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		owner.OnCleanup(func() { order = append(order, n) })
	}
	owner.Dispose()

	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestOwnerDisposeIdempotent(t *testing.T) {
	owner := NewOwner(nil)
	calls := 0
	owner.OnCleanup(func() { calls++ })

	owner.Dispose()
	owner.Dispose()

	assert.Equal(t, 1, calls)
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	assert.True(t, ran, "cleanup registered on a disposed owner runs immediately")
}

func TestOwnerLoggerInherited(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	root := NewOwner(nil)
	child := NewOwner(root)

	assert.Same(t, slog.Default(), child.Logger(), "falls back to slog.Default")

	root.SetLogger(logger)
	child.Logger().Info("hello")

	assert.Contains(t, buf.String(), "hello")
}
