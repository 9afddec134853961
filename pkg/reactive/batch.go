package reactive

// DebugMode enables dev-time validation such as hook order checking.
// Set it at startup; it is not safe to toggle while components render.
var DebugMode bool

// Batch groups multiple signal updates into a single notification phase.
// Listeners affected by several writes are notified once, when the outermost
// batch completes.
//
//	Batch(func() {
//	    state.Set(next)
//	    settled.Set(true)
//	})
func Batch(fn func()) {
	ctx, gid := enter()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			pending := ctx.pending
			ctx.pending = nil
			notifyUnique(pending)
		}
		ctx.leave(gid)
	}()

	fn()
}

// queueInBatch queues l when the current goroutine is inside a Batch and
// reports whether it did.
func queueInBatch(l Listener) bool {
	ctx := lookupTracking()
	if ctx == nil || ctx.batchDepth == 0 {
		return false
	}
	ctx.pending = append(ctx.pending, l)
	return true
}

// notifyUnique marks each distinct listener dirty once.
func notifyUnique(listeners []Listener) {
	if len(listeners) == 0 {
		return
	}
	seen := make(map[uint64]struct{}, len(listeners))
	for _, l := range listeners {
		id := l.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		l.MarkDirty()
	}
}
