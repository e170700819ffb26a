package tuner

import (
	"sync"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// frameQueue is the bounded FIFO handoff between the capture producer
// and the analysis loop. When full it drops the oldest unprocessed
// frame instead of blocking the producer: a live tuner has no use for
// stale audio.
type frameQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	frames  []core.Frame
	depth   int
	closed  bool
	dropped uint64
}

func newFrameQueue(depth int) *frameQueue {
	q := &frameQueue{
		frames: make([]core.Frame, 0, depth),
		depth:  depth,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues a frame, evicting the oldest one on overflow.
func (q *frameQueue) push(f core.Frame) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	if len(q.frames) == q.depth {
		copy(q.frames, q.frames[1:])
		q.frames = q.frames[:len(q.frames)-1]
		q.dropped++
	}

	q.frames = append(q.frames, f)
	q.cond.Signal()
}

// pop blocks until a frame is available or the queue is closed and
// drained. The second return value is false once the queue is done.
func (q *frameQueue) pop() (core.Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.frames) == 0 {
		return core.Frame{}, false
	}

	f := q.frames[0]
	copy(q.frames, q.frames[1:])
	q.frames = q.frames[:len(q.frames)-1]

	return f, true
}

// close wakes all waiters; pending frames remain poppable.
func (q *frameQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// droppedCount reports how many frames were evicted under backpressure.
func (q *frameQueue) droppedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.dropped
}
