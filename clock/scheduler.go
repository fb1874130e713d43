package clock

import "container/heap"

// Scheduler is a single-threaded cooperative timer queue over simulated ticks.
// A process suspends by returning and resumes when its wake tick is reached;
// processes due on the same tick run in the order they were scheduled.
type Scheduler struct {
	now   Tick
	seq   uint64
	queue timerQueue
}

type timer struct {
	wake   Tick
	seq    uint64
	period Duration // 0 for one-shot
	fn     func(now Tick) bool
}

// NewScheduler creates a scheduler at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current tick.
func (s *Scheduler) Now() Tick {
	return s.now
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Timeout runs fn once, after d ticks.
// A zero or negative d runs fn on the current tick if the scheduler is
// already processing it, otherwise on the next Advance.
func (s *Scheduler) Timeout(d Duration, fn func(now Tick)) {
	s.push(d, 0, func(now Tick) bool {
		fn(now)
		return false
	})
}

// Every runs fn every period ticks, first after one period, for as long as fn
// returns true. Periods below one tick are raised to one.
func (s *Scheduler) Every(period Duration, fn func(now Tick) bool) {
	if period < 1 {
		period = 1
	}
	s.push(period, period, fn)
}

func (s *Scheduler) push(d, period Duration, fn func(now Tick) bool) {
	s.seq++
	heap.Push(&s.queue, &timer{
		wake:   s.now.Add(d),
		seq:    s.seq,
		period: period,
		fn:     fn,
	})
}

// Advance increments the tick and runs every timer due at or before it.
func (s *Scheduler) Advance() Tick {
	s.now++
	s.runDue()
	return s.now
}

func (s *Scheduler) runDue() {
	for len(s.queue) > 0 && s.queue[0].wake <= s.now {
		t := heap.Pop(&s.queue).(*timer)
		again := t.fn(s.now)
		if again && t.period > 0 {
			s.seq++
			t.wake = s.now.Add(t.period)
			t.seq = s.seq
			heap.Push(&s.queue, t)
		}
	}
}

// timerQueue orders timers by wake tick, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].wake != q[j].wake {
		return q[i].wake < q[j].wake
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
