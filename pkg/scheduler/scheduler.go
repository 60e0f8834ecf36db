package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type workRequest[T any] struct {
	fn  Work[T]
	c   chan Result[T]
	ctx context.Context
}

type worker[T any] struct {
	done chan struct{}
	wg   *sync.WaitGroup
}

func (w worker[T]) Work(r workRequest[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("scheduler").Errorw("worker panicked", "panic", rec)
			r.c <- Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		w.wg.Done()
		w.done <- struct{}{}
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[T]{Data: v, Err: err}
}

// Scheduler runs submitted work on a fixed pool of workers.
type Scheduler[T any] struct {
	workers    *queue[worker[T]]
	workQueue  *queue[workRequest[T]]
	close      chan struct{}
	done       chan struct{}
	exited     chan struct{}
	work       chan workRequest[T]
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler[T any](nbWorkers int) *Scheduler[T] {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		workers:    &queue[worker[T]]{},
		workQueue:  &queue[workRequest[T]]{},
		close:      make(chan struct{}),
		done:       make(chan struct{}, nbWorkers),
		exited:     make(chan struct{}),
		work:       make(chan workRequest[T]),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(worker[T]{done: s.done, wg: &s.wg})
	}
	go s.run()
	return s
}

// AddWork queues fn and returns its future. After Close the future already
// holds context.Canceled.
func (s *Scheduler[T]) AddWork(fn Work[T]) *Future[T] {
	c := make(chan Result[T], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case <-s.mainCtx.Done():
		c <- Result[T]{Err: context.Canceled}
	case s.work <- workRequest[T]{fn: fn, c: c, ctx: ctx}:
	}

	return newFuture(c, cancel)
}

// Close cancels queued and running work and waits for running work to return.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.mainCancel()
		close(s.close)
		<-s.exited
	})
}

func (s *Scheduler[T]) run() {
	defer close(s.exited)
	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			s.dispatch()
		case <-s.done:
			s.workers.Push(worker[T]{done: s.done, wg: &s.wg})
			s.dispatch()
		case <-s.close:
			for s.workQueue.Len() > 0 {
				r := s.workQueue.Pop()
				r.c <- Result[T]{Err: context.Canceled}
			}
			s.wg.Wait()
			return
		}
	}
}

// dispatch drains the workQueue as much as possible
// based on available workers
func (s *Scheduler[T]) dispatch() {
	for s.workers.Len() > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		w := s.workers.Pop()
		s.wg.Add(1)
		go w.Work(r)
	}
}

// RunAll submits every item of works and returns the results in submission
// order. It returns once all of them have completed or ctx is done.
func RunAll[T any](ctx context.Context, s *Scheduler[T], works []Work[T]) []Result[T] {
	futures := make([]*Future[T], 0, len(works))
	for _, w := range works {
		futures = append(futures, s.AddWork(w))
	}

	results := make([]Result[T], len(futures))
	for i, f := range futures {
		results[i] = f.Wait(ctx)
	}
	return results
}
