// Package scheduler runs typed work on a fixed pool of workers and hands back
// futures.
//
// The installer driver uses it for scenario matrices: every scenario owns its
// own driver and log directory, and at most N of them talk to installers at
// the same time.
//
// # Work and futures
//
// A Work[T] is a func(ctx) (T, error). AddWork queues it and returns a
// *Future[T] whose channel receives exactly one Result[T]:
//
//	s := scheduler.NewScheduler[*models.Run](2)
//	defer s.Close()
//
//	f := s.AddWork(func(ctx context.Context) (*models.Run, error) {
//	    return svc.Execute(ctx, scenario)
//	})
//	r := f.Wait(ctx) // r.Data, r.Err
//
// Future.Stop cancels the context passed to the work. A panic inside the work
// is recovered, logged, and delivered as Result.Err.
//
// # RunAll
//
// RunAll submits a slice of work and waits for all of it. Results come back
// in submission order whatever order the workers finish in; when ctx ends
// first, the pending entries carry ctx.Err():
//
//	results := scheduler.RunAll(ctx, s, works)
//
// MatrixService builds one Work per scenario and maps results[i] back to
// scenarios[i].
//
// # Close
//
// Close cancels running work, answers every queued request with
// context.Canceled, and returns once running work has returned. AddWork after
// Close yields a future that already holds context.Canceled. Close is
// idempotent.
package scheduler
