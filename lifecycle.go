package greenthreads

import "sync"

// lifecycleCoordinator encapsulates the shutdown sequence of a Scheduler.
// It does not own any state; it orders the steps and runs them exactly once.
type lifecycleCoordinator struct {
	stopIntake func()
	drain      func()
	closePool  func()
	onClosed   func()

	once sync.Once
}

func newLifecycleCoordinator(stopIntake, drain, closePool, onClosed func()) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		stopIntake: stopIntake,
		drain:      drain,
		closePool:  closePool,
		onClosed:   onClosed,
	}
}

// Close executes the shutdown sequence exactly once:
// 1) reject new tasks
// 2) wait for the in-flight counter to reach zero
// 3) stop the pool workers
// 4) report
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		for _, step := range []func(){lc.stopIntake, lc.drain, lc.closePool, lc.onClosed} {
			if step != nil {
				step()
			}
		}
	})
}
