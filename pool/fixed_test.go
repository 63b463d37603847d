package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedPool_TableDriven(t *testing.T) {
	tests := []struct {
		name string
		size int
		run  func(t *testing.T, p *Fixed)
	}{
		{
			name: "runs every submitted function exactly once",
			size: 4,
			run: func(t *testing.T, p *Fixed) {
				const n = 1000
				var ran atomic.Int64
				var wg sync.WaitGroup
				wg.Add(n)
				for i := 0; i < n; i++ {
					if err := p.Submit(func() { ran.Add(1); wg.Done() }); err != nil {
						t.Fatalf("Submit returned error: %v", err)
					}
				}
				wg.Wait()
				if got := ran.Load(); got != n {
					t.Fatalf("ran = %d, want %d", got, n)
				}
			},
		},
		{
			name: "Submit does not wait for busy workers",
			size: 1,
			run: func(t *testing.T, p *Fixed) {
				release := make(chan struct{})
				defer close(release)
				started := make(chan struct{})
				if err := p.Submit(func() { close(started); <-release }); err != nil {
					t.Fatalf("Submit returned error: %v", err)
				}
				<-started

				submitted := make(chan struct{})
				go func() {
					for i := 0; i < 100; i++ {
						_ = p.Submit(func() {})
					}
					close(submitted)
				}()
				select {
				case <-submitted:
				case <-time.After(time.Second):
					t.Fatalf("Submit blocked while the only worker was busy")
				}
				if q := p.Queued(); q != 100 {
					t.Fatalf("Queued = %d, want 100", q)
				}
			},
		},
		{
			name: "idle worker steals from a blocked peer",
			size: 2,
			run: func(t *testing.T, p *Fixed) {
				release := make(chan struct{})
				var blockedOnce sync.Once
				blocking := func() { blockedOnce.Do(func() { <-release }) }

				var wg sync.WaitGroup
				wg.Add(20)
				// Both workers get a share of the queue; one of them is stuck on the first item.
				_ = p.Submit(func() { blocking(); wg.Done() })
				for i := 0; i < 19; i++ {
					_ = p.Submit(func() { wg.Done() })
				}

				waited := make(chan struct{})
				go func() { wg.Wait(); close(waited) }()

				// Everything except the blocked function must finish without releasing it.
				deadline := time.After(2 * time.Second)
				for {
					var executed uint64
					for _, s := range p.Stats() {
						executed += s.Executed
					}
					if executed == 19 {
						break
					}
					select {
					case <-deadline:
						t.Fatalf("executed = %d, want 19 while one worker is blocked", executed)
					case <-time.After(5 * time.Millisecond):
					}
				}

				var stolen uint64
				for _, s := range p.Stats() {
					stolen += s.Stolen
				}
				if stolen == 0 {
					t.Fatalf("expected at least one stolen function")
				}

				close(release)
				<-waited
			},
		},
		{
			name: "Close runs queued functions then rejects Submit",
			size: 2,
			run: func(t *testing.T, p *Fixed) {
				var ran atomic.Int64
				for i := 0; i < 50; i++ {
					_ = p.Submit(func() { time.Sleep(time.Millisecond); ran.Add(1) })
				}
				p.Close()
				if got := ran.Load(); got != 50 {
					t.Fatalf("ran = %d after Close, want 50", got)
				}
				if err := p.Submit(func() {}); err != ErrClosed {
					t.Fatalf("Submit after Close = %v, want ErrClosed", err)
				}
				// second Close is a no-op
				p.Close()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewFixed(tt.size)
			if err != nil {
				t.Fatalf("NewFixed: %v", err)
			}
			defer p.Close()

			if p.Size() != tt.size {
				t.Fatalf("Size = %d, want %d", p.Size(), tt.size)
			}
			tt.run(t, p)
		})
	}
}

func TestNewFixed_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		p, err := NewFixed(size)
		if err != ErrInvalidSize {
			t.Fatalf("NewFixed(%d) error = %v, want ErrInvalidSize", size, err)
		}
		if p != nil {
			t.Fatalf("NewFixed(%d) returned non-nil pool", size)
		}
	}
}

func TestFixedPool_PanicHandler(t *testing.T) {
	panics := make(chan any, 1)
	p, err := NewFixed(1, WithPanicHandler(func(r any) { panics <- r }))
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}
	defer p.Close()

	_ = p.Submit(func() { panic("boom") })

	select {
	case r := <-panics:
		if r != "boom" {
			t.Fatalf("recovered %v, want boom", r)
		}
	case <-time.After(time.Second):
		t.Fatalf("panic handler was not called")
	}

	// the worker survives the panic
	done := make(chan struct{})
	_ = p.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("worker did not run a function after recovering")
	}
}
