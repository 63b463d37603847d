package greenthreads

import "errors"

const Namespace = "greenthreads"

var (
	ErrInvalidConfig       = errors.New(Namespace + ": invalid configuration")
	ErrPoolInit            = errors.New(Namespace + ": cannot initialize worker pool")
	ErrNilTask             = errors.New(Namespace + ": nil task")
	ErrSchedulerClosed     = errors.New(Namespace + ": scheduler is closed")
	ErrAlreadyInitialized  = errors.New(Namespace + ": default scheduler is already initialized")
	ErrTaskPanicked        = errors.New(Namespace + ": task execution panicked")
	ErrCounterUnderflow    = errors.New(Namespace + ": in-flight counter underflow")
	ErrUnknownWaitStrategy = errors.New(Namespace + ": unknown wait strategy")
)
