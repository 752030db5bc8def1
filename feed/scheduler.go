package feed

import "time"

// Timer is the cancellation handle of a scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler arms delayed calls. The feed uses it for the search debounce.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
