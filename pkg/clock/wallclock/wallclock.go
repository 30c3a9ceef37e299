// Package wallclock implements the Clock interface on top of the system time.
package wallclock

import (
	"time"
)

type Clock struct{}

func New() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Time {
	return time.Now()
}
