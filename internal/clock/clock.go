package clock

import "time"

// Clock abstracts time.Now so the settlement engine and OTP state machine can
// be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}
