package rename

import (
	"errors"
	"syscall"
)

// ErrTargetExists is returned when the target path is taken and Force is off.
var ErrTargetExists = errors.New("target already exists")

// transientErrnos are worth another attempt: the file is briefly locked
// (network shares, render farm readers) or the call was interrupted.
var transientErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.EAGAIN,
	syscall.ETIMEDOUT,
	syscall.EINTR,
}

// IsTransient reports whether err is a retryable filesystem error.
func IsTransient(err error) bool {
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
