package binary

import (
	"sync"

	. "github.com/cricklet/perftdiff/internal/helpers"
)

type StdOutBuffer struct {
	lock   sync.Mutex
	buffer []string
	update chan bool
	read   int
	closed bool

	noCopy NoCopy
}

func NewStdOutBuffer() *StdOutBuffer {
	return &StdOutBuffer{update: make(chan bool, 1)}
}

func (u *StdOutBuffer) Update(line string) {
	u.lock.Lock()
	u.buffer = append(u.buffer, line)
	u.lock.Unlock()

	select {
	case u.update <- true:
	default:
	}
}

func (u *StdOutBuffer) Flush(callback func(line string) Error) Error {
	u.lock.Lock()
	pending := u.buffer[u.read:]
	u.read = len(u.buffer)
	u.lock.Unlock()

	var err Error
	for _, line := range pending {
		err = callback(line)
		if !IsNil(err) {
			break
		}
	}

	return err
}

// Close marks the end of the stream. Readers waiting on Wait are woken so
// they can observe Exhausted instead of blocking forever.
func (u *StdOutBuffer) Close() {
	u.lock.Lock()
	u.closed = true
	u.lock.Unlock()

	select {
	case u.update <- true:
	default:
	}
}

// Exhausted reports that the stream has ended and every buffered line has
// been flushed.
func (u *StdOutBuffer) Exhausted() bool {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.closed && u.read == len(u.buffer)
}

func (u *StdOutBuffer) Wait() chan bool {
	return u.update
}
