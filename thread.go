package logvisor

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// threadNames maps goroutine ids to human-readable names. Entries are only
// added or replaced, never removed.
type threadNames struct {
	mtx   sync.RWMutex
	names map[uint64]string
}

func newThreadNames() *threadNames {
	return &threadNames{names: map[uint64]string{}}
}

// Stores the name for the calling goroutine and asks the OS to label the
// underlying thread (best effort, see setOSThreadName).
func (t *threadNames) register(name string) {
	id := goroutineID()
	t.mtx.Lock()
	t.names[id] = name
	t.mtx.Unlock()
	setOSThreadName(name)
}

// Returns the name registered by the calling goroutine or "".
func (t *threadNames) lookup() string {
	id := goroutineID()
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.names[id]
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID extracts the current goroutine id from the runtime stack
// header ("goroutine 42 [running]:"). Returns 0 if the header is unexpected.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
