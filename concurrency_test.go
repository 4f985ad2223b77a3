package logvisor

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every goroutine reports _DATACOUNT_ numbered lines through its own module.
// Each sink must receive exactly _GOROUTINES_*_DATACOUNT_ whole lines and
// the lines of one goroutine must keep their order.
func Test_Parallel_Multithreading(t *testing.T) {
	const (
		_DATACOUNT_  = 200 // Number of messages every goroutine has to report
		_GOROUTINES_ = 50  // Number of simultaneous goroutines reporting
	)
	path := filepath.Join(t.TempDir(), "parallel.log")
	ferr := &FakeWriter{}
	r := newTestRegistry(ferr, nil)
	out1 := &FakeWriter{}
	out2 := &FakeWriter{}
	r.RegisterSink(NewWriterSink(out1, COLOR_NEVER))
	r.RegisterSink(NewConsoleSinkTo(out2, COLOR_ALWAYS))
	r.RegisterFileLogger(path)

	var wg sync.WaitGroup
	hold := make(chan struct{})
	for g := range _GOROUTINES_ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := r.NewModule(fmt.Sprintf("w%03d", g))
			<-hold // wait until channel is closed (to start all together)
			for i := range _DATACOUNT_ {
				m.Report(LVL_INFO, "%d %s", i, testlogstr)
			}
		}()
	}
	close(hold)
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for name, out := range map[string]string{
		"writer":  out1.String(),
		"console": stripANSI(out2.String()),
		"file":    string(data),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, checkParallelOutput(out, _GOROUTINES_, _DATACOUNT_))
		})
	}
	assert.Empty(t, ferr.String(), "unexpected fallback errors writes")
}

// Parses lines "[1.5000 INFO wNNN] <i> <testlogstr>" and checks counts and
// per-module ordering.
func checkParallelOutput(out string, goroutines, count int) error {
	next := make([]int, goroutines)
	total := 0
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		total++
		rest, ok := strings.CutPrefix(line, "[1.5000 INFO w")
		if !ok {
			return fmt.Errorf("line %d: unexpected header: %q", total, line)
		}
		worker, err := strconv.Atoi(rest[:3])
		if err != nil || worker >= goroutines {
			return fmt.Errorf("line %d: bad module name: %q", total, line)
		}
		body, ok := strings.CutPrefix(rest[3:], "] ")
		if !ok {
			return fmt.Errorf("line %d: torn header: %q", total, line)
		}
		want := strconv.Itoa(next[worker]) + " " + testlogstr
		if body != want {
			return fmt.Errorf("line %d: module w%03d: wanted %q, got %q", total, worker, want, body)
		}
		next[worker]++
	}
	if total != goroutines*count {
		return fmt.Errorf("wrong number of lines: %d instead of %d", total, goroutines*count)
	}
	return sc.Err()
}
