package runtime

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Registry tracks spawned and tracked processes by handle. It is constructed
// once at startup and injected wherever process state is needed; the lock is
// held only for the single map operation, never across a spawn or kill.
type Registry struct {
	mu    sync.Mutex
	procs map[int]ProcessRecord
	// osProcs holds the OS process for locally spawned entries so Kill can
	// signal it. Docker pseudo-handles and tracked placeholders have none.
	osProcs map[int]*os.Process
}

// NewRegistry creates an empty process registry.
func NewRegistry() *Registry {
	return &Registry{
		procs:   make(map[int]ProcessRecord),
		osProcs: make(map[int]*os.Process),
	}
}

// Insert records a process. An attached OS process may be nil for synthetic
// handles.
func (r *Registry) Insert(rec ProcessRecord, proc *os.Process) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[rec.PID] = rec
	if proc != nil {
		r.osProcs[rec.PID] = proc
	}
}

// Get returns a copy of the record for the given handle.
func (r *Registry) Get(pid int) (ProcessRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.procs[pid]
	return rec, ok
}

// Contains reports whether a handle is registered.
func (r *Registry) Contains(pid int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.procs[pid]
	return ok
}

// Kill marks the record Stopped and signals the attached OS process if one
// exists. Absent handles are an error, never a silent no-op. A record never
// transitions back to Running.
func (r *Registry) Kill(pid int) error {
	r.mu.Lock()
	rec, ok := r.procs[pid]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	rec.Status = ProcessStopped
	r.procs[pid] = rec
	proc := r.osProcs[pid]
	delete(r.osProcs, pid)
	r.mu.Unlock()

	if proc != nil {
		// The process may already have exited; the registry state is what
		// callers observe either way.
		_ = proc.Kill()
	}
	return nil
}

// nextSyntheticPID derives a time-based handle for tracked processes that
// have no OS pid of their own. The caller must hold no registry lock.
func (r *Registry) nextSyntheticPID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid := int(time.Now().UnixNano() & 0x7fffffff)
	for {
		if _, taken := r.procs[pid]; !taken {
			return pid
		}
		pid++
	}
}

// OutputBuffer holds captured process output keyed by handle, guarded by its
// own lock independent of the registry. Text is append-only for the life of
// the session.
type OutputBuffer struct {
	mu  sync.Mutex
	out map[int]*strings.Builder
}

// NewOutputBuffer creates an empty output buffer.
func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{out: make(map[int]*strings.Builder)}
}

// Create allocates an empty slot for the handle.
func (b *OutputBuffer) Create(pid int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.out[pid]; !ok {
		b.out[pid] = &strings.Builder{}
	}
}

// Append adds text to the handle's slot, creating it if needed.
func (b *OutputBuffer) Append(pid int, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.out[pid]
	if !ok {
		buf = &strings.Builder{}
		b.out[pid] = buf
	}
	buf.WriteString(text)
}

// Get returns the accumulated text for the handle.
func (b *OutputBuffer) Get(pid int) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.out[pid]
	if !ok {
		return "", false
	}
	return buf.String(), true
}

// Lines splits the handle's accumulated text into lines. Absent handles
// yield an empty slice rather than an error; see StreamOutput.
func (b *OutputBuffer) Lines(pid int) []string {
	text, ok := b.Get(pid)
	if !ok || text == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// capture drains a process output stream into the buffer, one line at a
// time. It runs as a dedicated goroutine per spawned process and terminates
// when the stream reaches EOF; the buffer lock is taken only for each
// append. Lines have no length cap: model servers routinely log single-line
// JSON far past any fixed token limit.
func (b *OutputBuffer) capture(pid int, rc io.Reader) {
	reader := bufio.NewReader(rc)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			b.Append(pid, line)
		}
		if err != nil {
			return
		}
	}
}
