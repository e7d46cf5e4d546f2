package buffer

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Registry hands out unique buffer names.
type Registry struct {
	mu      sync.Mutex
	buffers map[string]*Buffer
	issued  map[string]int
}

// Default is the process-wide registry used when no other is configured.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buffers: make(map[string]*Buffer),
		issued:  make(map[string]int),
	}
}

// Claim reserves a name derived from base and returns it.
//
// The first claim of a base gets the base itself. Later claims get
// base[n], where n is one more than the largest suffix either registered
// now or issued before for that base. Released suffixes are not reused.
func (r *Registry) Claim(base string) string {
	return r.claim(base, nil)
}

func (r *Registry) claim(base string, b *Buffer) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.buffers[base]; !taken {
		r.buffers[base] = b
		return base
	}

	n := r.issued[base]
	for name := range r.buffers {
		if k, ok := suffix(name, base); ok && k > n {
			n = k
		}
	}

	var name string
	for {
		n++
		name = fmt.Sprintf("%s[%d]", base, n)
		if _, taken := r.buffers[name]; !taken {
			break
		}
	}

	r.issued[base] = n
	r.buffers[name] = b
	return name
}

// Release frees a name. Releasing an unknown name is a no-op.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buffers, name)
}

// Lookup returns the buffer registered under name. Names reserved with
// Claim report ok with a nil buffer.
func (r *Registry) Lookup(name string) (*Buffer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buffers[name]
	return b, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.buffers))
}

// suffix parses name as base[k] with k > 0.
func suffix(name, base string) (int, bool) {
	rest, ok := strings.CutPrefix(name, base+"[")
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, "]")
	if !ok || digits == "" {
		return 0, false
	}
	k, err := strconv.Atoi(digits)
	if err != nil || k <= 0 || strconv.Itoa(k) != digits {
		return 0, false
	}
	return k, true
}
