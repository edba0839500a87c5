package gen

import (
	"fmt"
	"slices"
	"sync"

	"github.com/syssam/modelgen"
)

// Target renders units for one output language. Rendering must be
// deterministic: the same unit always yields the same bytes.
type Target interface {
	// Name identifies the target, e.g. "go" or "java".
	Name() string
	// Base is the base entity generated units extend.
	Base() BaseRef
	// FileName is the file name of the rendered unit, relative to the
	// output directory.
	FileName(u *Unit) string
	// Render returns the source of the unit.
	Render(u *Unit) ([]byte, error)
}

// Formatter is implemented by targets that post-process rendered source
// before it is written, e.g. to format it or fix its imports.
type Formatter interface {
	Format(path string, src []byte) ([]byte, error)
}

// HeaderSetter is implemented by targets that start every file with a
// header comment.
type HeaderSetter interface {
	SetHeader(header string) Target
}

var (
	targetsMu sync.RWMutex
	targets   = make(map[string]Target)
)

// RegisterTarget makes a target available by name. It panics if a target
// with the same name is already registered.
func RegisterTarget(t Target) {
	targetsMu.Lock()
	defer targetsMu.Unlock()
	if _, dup := targets[t.Name()]; dup {
		panic("modelgen/gen: RegisterTarget called twice for target " + t.Name())
	}
	targets[t.Name()] = t
}

// NewTarget returns the registered target with the given name.
func NewTarget(name string) (Target, error) {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	if t, ok := targets[name]; ok {
		return t, nil
	}
	return nil, modelgen.NewConfigError("target", fmt.Sprintf("unknown target %q (registered: %v)", name, targetNames()), nil)
}

// Targets returns the names of the registered targets, sorted.
func Targets() []string {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	return targetNames()
}

func targetNames() []string {
	names := make([]string, 0, len(targets))
	for n := range targets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
