package directive

import (
	"fmt"
	"io"
)

// Keys understood by the host build system.
const (
	KeyRerunIfChanged = "rerun-if-changed"
	KeyLinkSearch     = "link-search"
	KeyLinkLib        = "link-lib"
	KeyLinkFramework  = "link-framework"
)

// prefix marks every line of the bridge's directive protocol so the build
// system can separate directives from stray subprocess output.
const prefix = "bridge:"

// Directive is one key/value instruction to the host build system.
type Directive struct {
	Key   string
	Value string
}

func (d Directive) String() string {
	return prefix + d.Key + "=" + d.Value
}

// Set is an ordered collection of directives. Order is preserved exactly
// as added; the build system applies them in sequence.
type Set struct {
	dirs []Directive
}

// Add appends a directive.
func (s *Set) Add(key, value string) {
	s.dirs = append(s.dirs, Directive{Key: key, Value: value})
}

// RerunIfChanged registers a path whose changes re-trigger the pipeline.
func (s *Set) RerunIfChanged(path string) {
	s.Add(KeyRerunIfChanged, path)
}

// LinkSearch registers a directory for the linker's library search path.
func (s *Set) LinkSearch(dir string) {
	s.Add(KeyLinkSearch, dir)
}

// LinkStatic requires the named archive to be linked statically.
func (s *Set) LinkStatic(name string) {
	s.Add(KeyLinkLib, "static="+name)
}

// LinkSystemLib links a system library dynamically.
func (s *Set) LinkSystemLib(name string) {
	s.Add(KeyLinkLib, name)
}

// LinkFramework links a platform framework.
func (s *Set) LinkFramework(name string) {
	s.Add(KeyLinkFramework, name)
}

// Directives returns the ordered directives.
func (s *Set) Directives() []Directive {
	return s.dirs
}

// Lines renders every directive as a protocol line, in order.
func (s *Set) Lines() []string {
	lines := make([]string, len(s.dirs))
	for i, d := range s.dirs {
		lines[i] = d.String()
	}
	return lines
}

// Has reports whether the set contains an exact key/value pair.
func (s *Set) Has(key, value string) bool {
	for _, d := range s.dirs {
		if d.Key == key && d.Value == value {
			return true
		}
	}
	return false
}

// Emit writes the line-oriented protocol to w. Emission itself cannot fail
// beyond the writer's own error; a wrong or missing directive surfaces
// later, at link time.
func (s *Set) Emit(w io.Writer) error {
	for _, d := range s.dirs {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}
