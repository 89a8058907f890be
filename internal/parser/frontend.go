package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/godscn/internal/source"
)

// Frontend extracts the structural class model from one kind of file
type Frontend interface {
	// Name identifies the frontend in messages
	Name() string

	// Extensions lists the lower-case file extensions the frontend reads
	Extensions() []string

	// ParseClasses returns the classes declared in content
	ParseClasses(ctx context.Context, path string, content []byte) ([]*source.Class, error)
}

// Registry dispatches files to frontends by extension
type Registry struct {
	byExt map[string]Frontend
}

// NewRegistry creates a registry. A later frontend replaces an earlier one
// registered for the same extension.
func NewRegistry(frontends ...Frontend) *Registry {
	r := &Registry{byExt: make(map[string]Frontend)}
	for _, f := range frontends {
		r.Register(f)
	}
	return r
}

// DefaultRegistry returns a registry with the Java, Python and model frontends
func DefaultRegistry() *Registry {
	return NewRegistry(NewJavaFrontend(), NewPythonFrontend(), NewModelFrontend())
}

// Register adds a frontend for all of its extensions
func (r *Registry) Register(f Frontend) {
	for _, ext := range f.Extensions() {
		r.byExt[strings.ToLower(ext)] = f
	}
}

// For returns the frontend responsible for path
func (r *Registry) For(path string) (Frontend, bool) {
	f, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Supports reports whether some frontend reads path
func (r *Registry) Supports(path string) bool {
	_, ok := r.For(path)
	return ok
}

// Extensions returns the registered extensions, sorted
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParseFile parses content with the frontend registered for path
func (r *Registry) ParseFile(ctx context.Context, path string, content []byte) ([]*source.Class, error) {
	f, ok := r.For(path)
	if !ok {
		return nil, fmt.Errorf("no frontend for %s", path)
	}
	classes, err := f.ParseClasses(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%s frontend: %w", f.Name(), err)
	}
	return classes, nil
}

// ModelFrontend reads classes from model files written by `godscn apply`
// or by hand
type ModelFrontend struct{}

// NewModelFrontend creates a model file frontend
func NewModelFrontend() *ModelFrontend { return &ModelFrontend{} }

// Name returns "model"
func (f *ModelFrontend) Name() string { return "model" }

// Extensions returns the model file extensions
func (f *ModelFrontend) Extensions() []string { return []string{".yaml", ".yml", ".json"} }

// ParseClasses decodes a model file
func (f *ModelFrontend) ParseClasses(ctx context.Context, path string, content []byte) ([]*source.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model, err := source.DecodeModel(path, content)
	if err != nil {
		return nil, err
	}
	return model.Classes, nil
}

// memberTable collects members in declaration order. Overloads and
// redefinitions share one member: later declarations contribute their
// accesses to the first one.
type memberTable struct {
	members []*source.Member
	byName  map[string]*source.Member
}

func newMemberTable() *memberTable {
	return &memberTable{byName: make(map[string]*source.Member)}
}

// add stores m and reports whether it was new
func (t *memberTable) add(m *source.Member) bool {
	if existing, ok := t.byName[m.Name]; ok {
		existing.Accesses = append(existing.Accesses, m.Accesses...)
		return false
	}
	t.byName[m.Name] = m
	t.members = append(t.members, m)
	return true
}

func (t *memberTable) get(name string) *source.Member { return t.byName[name] }

func (t *memberTable) has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// dedupeAccesses drops repeated accesses, keeping first occurrences in order
func dedupeAccesses(accesses []source.Access) []source.Access {
	if len(accesses) == 0 {
		return nil
	}
	seen := make(map[source.Access]bool, len(accesses))
	out := accesses[:0]
	for _, a := range accesses {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
