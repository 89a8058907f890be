package analyzer

import (
	"sort"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
)

// EntityKind is the kind of a class model entity
type EntityKind string

const (
	EntityField  EntityKind = "field"
	EntityMethod EntityKind = "method"
)

// Reasons an entity is pinned to the source class
const (
	PinConstructor    = "constructor"
	PinAbstract       = "abstract method"
	PinOverride       = "overrides an inherited method"
	PinInheritedReach = "reaches inherited members"
)

// Entity is a field or method of a ClassModel. Entities are immutable once
// the model is built.
type Entity struct {
	// ID is the declaration index within the class
	ID     int
	Name   string
	Kind   EntityKind
	Static bool
	Line   int

	Constructor bool
	Pinned      bool
	PinReason   string

	accesses []int
}

// IsField reports whether the entity is a field
func (e *Entity) IsField() bool { return e.Kind == EntityField }

// IsMethod reports whether the entity is a method
func (e *Entity) IsMethod() bool { return e.Kind == EntityMethod }

// Accesses returns the IDs of entities this entity reads, writes or calls, sorted
func (e *Entity) Accesses() []int {
	return append([]int(nil), e.accesses...)
}

// ClassModel is the structural model of one class used by the clustering pipeline
type ClassModel struct {
	ClassName     string
	FilePath      string
	Fingerprint   string
	Superclass    string
	StartLine     int
	EndLine       int
	entities      []*Entity
	byName        map[string]int
	pinnedCount   int
	movableCount  int
	instanceCount int
}

// Entities returns all entities in declaration order
func (m *ClassModel) Entities() []*Entity { return m.entities }

// Entity returns the entity with the given declaration index
func (m *ClassModel) Entity(id int) *Entity { return m.entities[id] }

// Lookup returns the entity with the given name
func (m *ClassModel) Lookup(name string) (*Entity, bool) {
	id, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.entities[id], true
}

// Len returns the number of entities
func (m *ClassModel) Len() int { return len(m.entities) }

// PinnedCount returns the number of entities that stay in the source class
func (m *ClassModel) PinnedCount() int { return m.pinnedCount }

// Movable returns the entities that may be extracted, in declaration order
func (m *ClassModel) Movable() []*Entity {
	movable := make([]*Entity, 0, m.movableCount)
	for _, e := range m.entities {
		if !e.Pinned {
			movable = append(movable, e)
		}
	}
	return movable
}

// ModelOptions controls which members are pinned and which classes are skipped
type ModelOptions struct {
	PinOverridingMethods bool
	SkipSerializable     bool
}

// DefaultModelOptions returns the default extraction policy
func DefaultModelOptions() *ModelOptions {
	return &ModelOptions{
		PinOverridingMethods: true,
		SkipSerializable:     true,
	}
}

// ClassModelExtractor builds ClassModels from source classes
type ClassModelExtractor struct {
	options *ModelOptions
}

// NewClassModelExtractor creates a new extractor
func NewClassModelExtractor(options *ModelOptions) *ClassModelExtractor {
	if options == nil {
		options = DefaultModelOptions()
	}
	return &ClassModelExtractor{options: options}
}

// Extract builds the model of a class. It returns a domain.ErrUnmovableModel
// error when the class cannot be split at all.
func (x *ClassModelExtractor) Extract(class *source.Class) (*ClassModel, error) {
	if class == nil {
		return nil, domain.NewUnmovableModelError("<nil>", "no class")
	}

	switch class.Kind {
	case source.ClassKindInterface, source.ClassKindEnum:
		return nil, domain.NewUnmovableModelError(class.Name, string(class.Kind)+"s cannot be split")
	}
	if x.options.SkipSerializable && class.Serializable {
		return nil, domain.NewUnmovableModelError(class.Name, "serializable classes are skipped")
	}

	model := &ClassModel{
		ClassName:   class.Name,
		FilePath:    class.File,
		Fingerprint: class.Fingerprint(),
		Superclass:  class.Superclass,
		StartLine:   class.StartLine,
		EndLine:     class.EndLine,
		entities:    make([]*Entity, 0, len(class.Members)),
		byName:      make(map[string]int, len(class.Members)),
	}

	declared := make([]*source.Member, 0, len(class.Members))
	for _, m := range class.Members {
		if m == nil {
			continue
		}
		if _, dup := model.byName[m.Name]; dup {
			continue
		}
		e := &Entity{
			ID:          len(model.entities),
			Name:        m.Name,
			Kind:        EntityMethod,
			Static:      m.Static,
			Line:        m.Line,
			Constructor: m.Kind == source.MemberConstructor,
		}
		if m.IsField() {
			e.Kind = EntityField
		}
		e.PinReason = x.pinReason(m)
		e.Pinned = e.PinReason != ""
		model.byName[m.Name] = e.ID
		model.entities = append(model.entities, e)
		declared = append(declared, m)
	}

	// Resolve accesses once every entity has an ID
	for id, m := range declared {
		if m.IsMethod() {
			model.entities[id].accesses = resolveAccesses(class.Name, m, model.byName, id)
		}
	}

	for _, e := range model.entities {
		if e.Pinned {
			model.pinnedCount++
			continue
		}
		model.movableCount++
		if !e.Static {
			model.instanceCount++
		}
	}

	if model.movableCount < 2 {
		return nil, domain.NewUnmovableModelError(class.Name, "fewer than two extractable members")
	}
	if model.instanceCount == 0 {
		return nil, domain.NewUnmovableModelError(class.Name, "no extractable instance member")
	}
	return model, nil
}

func (x *ClassModelExtractor) pinReason(m *source.Member) string {
	if m.IsField() {
		return ""
	}
	switch {
	case m.Kind == source.MemberConstructor:
		return PinConstructor
	case m.Abstract:
		return PinAbstract
	case m.Overrides && x.options.PinOverridingMethods:
		return PinOverride
	}
	for _, a := range m.Accesses {
		if a.Super {
			return PinInheritedReach
		}
	}
	return ""
}

// resolveAccesses keeps direct accesses to members of the same class, dropping
// self references, duplicates and anything outside the class.
func resolveAccesses(className string, m *source.Member, byName map[string]int, self int) []int {
	seen := make(map[int]bool, len(m.Accesses))
	var out []int
	for _, a := range m.Accesses {
		if !a.IsLocal(className) {
			continue
		}
		id, ok := byName[a.Target]
		if !ok || id == self || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
