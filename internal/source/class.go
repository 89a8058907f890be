package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ClassKind distinguishes the declaration forms a frontend can report
type ClassKind string

const (
	ClassKindClass     ClassKind = "class"
	ClassKindInterface ClassKind = "interface"
	ClassKindEnum      ClassKind = "enum"
)

// MemberKind is the kind of a declared class member
type MemberKind string

const (
	MemberField       MemberKind = "field"
	MemberMethod      MemberKind = "method"
	MemberConstructor MemberKind = "constructor"
)

// AccessKind describes how a member body touches another member
type AccessKind string

const (
	AccessRead  AccessKind = "read"
	AccessWrite AccessKind = "write"
	AccessCall  AccessKind = "call"
)

// Access is a reference from a member body to a member of some class.
// An empty Class means the declaring class itself.
type Access struct {
	Target string     `yaml:"target" json:"target"`
	Kind   AccessKind `yaml:"kind" json:"kind"`
	Class  string     `yaml:"class,omitempty" json:"class,omitempty"`

	// Via names the field or parameter the access goes through. Empty for
	// direct (this/self) accesses.
	Via string `yaml:"via,omitempty" json:"via,omitempty"`

	// Super marks accesses resolved against the superclass (super.x, super().m())
	Super bool `yaml:"super,omitempty" json:"super,omitempty"`
}

// IsLocal reports whether the access targets a member of the declaring class directly
func (a Access) IsLocal(className string) bool {
	return (a.Class == "" || a.Class == className) && a.Via == "" && !a.Super
}

// Member is a field, method or constructor declaration
type Member struct {
	Name       string     `yaml:"name" json:"name"`
	Kind       MemberKind `yaml:"kind" json:"kind"`
	Type       string     `yaml:"type,omitempty" json:"type,omitempty"`
	Parameters []string   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Line       int        `yaml:"line,omitempty" json:"line,omitempty"`

	Static       bool `yaml:"static,omitempty" json:"static,omitempty"`
	Final        bool `yaml:"final,omitempty" json:"final,omitempty"`
	Abstract     bool `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Overrides    bool `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	Synchronized bool `yaml:"synchronized,omitempty" json:"synchronized,omitempty"`

	Accesses []Access `yaml:"accesses,omitempty" json:"accesses,omitempty"`
}

// IsField reports whether the member is a field
func (m *Member) IsField() bool { return m.Kind == MemberField }

// IsMethod reports whether the member is a method or a constructor
func (m *Member) IsMethod() bool { return m.Kind == MemberMethod || m.Kind == MemberConstructor }

// Clone returns a deep copy of the member
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	c := *m
	if m.Parameters != nil {
		c.Parameters = append([]string(nil), m.Parameters...)
	}
	if m.Accesses != nil {
		c.Accesses = append([]Access(nil), m.Accesses...)
	}
	return &c
}

// Class is the structural representation of one class as supplied by a frontend
type Class struct {
	Name         string    `yaml:"name" json:"name"`
	Package      string    `yaml:"package,omitempty" json:"package,omitempty"`
	File         string    `yaml:"file,omitempty" json:"file,omitempty"`
	Kind         ClassKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Superclass   string    `yaml:"superclass,omitempty" json:"superclass,omitempty"`
	Interfaces   []string  `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Serializable bool      `yaml:"serializable,omitempty" json:"serializable,omitempty"`
	StartLine    int       `yaml:"start_line,omitempty" json:"start_line,omitempty"`
	EndLine      int       `yaml:"end_line,omitempty" json:"end_line,omitempty"`
	Members      []*Member `yaml:"members" json:"members"`
}

// Member returns the member with the given name, or nil
func (c *Class) Member(name string) *Member {
	for _, m := range c.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Fields returns the field declarations in declaration order
func (c *Class) Fields() []*Member {
	var fields []*Member
	for _, m := range c.Members {
		if m.IsField() {
			fields = append(fields, m)
		}
	}
	return fields
}

// Methods returns methods and constructors in declaration order
func (c *Class) Methods() []*Member {
	var methods []*Member
	for _, m := range c.Members {
		if m.IsMethod() {
			methods = append(methods, m)
		}
	}
	return methods
}

// Clone returns a deep copy of the class
func (c *Class) Clone() *Class {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Interfaces != nil {
		cp.Interfaces = append([]string(nil), c.Interfaces...)
	}
	cp.Members = make([]*Member, len(c.Members))
	for i, m := range c.Members {
		cp.Members[i] = m.Clone()
	}
	return &cp
}

// Validate checks that member names are unique and non-empty
func (c *Class) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("class without a name")
	}
	seen := make(map[string]bool, len(c.Members))
	for i, m := range c.Members {
		if m == nil || m.Name == "" {
			return fmt.Errorf("class %s: member %d has no name", c.Name, i)
		}
		if seen[m.Name] {
			return fmt.Errorf("class %s: duplicate member %s", c.Name, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// Encode returns the canonical YAML encoding of the class
func (c *Class) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}

// Fingerprint returns a content hash of the canonical encoding. Two classes
// with equal fingerprints are structurally identical.
func (c *Class) Fingerprint() string {
	data, err := c.Encode()
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
