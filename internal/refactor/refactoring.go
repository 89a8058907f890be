package refactor

import (
	"github.com/ludo-technologies/godscn/internal/analyzer"
)

// Kind names a refactoring variant
type Kind string

const (
	KindExtractClass     Kind = "extract_class"
	KindMoveMethod       Kind = "move_method"
	KindExtractMethod    Kind = "extract_method"
	KindReplaceTypeCheck Kind = "replace_type_check"
)

// Refactoring is the closed set of refactorings the tool knows about.
// Only ExtractClass can be applied.
type Refactoring interface {
	Kind() Kind
	SourceClass() string
	sealed()
}

// ExtractClass moves a candidate's members into a new class
type ExtractClass struct {
	Candidate *analyzer.ExtractClassCandidateRefactoring

	// TargetName overrides the candidate's proposed class name
	TargetName string
}

func (ExtractClass) Kind() Kind { return KindExtractClass }

func (r ExtractClass) SourceClass() string {
	if r.Candidate == nil {
		return ""
	}
	return r.Candidate.SourceClass
}

func (ExtractClass) sealed() {}

// MoveMethod moves one method to another class
type MoveMethod struct {
	Class                 string
	Method                string
	TargetClass           string
	SourceAccessedMembers int
	TargetAccessedMembers int
}

func (MoveMethod) Kind() Kind            { return KindMoveMethod }
func (r MoveMethod) SourceClass() string { return r.Class }
func (MoveMethod) sealed()               {}

// ExtractMethod pulls statements out of a method body
type ExtractMethod struct {
	Class               string
	Method              string
	ExtractedStatements int
}

func (ExtractMethod) Kind() Kind            { return KindExtractMethod }
func (r ExtractMethod) SourceClass() string { return r.Class }
func (ExtractMethod) sealed()               {}

// ReplaceTypeCheck replaces a type-checking conditional with polymorphism
type ReplaceTypeCheck struct {
	Class                    string
	Method                   string
	AverageStatementsPerCase float64
}

func (ReplaceTypeCheck) Kind() Kind            { return KindReplaceTypeCheck }
func (r ReplaceTypeCheck) SourceClass() string { return r.Class }
func (ReplaceTypeCheck) sealed()               {}
