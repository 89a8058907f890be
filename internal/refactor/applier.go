package refactor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/analyzer"
	"github.com/ludo-technologies/godscn/internal/source"
)

// ApplierOptions configures the Applier
type ApplierOptions struct {
	MaxNameAttempts int

	// SourceParameter is the parameter name moved methods use to reach the source class
	SourceParameter string
}

// DefaultApplierOptions returns default applier options
func DefaultApplierOptions() *ApplierOptions {
	return &ApplierOptions{
		MaxNameAttempts: domain.DefaultMaxNameAttempts,
		SourceParameter: domain.DefaultSourceParameterName,
	}
}

// Result describes an applied Extract Class refactoring
type Result struct {
	TransactionID     string
	SourceClass       string
	TargetClass       string
	DelegateField     string
	MovedFields       []string
	MovedMethods      []string
	RewrittenAccesses int
}

// Applier applies refactorings to a workspace inside a transaction. Either
// every edit of a refactoring is committed or none is.
type Applier struct {
	workspace source.Transactor
	options   *ApplierOptions
	logger    *zap.Logger
}

// NewApplier creates an applier over a workspace
func NewApplier(workspace source.Transactor, options *ApplierOptions, logger *zap.Logger) *Applier {
	if options == nil {
		options = DefaultApplierOptions()
	}
	if options.SourceParameter == "" {
		options.SourceParameter = domain.DefaultSourceParameterName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{workspace: workspace, options: options, logger: logger}
}

// Apply performs the refactoring. Errors leave the workspace untouched.
func (a *Applier) Apply(ctx context.Context, r Refactoring) (*Result, error) {
	ec, ok := r.(ExtractClass)
	if !ok {
		kind := "<nil>"
		if r != nil {
			kind = string(r.Kind())
		}
		return nil, domain.NewUnsupportedRefactoringError(kind)
	}
	if ec.Candidate == nil {
		return nil, domain.NewInvalidInputError("extract class without a candidate", nil)
	}
	if err := analyzer.CheckCancelled(ctx); err != nil {
		return nil, err
	}

	tx, err := a.workspace.Begin(ctx)
	if err != nil {
		if analyzer.IsCancelled(ctx) {
			return nil, domain.NewCancelledError(err)
		}
		return nil, err
	}

	result, err := a.extractClass(ctx, tx, ec)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			a.logger.Warn("rollback failed", zap.String("tx", tx.ID()), zap.Error(rbErr))
		}
		a.logger.Debug("extract class rolled back",
			zap.String("tx", tx.ID()),
			zap.String("class", ec.SourceClass()),
			zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit extract class: %w", err)
	}

	a.logger.Info("extract class applied",
		zap.String("tx", result.TransactionID),
		zap.String("source", result.SourceClass),
		zap.String("target", result.TargetClass),
		zap.Int("fields", len(result.MovedFields)),
		zap.Int("methods", len(result.MovedMethods)),
		zap.Int("rewritten", result.RewrittenAccesses))
	return result, nil
}

func (a *Applier) extractClass(ctx context.Context, tx source.Tx, ec ExtractClass) (*Result, error) {
	cand := ec.Candidate

	src, ok := tx.Class(cand.SourceClass)
	if !ok {
		return nil, domain.NewStaleReferenceError(cand.SourceClass, cand.SourceClass)
	}
	if cand.SourceFingerprint != "" && src.Fingerprint() != cand.SourceFingerprint {
		return nil, domain.NewStaleReferenceError(cand.SourceClass)
	}

	moved := make(map[string]bool, len(cand.Entities))
	var missing []string
	for _, e := range cand.Entities {
		m := src.Member(e.Name)
		if m == nil || m.IsField() != e.IsField() || m.Kind == source.MemberConstructor {
			missing = append(missing, e.Name)
			continue
		}
		moved[e.Name] = true
	}
	if len(missing) > 0 {
		return nil, domain.NewStaleReferenceError(cand.SourceClass, missing...)
	}
	if len(moved) == 0 {
		return nil, domain.NewInvalidInputError("candidate extracts no members", nil)
	}
	cyclesBefore, err := Cycles(tx.Classes())
	if err != nil {
		return nil, fmt.Errorf("verify references: %w", err)
	}

	base := ec.TargetName
	if base == "" {
		base = cand.TargetClass
	}
	targetName, err := uniqueName(base, a.options.MaxNameAttempts, tx.HasClass)
	if err != nil {
		return nil, err
	}
	delegate, err := uniqueName(lowerCamel(targetName), a.options.MaxNameAttempts, func(name string) bool {
		return src.Member(name) != nil && !moved[name]
	})
	if err != nil {
		return nil, err
	}

	if err := analyzer.CheckCancelled(ctx); err != nil {
		return nil, err
	}

	target := &source.Class{
		Name:    targetName,
		Package: src.Package,
		Kind:    source.ClassKindClass,
	}
	if src.File != "" {
		target.File = filepath.Join(filepath.Dir(src.File), targetName+filepath.Ext(src.File))
	}

	result := &Result{
		TransactionID: tx.ID(),
		SourceClass:   src.Name,
		TargetClass:   targetName,
		DelegateField: delegate,
	}

	retained := make([]*source.Member, 0, len(src.Members))
	for _, m := range src.Members {
		if !moved[m.Name] {
			retained = append(retained, m)
			continue
		}
		target.Members = append(target.Members, m)
	}
	for _, f := range target.Fields() {
		result.MovedFields = append(result.MovedFields, f.Name)
	}
	for _, m := range target.Methods() {
		result.MovedMethods = append(result.MovedMethods, m.Name)
	}
	src.Members = insertDelegate(retained, &source.Member{
		Name:  delegate,
		Kind:  source.MemberField,
		Type:  targetName,
		Final: true,
	})

	retainedNames := make(map[string]bool, len(src.Members))
	for _, m := range src.Members {
		retainedNames[m.Name] = true
	}

	// retained -> moved goes through the delegate field
	for _, m := range src.Members {
		rewritten := false
		for i := range m.Accesses {
			acc := &m.Accesses[i]
			if acc.IsLocal(src.Name) && moved[acc.Target] {
				acc.Class = targetName
				acc.Via = delegate
				result.RewrittenAccesses++
				rewritten = true
			}
		}
		if rewritten {
			m.Accesses = append(m.Accesses, source.Access{Target: delegate, Kind: source.AccessRead})
		}
	}

	// moved -> retained goes through a parameter of the source type
	for _, m := range target.Members {
		needsSource := false
		for i := range m.Accesses {
			acc := &m.Accesses[i]
			if acc.Class == src.Name && acc.Via == "" && moved[acc.Target] {
				acc.Class = ""
				continue
			}
			if acc.IsLocal(src.Name) && retainedNames[acc.Target] {
				acc.Class = src.Name
				acc.Via = a.options.SourceParameter
				result.RewrittenAccesses++
				needsSource = true
			}
		}
		if needsSource && m.IsMethod() && !hasParameter(m, a.options.SourceParameter) {
			m.Parameters = append(m.Parameters, src.Name+" "+a.options.SourceParameter)
		}
	}

	// other classes reaching moved members of the source now go one hop further
	for _, other := range tx.Classes() {
		if other.Name == src.Name {
			continue
		}
		for _, m := range other.Members {
			for i := range m.Accesses {
				acc := &m.Accesses[i]
				if acc.Class == src.Name && moved[acc.Target] {
					acc.Class = targetName
					if acc.Via != "" {
						acc.Via = acc.Via + "." + delegate
					}
					result.RewrittenAccesses++
				}
			}
		}
	}

	if err := tx.PutClass(target); err != nil {
		return nil, err
	}
	if err := verifyNoNewCycles(cyclesBefore, tx.Classes(), targetName, src.Name); err != nil {
		return nil, err
	}
	return result, nil
}

// insertDelegate places the delegate field after the last leading field
func insertDelegate(members []*source.Member, delegate *source.Member) []*source.Member {
	pos := 0
	for pos < len(members) && members[pos].IsField() {
		pos++
	}
	out := make([]*source.Member, 0, len(members)+1)
	out = append(out, members[:pos]...)
	out = append(out, delegate)
	out = append(out, members[pos:]...)
	return out
}

func hasParameter(m *source.Member, name string) bool {
	for _, p := range m.Parameters {
		if p == name || strings.HasSuffix(p, " "+name) {
			return true
		}
	}
	return false
}
