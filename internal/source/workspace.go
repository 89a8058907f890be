package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Tx is a mutation transaction over a working copy of the workspace.
// Changes become visible to readers only on Commit.
type Tx interface {
	ID() string

	// Class returns the mutable working copy of the named class
	Class(name string) (*Class, bool)

	// HasClass reports whether a class name is taken in the working copy
	HasClass(name string) bool

	// PutClass adds a new class to the working copy
	PutClass(c *Class) error

	// Classes returns the working copies in declaration order
	Classes() []*Class

	Commit() error
	Rollback() error
}

// Transactor begins mutation transactions
type Transactor interface {
	Begin(ctx context.Context) (Tx, error)
}

// Workspace holds the classes of an analysis scope. Readers get deep copies;
// writers go through a single-writer transaction.
type Workspace struct {
	mu      sync.RWMutex
	classes []*Class
	index   map[string]int

	writer chan struct{}
}

// NewWorkspace creates a workspace from classes in declaration order
func NewWorkspace(classes ...*Class) (*Workspace, error) {
	w := &Workspace{
		index:  make(map[string]int, len(classes)),
		writer: make(chan struct{}, 1),
	}
	for _, c := range classes {
		if err := w.add(c.Clone()); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Workspace) add(c *Class) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, exists := w.index[c.Name]; exists {
		return fmt.Errorf("duplicate class %s", c.Name)
	}
	w.index[c.Name] = len(w.classes)
	w.classes = append(w.classes, c)
	return nil
}

// Classes returns deep copies of all classes in declaration order
func (w *Workspace) Classes() []*Class {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Class, len(w.classes))
	for i, c := range w.classes {
		out[i] = c.Clone()
	}
	return out
}

// Class returns a deep copy of the named class
func (w *Workspace) Class(name string) (*Class, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	idx, ok := w.index[name]
	if !ok {
		return nil, false
	}
	return w.classes[idx].Clone(), true
}

// Len returns the number of classes
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.classes)
}

// Snapshot returns the canonical encoding of the whole workspace
func (w *Workspace) Snapshot() ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return yaml.Marshal(w.classes)
}

// Begin acquires the writer lock and returns a transaction over a deep copy.
// It blocks until the lock is free or ctx is done.
func (w *Workspace) Begin(ctx context.Context) (Tx, error) {
	select {
	case w.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	w.mu.RLock()
	tx := &workspaceTx{
		id:      uuid.NewString(),
		ws:      w,
		classes: make([]*Class, len(w.classes)),
		index:   make(map[string]int, len(w.classes)),
	}
	for i, c := range w.classes {
		tx.classes[i] = c.Clone()
		tx.index[c.Name] = i
	}
	w.mu.RUnlock()
	return tx, nil
}

type workspaceTx struct {
	id      string
	ws      *Workspace
	classes []*Class
	index   map[string]int
	done    bool
}

func (tx *workspaceTx) ID() string { return tx.id }

func (tx *workspaceTx) Class(name string) (*Class, bool) {
	idx, ok := tx.index[name]
	if !ok {
		return nil, false
	}
	return tx.classes[idx], true
}

func (tx *workspaceTx) HasClass(name string) bool {
	_, ok := tx.index[name]
	return ok
}

func (tx *workspaceTx) PutClass(c *Class) error {
	if tx.done {
		return fmt.Errorf("transaction %s already finished", tx.id)
	}
	if c == nil {
		return fmt.Errorf("nil class")
	}
	if tx.HasClass(c.Name) {
		return fmt.Errorf("duplicate class %s", c.Name)
	}
	tx.index[c.Name] = len(tx.classes)
	tx.classes = append(tx.classes, c)
	return nil
}

func (tx *workspaceTx) Classes() []*Class {
	return tx.classes
}

// Commit validates the working copy and publishes it
func (tx *workspaceTx) Commit() error {
	if tx.done {
		return fmt.Errorf("transaction %s already finished", tx.id)
	}
	for _, c := range tx.classes {
		if err := c.Validate(); err != nil {
			tx.release()
			return fmt.Errorf("commit %s: %w", tx.id, err)
		}
	}

	tx.ws.mu.Lock()
	tx.ws.classes = tx.classes
	tx.ws.index = tx.index
	tx.ws.mu.Unlock()

	tx.release()
	return nil
}

// Rollback discards the working copy. Rolling back a finished transaction is a no-op.
func (tx *workspaceTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.release()
	return nil
}

func (tx *workspaceTx) release() {
	tx.done = true
	tx.classes = nil
	tx.index = nil
	<-tx.ws.writer
}
