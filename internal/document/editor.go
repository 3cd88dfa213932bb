package document

import (
	"sync"

	"github.com/google/uuid"
)

// Editor owns a document and applies structured commands to it.
type Editor struct {
	mu    sync.RWMutex
	value Value
}

func NewEditor(v Value) *Editor {
	if v == nil {
		v = make(Value)
	}
	return &Editor{value: v}
}

// Value returns a copy of the current document.
func (e *Editor) Value() Value {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.value.Clone()
}

// InsertBlock inserts b right after the block afterID, or at the front when afterID is empty.
func (e *Editor) InsertBlock(afterID string, b *Block) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return e.value.InsertAfter(afterID, b.Clone())
}

// Reorder moves a block to order.
func (e *Editor) Reorder(id string, order int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.value.Move(id, order)
}

func (e *Editor) RemoveBlock(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.value.Remove(id) {
		return ErrBlockNotFound
	}
	return nil
}
