package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

var ErrBlockNotFound = errors.New("block not found")

// Value is a structured document: block id to block.
type Value map[string]*Block

// Blocks returns the blocks in render order.
func (v Value) Blocks() []*Block {
	blocks := make([]*Block, 0, len(v))
	for _, b := range v {
		blocks = append(blocks, b)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Meta.Order != blocks[j].Meta.Order {
			return blocks[i].Meta.Order < blocks[j].Meta.Order
		}
		return blocks[i].ID < blocks[j].ID
	})
	return blocks
}

// Append adds b after the last block.
func (v Value) Append(b *Block) {
	order := 0
	for _, existing := range v {
		if existing.Meta.Order >= order {
			order = existing.Meta.Order + 1
		}
	}
	v.put(b, order)
}

// InsertAt places b at order, first moving every block at or after order one
// slot down so the relative sequence is kept.
func (v Value) InsertAt(order int, b *Block) {
	for _, existing := range v {
		if existing.Meta.Order >= order {
			existing.Meta.Order++
		}
	}
	v.put(b, order)
}

// InsertAfter places b right after the block with id afterID. An empty afterID
// inserts at the front.
func (v Value) InsertAfter(afterID string, b *Block) error {
	if afterID == "" {
		v.InsertAt(v.minOrder(), b)
		return nil
	}

	target, ok := v[afterID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, afterID)
	}

	v.InsertAt(target.Meta.Order+1, b)
	return nil
}

// Move reorders a block to order, shifting the others.
func (v Value) Move(id string, order int) error {
	b, ok := v[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	delete(v, id)
	for _, existing := range v {
		if existing.Meta.Order > b.Meta.Order {
			existing.Meta.Order--
		}
	}
	v.InsertAt(order, b)
	return nil
}

func (v Value) Remove(id string) bool {
	if _, ok := v[id]; !ok {
		return false
	}
	delete(v, id)
	return true
}

// Normalize rewrites orders to 0..n-1 keeping the sequence.
func (v Value) Normalize() {
	for i, b := range v.Blocks() {
		b.Meta.Order = i
	}
}

func (v Value) Clone() Value {
	c := make(Value, len(v))
	for id, b := range v {
		c[id] = b.Clone()
	}
	return c
}

// FromBlocks builds a value from blocks in sequence.
func FromBlocks(blocks ...*Block) Value {
	v := make(Value, len(blocks))
	for i, b := range blocks {
		v.put(b, i)
	}
	return v
}

func Unmarshal(data []byte) (Value, error) {
	v := make(Value)
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	for id, b := range v {
		if b == nil {
			delete(v, id)
			continue
		}
		b.ID = id
	}
	return v, nil
}

func (v Value) put(b *Block, order int) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Meta.Order = order
	v[b.ID] = b
}

func (v Value) minOrder() int {
	first := true
	lowest := 0
	for _, b := range v {
		if first || b.Meta.Order < lowest {
			lowest = b.Meta.Order
			first = false
		}
	}
	return lowest
}
