package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(v Value) []string {
	var out []string
	for _, b := range v.Blocks() {
		out = append(out, b.ID)
	}
	return out
}

func block(id string, order int) *Block {
	return &Block{ID: id, Type: TypeParagraph, Meta: Meta{Order: order}}
}

func TestValue_InsertAt(t *testing.T) {
	tests := []struct {
		name   string
		blocks []*Block
		order  int
		want   []string
	}{
		{name: "front", blocks: []*Block{block("a", 0), block("b", 1)}, order: 0, want: []string{"x", "a", "b"}},
		{name: "middle", blocks: []*Block{block("a", 0), block("b", 1)}, order: 1, want: []string{"a", "x", "b"}},
		{name: "end", blocks: []*Block{block("a", 0), block("b", 1)}, order: 2, want: []string{"a", "b", "x"}},
		{name: "sparse orders", blocks: []*Block{block("a", 0), block("b", 10), block("c", 20)}, order: 10, want: []string{"a", "x", "b", "c"}},
		{name: "empty", order: 0, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Value)
			for _, b := range tt.blocks {
				v[b.ID] = b
			}

			v.InsertAt(tt.order, block("x", -1))
			assert.Equal(t, tt.want, ids(v))
			assert.Equal(t, tt.order, v["x"].Meta.Order)
		})
	}
}

func TestValue_InsertAfter(t *testing.T) {
	v := FromBlocks(block("a", 0), block("b", 0), block("c", 0))

	require.NoError(t, v.InsertAfter("a", block("x", 0)))
	require.NoError(t, v.InsertAfter("x", block("y", 0)))
	require.NoError(t, v.InsertAfter("", block("z", 0)))
	assert.Equal(t, []string{"z", "a", "x", "y", "b", "c"}, ids(v))

	assert.ErrorIs(t, v.InsertAfter("missing", block("w", 0)), ErrBlockNotFound)
}

func TestValue_MoveAndNormalize(t *testing.T) {
	v := FromBlocks(block("a", 0), block("b", 0), block("c", 0))

	require.NoError(t, v.Move("c", 0))
	assert.Equal(t, []string{"c", "a", "b"}, ids(v))

	v["a"].Meta.Order = 40
	v["b"].Meta.Order = 90
	v.Normalize()
	assert.Equal(t, 1, v["a"].Meta.Order)
	assert.Equal(t, 2, v["b"].Meta.Order)

	assert.ErrorIs(t, v.Move("nope", 0), ErrBlockNotFound)
}

func TestValue_JSONRoundTripKeepsIDs(t *testing.T) {
	v := FromBlocks(NewParagraph("hello"), NewImage("http://x/1.png", "a"))

	data, err := json.Marshal(v)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, ids(v), ids(got))
	assert.Equal(t, "http://x/1.png", got.Blocks()[1].Prop("src"))
}

func TestEditor_InsertBlock(t *testing.T) {
	e := NewEditor(FromBlocks(block("a", 0), block("b", 0)))

	img := NewImage("http://x/1.png", "a")
	require.NoError(t, e.InsertBlock("a", img))
	require.NoError(t, e.Reorder("b", 0))

	v := e.Value()
	assert.Equal(t, []string{"b", "a", img.ID}, ids(v))

	v["a"].Meta.Order = 99
	assert.NotEqual(t, 99, e.Value()["a"].Meta.Order, "Value returns a copy")

	require.NoError(t, e.RemoveBlock("a"))
	assert.ErrorIs(t, e.RemoveBlock("a"), ErrBlockNotFound)
}
