package markdown

import (
	"errors"
	"testing"

	"github.com/emrgen/papernote/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convert(t *testing.T, md string) document.Value {
	t.Helper()
	v, err := NewGoldmarkDeserializer(false).Deserialize(md)
	require.NoError(t, err)
	return v
}

func imageURLs(v document.Value) []string {
	var out []string
	for _, b := range v.Blocks() {
		if b.Type == document.TypeImage {
			out = append(out, b.Prop("src"))
		}
	}
	return out
}

func TestReconcile_RestoresImagesInOrder(t *testing.T) {
	md := "text ![a](http://x/1.png) more ![b](http://x/2.png)"
	v := convert(t, md)
	require.False(t, HasImage(v))

	n := reconcile(t, v, ExtractImages(md), nil)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{document.TypeParagraph, document.TypeImage, document.TypeImage}, types(v))
	assert.Equal(t, []string{"http://x/1.png", "http://x/2.png"}, imageURLs(v))
	assert.Equal(t, "a", v.Blocks()[1].Prop("alt"))
}

func TestReconcile_PlacesImageAfterMappedBlock(t *testing.T) {
	md := "first\nsecond ![a](http://x/1.png)\n# Heading\nlast"
	v := convert(t, md)
	require.Equal(t, []string{document.TypeParagraph, document.TypeHeadingOne, document.TypeParagraph}, types(v))

	n := reconcile(t, v, ExtractImages(md), nil)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{
		document.TypeParagraph,
		document.TypeImage,
		document.TypeHeadingOne,
		document.TypeParagraph,
	}, types(v))
}

func TestReconcile_IsIdempotent(t *testing.T) {
	md := "intro\n\n![a](http://x/1.png)\n\noutro"
	refs := ExtractImages(md)

	v := convert(t, md)
	assert.Equal(t, 1, reconcile(t, v, refs, nil))
	before := types(v)

	assert.Equal(t, 0, reconcile(t, v, refs, nil))
	assert.Equal(t, before, types(v))

	kept, err := NewGoldmarkDeserializer(true).Deserialize(md)
	require.NoError(t, err)
	assert.Equal(t, 0, reconcile(t, kept, refs, nil))
	assert.Len(t, imageURLs(kept), 1)
}

func TestReconcile_UnmappedLineGoesAfterFirstBlock(t *testing.T) {
	v := document.FromBlocks(document.NewParagraph("only"))
	refs := []ImageRef{{Alt: "a", URL: "http://x/1.png", Line: 40}}

	assert.Equal(t, 1, reconcile(t, v, refs, nil))
	assert.Equal(t, []string{document.TypeParagraph, document.TypeImage}, types(v))
}

func TestReconcile_EmptyDocument(t *testing.T) {
	v := make(document.Value)
	refs := ExtractImages("![a](1.png)\n![b](2.png)")

	assert.Equal(t, 2, reconcile(t, v, refs, nil))
	assert.Equal(t, []string{"1.png", "2.png"}, imageURLs(v))
}

func TestReconcile_PrefersInserter(t *testing.T) {
	md := "text ![a](http://x/1.png) more ![b](http://x/2.png)"
	v := convert(t, md)
	editor := document.NewEditor(v.Clone())

	n := reconcile(t, editor.Value(), ExtractImages(md), editor)
	assert.Equal(t, 2, n)
	assert.False(t, HasImage(v), "the snapshot is not mutated when an inserter is given")
	assert.Equal(t, []string{"http://x/1.png", "http://x/2.png"}, imageURLs(editor.Value()))
}

func reconcile(t *testing.T, v document.Value, refs []ImageRef, ins Inserter) int {
	t.Helper()

	n, err := (&Reconciler{}).Reconcile(v, refs, ins)
	require.NoError(t, err)
	return n
}

type failingInserter struct{}

func (failingInserter) InsertBlock(string, *document.Block) error {
	return errors.New("engine unavailable")
}

func TestReconcile_InserterError(t *testing.T) {
	md := "text ![a](http://x/1.png)"
	v := convert(t, md)

	n, err := (&Reconciler{}).Reconcile(v, ExtractImages(md), failingInserter{})
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, HasImage(v))
}

type flakyInserter struct {
	*document.Editor
	calls int
}

func (f *flakyInserter) InsertBlock(afterID string, b *document.Block) error {
	f.calls++
	if f.calls > 1 {
		return errors.New("engine unavailable")
	}
	return f.Editor.InsertBlock(afterID, b)
}

func TestReconcile_StopsAtFirstError(t *testing.T) {
	md := "![a](1.png)\n![b](2.png)\n![c](3.png)"
	ins := &flakyInserter{Editor: document.NewEditor(document.FromBlocks(document.NewParagraph("body")))}

	n, err := (&Reconciler{}).Reconcile(ins.Value(), ExtractImages(md), ins)
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, ins.calls)
}

func TestImporter_ReconcileKeepsConvertedDocument(t *testing.T) {
	imp := NewImporter(nil, NewGoldmarkDeserializer(false))

	res, err := imp.Convert("intro\n\n![a](http://x/1.png)\n\noutro")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
	assert.Equal(t, []string{"http://x/1.png"}, imageURLs(res.Value))
	assert.Len(t, res.Images, 1)
}

func TestLineMap(t *testing.T) {
	v := document.FromBlocks(
		document.NewParagraph("one\ntwo"),
		document.NewParagraph("three"),
	)
	first, second := v.Blocks()[0].Meta.Order, v.Blocks()[1].Meta.Order

	lines := LineMap(v)
	assert.Equal(t, map[int]int{0: first, 1: first, 2: second}, lines)
}
