package markdown

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/emrgen/papernote/internal/document"
	"github.com/sirupsen/logrus"
)

// Inserter is the structured insert command of an editor engine.
type Inserter interface {
	InsertBlock(afterID string, b *document.Block) error
}

// HasImage reports whether the document holds an image block or an inline image.
func HasImage(v document.Value) bool {
	for _, b := range v {
		if b.Type == document.TypeImage {
			return true
		}
		for _, el := range b.Value {
			if el.Type == document.ElementImage {
				return true
			}
		}
	}
	return false
}

// LineMap estimates which block each source line ended up in. Blocks are
// walked in order and each is assumed to span one line more than the escaped
// newlines in its serialized form. The result maps line index to block order.
func LineMap(v document.Value) map[int]int {
	lines := make(map[int]int)
	line := 0
	for _, b := range v.Blocks() {
		span := 1
		if data, err := json.Marshal(b); err == nil {
			span += bytes.Count(data, []byte(`\n`))
		}
		for i := 0; i < span; i++ {
			lines[line+i] = b.Meta.Order
		}
		line += span
	}
	return lines
}

// Reconciler puts back images the deserializer dropped.
type Reconciler struct{}

type pending struct {
	target int
	seq    int
	ref    ImageRef
}

// Reconcile inserts one image block per ref right after the block its source
// line maps to, and returns how many were inserted. A document that already
// holds an image is left alone. ins is preferred when given; otherwise v is
// updated directly, and only when every insert succeeded. On error the count
// of blocks already handed to ins is returned with it.
func (r *Reconciler) Reconcile(v document.Value, refs []ImageRef, ins Inserter) (int, error) {
	if len(refs) == 0 || HasImage(v) {
		return 0, nil
	}

	lines := LineMap(v)
	byOrder := make(map[int]string, len(v))
	for _, b := range v.Blocks() {
		if _, seen := byOrder[b.Meta.Order]; !seen {
			byOrder[b.Meta.Order] = b.ID
		}
	}
	first := ""
	if blocks := v.Blocks(); len(blocks) > 0 {
		first = blocks[0].ID
	}

	queue := make([]pending, 0, len(refs))
	for i, ref := range refs {
		target, ok := lines[ref.Line]
		if !ok {
			target = 0
		}
		queue = append(queue, pending{target: target, seq: i, ref: ref})
	}
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].target != queue[j].target {
			return queue[i].target < queue[j].target
		}
		return queue[i].seq < queue[j].seq
	})

	work := v
	insert := ins
	if insert == nil {
		work = v.Clone()
		insert = valueInserter(work)
	}

	// each image goes after the previous image of the same target so that
	// images sharing a block keep their source order
	anchors := make(map[int]string)
	inserted := 0
	for _, p := range queue {
		anchor, ok := anchors[p.target]
		if !ok {
			anchor, ok = byOrder[p.target]
			if !ok {
				anchor = first
			}
		}

		img := document.NewImage(p.ref.URL, p.ref.Alt)
		if err := insert.InsertBlock(anchor, img); err != nil {
			logrus.Warnf("reconcile image %s: %v", p.ref.URL, err)
			return inserted, err
		}

		anchors[p.target] = img.ID
		inserted++
	}

	if ins == nil {
		for id, b := range work {
			v[id] = b
		}
	}

	if inserted > 0 {
		logrus.Infof("restored %d image(s) dropped by the markdown conversion", inserted)
	}
	return inserted, nil
}

type valueInserter document.Value

func (v valueInserter) InsertBlock(afterID string, b *document.Block) error {
	return document.Value(v).InsertAfter(afterID, b)
}
