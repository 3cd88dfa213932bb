package markdown

import (
	"context"
	"fmt"

	"github.com/emrgen/papernote/internal/document"
	"github.com/sirupsen/logrus"
)

// Result is an imported document.
type Result struct {
	Value    document.Value
	Images   []ImageRef
	Restored int
}

// Importer loads markdown, converts it and repairs missing images.
type Importer struct {
	loader       *Loader
	deserializer Deserializer
	reconciler   *Reconciler
}

func NewImporter(loader *Loader, deserializer Deserializer) *Importer {
	return &Importer{loader: loader, deserializer: deserializer, reconciler: &Reconciler{}}
}

// Import fetches the markdown at url and returns it as a document.
func (i *Importer) Import(ctx context.Context, url string) (*Result, error) {
	md, err := i.loader.Load(ctx, url)
	if err != nil {
		logrus.Errorf("load markdown: %v", err)
		return nil, err
	}

	return i.Convert(md)
}

// Convert turns raw markdown into a document, restoring images through an
// editor so the structured insert command is used.
func (i *Importer) Convert(md string) (*Result, error) {
	value, err := i.deserializer.Deserialize(md)
	if err != nil {
		logrus.Errorf("deserialize markdown: %v", err)
		return nil, fmt.Errorf("deserialize markdown: %w", err)
	}

	refs := ExtractImages(md)
	editor := document.NewEditor(value.Clone())
	restored, err := i.reconciler.Reconcile(editor.Value(), refs, editor)
	if err != nil {
		// the converted document is still usable without the extra images
		logrus.Warnf("image reconciliation dropped after %d insert(s): %v", restored, err)
		return &Result{Value: value, Images: refs}, nil
	}

	return &Result{Value: editor.Value(), Images: refs, Restored: restored}, nil
}
