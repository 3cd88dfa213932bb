package document

import (
	"strings"

	"github.com/google/uuid"
)

// Block types produced by the markdown importer.
const (
	TypeParagraph    = "paragraph"
	TypeHeadingOne   = "heading-one"
	TypeHeadingTwo   = "heading-two"
	TypeHeadingThree = "heading-three"
	TypeBulletedList = "bulleted-list"
	TypeNumberedList = "numbered-list"
	TypeTodoList     = "todo-list"
	TypeBlockquote   = "blockquote"
	TypeCode         = "code"
	TypeFile         = "file"
	TypeImage        = "image"
	TypeDivider      = "divider"
)

// Inline element types.
const (
	ElementText  = "text"
	ElementLink  = "link"
	ElementImage = "image"
)

// Text marks.
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
	MarkCode   = "code"
	MarkStrike = "strike"
)

// Meta positions a block in the document. Order defines the render sequence;
// values are dense but not necessarily contiguous.
type Meta struct {
	Order int    `json:"order"`
	Depth int    `json:"depth"`
	Align string `json:"align,omitempty"`
}

// Element is an inline run of a block.
type Element struct {
	Type  string   `json:"type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// Block is a node of the document.
type Block struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	Value []Element         `json:"value"`
	Props map[string]string `json:"props,omitempty"`
	Meta  Meta              `json:"meta"`
}

// NewBlock creates a block with a fresh id.
func NewBlock(typ string, elements ...Element) *Block {
	if elements == nil {
		elements = []Element{}
	}
	return &Block{ID: uuid.NewString(), Type: typ, Value: elements}
}

// Text is a plain text run.
func Text(s string, marks ...string) Element {
	return Element{Type: ElementText, Text: s, Marks: marks}
}

func Link(s, url string) Element {
	return Element{Type: ElementLink, Text: s, URL: url}
}

// NewParagraph creates a paragraph holding a single text run.
func NewParagraph(s string) *Block {
	return NewBlock(TypeParagraph, Text(s))
}

// NewImage creates an image block pointing at url.
func NewImage(url, alt string) *Block {
	b := NewBlock(TypeImage)
	b.Props = map[string]string{"src": url, "alt": alt}
	return b
}

// Text concatenates the text of every inline element.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, el := range b.Value {
		sb.WriteString(el.Text)
	}
	return sb.String()
}

// Prop returns a property, or "".
func (b *Block) Prop(key string) string {
	if b.Props == nil {
		return ""
	}
	return b.Props[key]
}

func (b *Block) SetProp(key, value string) {
	if b.Props == nil {
		b.Props = make(map[string]string)
	}
	b.Props[key] = value
}

func (b *Block) Clone() *Block {
	c := *b
	c.Value = make([]Element, len(b.Value))
	for i, el := range b.Value {
		el.Marks = append([]string(nil), el.Marks...)
		c.Value[i] = el
	}
	if b.Props != nil {
		c.Props = make(map[string]string, len(b.Props))
		for k, v := range b.Props {
			c.Props[k] = v
		}
	}
	return &c
}
