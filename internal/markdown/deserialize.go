package markdown

import (
	"strings"

	"github.com/emrgen/papernote/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Deserializer converts markdown into a structured document.
type Deserializer interface {
	Deserialize(md string) (document.Value, error)
}

// GoldmarkDeserializer parses GitHub flavoured markdown with goldmark.
// Inline images are dropped unless KeepImages is set.
type GoldmarkDeserializer struct {
	KeepImages bool
	md         goldmark.Markdown
}

func NewGoldmarkDeserializer(keepImages bool) *GoldmarkDeserializer {
	return &GoldmarkDeserializer{
		KeepImages: keepImages,
		md:         goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (d *GoldmarkDeserializer) Deserialize(md string) (document.Value, error) {
	if d.md == nil {
		d.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}

	src := []byte(md)
	root := d.md.Parser().Parse(text.NewReader(src))

	c := &converter{src: src, keepImages: d.KeepImages, value: make(document.Value)}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		c.block(n, 0)
	}

	return c.value, nil
}

type converter struct {
	src        []byte
	keepImages bool
	value      document.Value
	order      int
	images     []*document.Block
}

func (c *converter) add(b *document.Block, depth int) {
	b.Meta.Depth = depth
	b.Meta.Order = c.order
	c.order++
	c.value[b.ID] = b

	// images lifted out of the inline content follow their block
	images := c.images
	c.images = nil
	for _, img := range images {
		img.Meta.Depth = depth
		img.Meta.Order = c.order
		c.order++
		c.value[img.ID] = img
	}
}

func (c *converter) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		typ := document.TypeHeadingThree
		switch node.Level {
		case 1:
			typ = document.TypeHeadingOne
		case 2:
			typ = document.TypeHeadingTwo
		}
		c.textBlock(typ, node, depth)

	case *ast.Paragraph, *ast.TextBlock:
		c.textBlock(document.TypeParagraph, node, depth)

	case *ast.FencedCodeBlock:
		b := document.NewBlock(document.TypeCode, document.Text(c.lines(node)))
		if lang := string(node.Language(c.src)); lang != "" {
			b.SetProp("language", lang)
		}
		c.add(b, depth)

	case *ast.CodeBlock:
		c.add(document.NewBlock(document.TypeCode, document.Text(c.lines(node))), depth)

	case *ast.Blockquote:
		var elements []document.Element
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if len(elements) > 0 {
				elements = append(elements, document.Text("\n"))
			}
			elements = append(elements, c.inline(child)...)
		}
		c.add(document.NewBlock(document.TypeBlockquote, elements...), depth)

	case *ast.List:
		c.list(node, depth)

	case *ast.ThematicBreak:
		c.add(document.NewBlock(document.TypeDivider), depth)

	case *ast.HTMLBlock:
		if s := strings.TrimSpace(c.lines(node)); s != "" {
			c.add(document.NewParagraph(s), depth)
		}

	case *east.Table:
		c.add(document.NewBlock(document.TypeParagraph, document.Text(c.table(node))), depth)

	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			c.block(child, depth)
		}
	}
}

func (c *converter) textBlock(typ string, n ast.Node, depth int) {
	elements := c.inline(n)
	if len(elements) == 0 && len(c.images) > 0 {
		// a paragraph made of images only
		images := c.images
		c.images = nil
		for _, img := range images {
			c.add(img, depth)
		}
		return
	}
	if len(elements) == 0 && typ == document.TypeParagraph {
		return
	}
	c.add(document.NewBlock(typ, elements...), depth)
}

func (c *converter) list(list *ast.List, depth int) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		typ := document.TypeBulletedList
		if list.IsOrdered() {
			typ = document.TypeNumberedList
		}

		var b *document.Block
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				if b == nil {
					b = document.NewBlock(typ)
					c.add(b, depth)
				}
				c.list(nested, depth+1)
				continue
			}

			if b != nil {
				c.block(child, depth+1)
				continue
			}

			checkbox, checked := taskCheckBox(child)
			elements := c.inline(child)
			b = document.NewBlock(typ, elements...)
			if checkbox {
				b.Type = document.TypeTodoList
				if checked {
					b.SetProp("checked", "true")
				}
			}
			c.add(b, depth)
		}

		if b == nil {
			c.add(document.NewBlock(typ), depth)
		}
	}
}

func taskCheckBox(n ast.Node) (bool, bool) {
	first := n.FirstChild()
	if box, ok := first.(*east.TaskCheckBox); ok {
		return true, box.IsChecked
	}
	return false, false
}

func (c *converter) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.src))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (c *converter) table(t *east.Table) string {
	var rows []string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, plain(c.inline(cell)))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

// inline flattens the inline children of n into text runs. Images are lifted
// out into c.images, or dropped.
func (c *converter) inline(n ast.Node) []document.Element {
	var out []document.Element
	c.walkInline(n, nil, &out)
	return merge(out)
}

func (c *converter) walkInline(n ast.Node, marks []string, out *[]document.Element) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			s := string(node.Segment.Value(c.src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				s += "\n"
			}
			*out = append(*out, document.Text(s, marks...))

		case *ast.String:
			*out = append(*out, document.Text(string(node.Value), marks...))

		case *ast.CodeSpan:
			var sb strings.Builder
			for t := node.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					sb.Write(seg.Segment.Value(c.src))
				}
			}
			*out = append(*out, document.Text(sb.String(), withMark(marks, document.MarkCode)...))

		case *ast.Emphasis:
			mark := document.MarkItalic
			if node.Level >= 2 {
				mark = document.MarkBold
			}
			c.walkInline(node, withMark(marks, mark), out)

		case *east.Strikethrough:
			c.walkInline(node, withMark(marks, document.MarkStrike), out)

		case *ast.Link:
			var label []document.Element
			c.walkInline(node, marks, &label)
			*out = append(*out, document.Link(plain(label), string(node.Destination)))

		case *ast.AutoLink:
			url := string(node.URL(c.src))
			*out = append(*out, document.Link(string(node.Label(c.src)), url))

		case *ast.Image:
			if c.keepImages {
				var alt []document.Element
				c.walkInline(node, nil, &alt)
				c.images = append(c.images, document.NewImage(string(node.Destination), plain(alt)))
			}

		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				*out = append(*out, document.Text(string(seg.Value(c.src)), marks...))
			}

		case *east.TaskCheckBox:

		default:
			c.walkInline(child, marks, out)
		}
	}
}

func withMark(marks []string, mark string) []string {
	out := make([]string, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, mark)
}

// merge joins neighbouring text runs with the same marks and trims the edges.
func merge(elements []document.Element) []document.Element {
	var out []document.Element
	for _, el := range elements {
		if el.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Type == document.ElementText && el.Type == document.ElementText && sameMarks(out[n-1].Marks, el.Marks) {
			out[n-1].Text += el.Text
			continue
		}
		out = append(out, el)
	}

	if len(out) > 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " ")
		last := len(out) - 1
		out[last].Text = strings.TrimRight(out[last].Text, " \n")
		if out[last].Text == "" {
			out = out[:last]
		}
		if len(out) > 0 && out[0].Text == "" {
			out = out[1:]
		}
	}
	return out
}

func sameMarks(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func plain(elements []document.Element) string {
	var sb strings.Builder
	for _, el := range elements {
		sb.WriteString(el.Text)
	}
	return sb.String()
}
