package markdown

import (
	"fmt"
	"strings"

	"github.com/emrgen/papernote/internal/document"
)

// Serialize writes a document back to markdown.
func Serialize(v document.Value) string {
	var sb strings.Builder
	numbers := make(map[int]int)

	for i, b := range v.Blocks() {
		if i > 0 {
			sb.WriteString("\n")
		}

		indent := strings.Repeat("  ", b.Meta.Depth)
		if b.Type != document.TypeNumberedList {
			delete(numbers, b.Meta.Depth)
		}

		switch b.Type {
		case document.TypeHeadingOne:
			fmt.Fprintf(&sb, "# %s\n", inline(b.Value))
		case document.TypeHeadingTwo:
			fmt.Fprintf(&sb, "## %s\n", inline(b.Value))
		case document.TypeHeadingThree:
			fmt.Fprintf(&sb, "### %s\n", inline(b.Value))
		case document.TypeBulletedList:
			fmt.Fprintf(&sb, "%s- %s\n", indent, inline(b.Value))
		case document.TypeNumberedList:
			numbers[b.Meta.Depth]++
			fmt.Fprintf(&sb, "%s%d. %s\n", indent, numbers[b.Meta.Depth], inline(b.Value))
		case document.TypeTodoList:
			box := " "
			if b.Prop("checked") == "true" {
				box = "x"
			}
			fmt.Fprintf(&sb, "%s- [%s] %s\n", indent, box, inline(b.Value))
		case document.TypeBlockquote:
			for _, line := range strings.Split(inline(b.Value), "\n") {
				fmt.Fprintf(&sb, "> %s\n", line)
			}
		case document.TypeCode:
			fmt.Fprintf(&sb, "```%s\n%s\n```\n", b.Prop("language"), b.Text())
		case document.TypeDivider:
			sb.WriteString("---\n")
		case document.TypeImage:
			fmt.Fprintf(&sb, "![%s](%s)\n", b.Prop("alt"), b.Prop("src"))
		case document.TypeFile:
			fmt.Fprintf(&sb, "[%s](%s)\n", b.Prop("name"), b.Prop("src"))
		default:
			fmt.Fprintf(&sb, "%s%s\n", indent, inline(b.Value))
		}
	}

	return sb.String()
}

func inline(elements []document.Element) string {
	var sb strings.Builder
	for _, el := range elements {
		switch el.Type {
		case document.ElementLink:
			fmt.Fprintf(&sb, "[%s](%s)", el.Text, el.URL)
			continue
		case document.ElementImage:
			fmt.Fprintf(&sb, "![%s](%s)", el.Text, el.URL)
			continue
		}

		s := el.Text
		for _, mark := range el.Marks {
			switch mark {
			case document.MarkBold:
				s = "**" + s + "**"
			case document.MarkItalic:
				s = "*" + s + "*"
			case document.MarkCode:
				s = "`" + s + "`"
			case document.MarkStrike:
				s = "~~" + s + "~~"
			}
		}
		sb.WriteString(s)
	}
	return sb.String()
}
