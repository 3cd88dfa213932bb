package thread

import (
	"fmt"
	"io"
	"strings"

	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/session"
)

const (
	EmptyText   = "아직 댓글이 없습니다. 첫 번째 댓글을 작성해보세요!"
	LoadingText = "로딩 중..."

	timeLayout = "2006-01-02 15:04"
	rule       = "  │ "
)

// Header is the title of the comment section.
func Header(forest []model.Comment) string {
	return fmt.Sprintf("%d개의 댓글", model.TotalCount(forest))
}

// ToggleText is the label of the reply toggle of a comment with n direct replies.
func ToggleText(n int, expanded bool) string {
	if expanded {
		return fmt.Sprintf("▼ 답글 %d개 숨기기", n)
	}
	return fmt.Sprintf("▶ 답글 %d개 보기", n)
}

// Render writes the forest as text. Replies are indented under a rule and
// hidden when their parent is collapsed in expand. Comments written by viewer
// are marked as editable.
func Render(w io.Writer, forest []model.Comment, expand *ExpandState, viewer *session.Session) error {
	if expand == nil {
		expand = NewExpandState()
	}

	r := &renderer{w: w, expand: expand, viewer: viewer}
	r.line("", Header(forest))
	r.line("", "")

	if len(forest) == 0 {
		r.line("", EmptyText)
		return r.err
	}

	r.forest(forest, "")
	return r.err
}

// Render writes the zone in its current state.
func (z *Zone) Render(w io.Writer) error {
	z.mu.RLock()
	loaded, loadErr, forest := z.loaded, z.loadErr, z.forest
	z.mu.RUnlock()

	switch {
	case !loaded:
		_, err := fmt.Fprintln(w, LoadingText)
		return err
	case loadErr != nil:
		_, err := fmt.Fprintln(w, errorText(loadErr))
		return err
	}

	if err := Render(w, forest, z.Expand, z.sess); err != nil {
		return err
	}

	if target, ok := z.Composer.Target(); ok {
		_, err := fmt.Fprintf(w, "\n%s\n> %s\n", target.Banner(), target.Preview())
		return err
	}
	return nil
}

type renderer struct {
	w      io.Writer
	expand *ExpandState
	viewer *session.Session
	err    error
}

func (r *renderer) line(indent, s string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.w, strings.TrimRight(indent+s, " "))
}

func (r *renderer) forest(forest []model.Comment, indent string) {
	for _, c := range forest {
		r.comment(c, indent)
	}
}

func (r *renderer) comment(c model.Comment, indent string) {
	head := fmt.Sprintf("#%d %s · %s", c.ID, c.Author.Name, c.CreatedAt.Format(timeLayout))
	if c.Edited() {
		head += " (수정됨)"
	}
	if r.viewer.IsAuthor(c.Author.ID) {
		head += " [수정] [삭제]"
	}
	r.line(indent, head)

	for _, l := range strings.Split(c.Content, "\n") {
		r.line(indent, l)
	}

	if len(c.Children) == 0 {
		return
	}

	expanded := r.expand.Expanded(c.ID)
	r.line(indent, ToggleText(len(c.Children), expanded))
	if expanded {
		r.forest(c.Children, indent+rule)
	}
}
