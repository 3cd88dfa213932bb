package thread

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrSubmitPending is returned when a submission is started while another one is in flight.
var ErrSubmitPending = errors.New("a comment is already being submitted")

const previewLimit = 100

// ReplyTarget is the comment a reply is being written to.
type ReplyTarget struct {
	CommentID  int64
	AuthorName string
	Content    string
}

// Preview is the banner text of the original comment, cut at 100 characters.
func (r ReplyTarget) Preview() string {
	if utf8.RuneCountInString(r.Content) <= previewLimit {
		return r.Content
	}
	return string([]rune(r.Content)[:previewLimit]) + "..."
}

// Banner is the notice shown above the input while replying.
func (r ReplyTarget) Banner() string {
	return r.AuthorName + "님의 댓글에 답글 작성 중"
}

// Composer holds the comment input and the reply state machine:
// Idle, or ReplyingTo a target comment.
type Composer struct {
	mu      sync.Mutex
	input   string
	target  *ReplyTarget
	pending bool
}

// Reply moves to ReplyingTo and pre-fills the input with a mention of the author.
func (c *Composer) Reply(target ReplyTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.target = &target
	c.input = "@" + target.AuthorName + " "
}

// Cancel returns to Idle and clears the input.
func (c *Composer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.target = nil
	c.input = ""
}

func (c *Composer) SetInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = s
}

func (c *Composer) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.input
}

// Target returns the comment being replied to, if any.
func (c *Composer) Target() (ReplyTarget, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target == nil {
		return ReplyTarget{}, false
	}
	return *c.target, true
}

// Pending reports whether a submission is in flight. The input is disabled meanwhile.
func (c *Composer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending
}

func (c *Composer) Placeholder() string {
	if target, ok := c.Target(); ok {
		return target.AuthorName + "님에게 답글..."
	}
	return "댓글을 입력하세요"
}

// begin marks a submission in flight and returns the trimmed input and target.
// ok is false when the input is blank.
func (c *Composer) begin() (content string, target *ReplyTarget, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending {
		return "", nil, false, ErrSubmitPending
	}

	content = strings.TrimSpace(c.input)
	if content == "" {
		return "", nil, false, nil
	}

	c.pending = true
	if c.target != nil {
		t := *c.target
		target = &t
	}
	return content, target, true, nil
}

// finish ends a submission. On success the composer returns to Idle with an
// empty input; on failure the input is kept.
func (c *Composer) finish(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = false
	if success {
		c.input = ""
		c.target = nil
	}
}
