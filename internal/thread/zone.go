package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/session"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotAuthor       = errors.New("only the author can change this comment")
	ErrCommentNotFound = errors.New("comment not found")
)

// Notifications shown when a mutation fails.
const (
	ToastCreateFailed = "댓글 작성에 실패했습니다."
	ToastReplyFailed  = "대댓글 작성에 실패했습니다."
	ToastUpdateFailed = "댓글 수정에 실패했습니다."
	ToastDeleteFailed = "댓글 삭제에 실패했습니다."

	DeletePrompt = "댓글을 삭제하시겠습니까?"
)

// CommentAPI is the data layer of a zone.
type CommentAPI interface {
	List(ctx context.Context, summaryID int64) ([]model.Comment, error)
	Create(ctx context.Context, summaryID int64, content string) (model.Comment, error)
	Reply(ctx context.Context, summaryID, parentID int64, content string) (model.Comment, error)
	Update(ctx context.Context, commentID int64, content string) error
	Delete(ctx context.Context, summaryID, commentID int64) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier shows a transient, non-blocking message.
type Notifier interface {
	Notify(message string)
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type NotifyFunc func(message string)

func (f NotifyFunc) Notify(message string) { f(message) }

type Option func(*Zone)

func WithConfirmer(c Confirmer) Option {
	return func(z *Zone) {
		z.confirm = c
	}
}

func WithNotifier(n Notifier) Option {
	return func(z *Zone) {
		z.notify = n
	}
}

// Zone is the comment section of a summary: it loads the forest, routes the
// composer to create or reply, and gates edit and delete to the author.
type Zone struct {
	summaryID int64
	comments  CommentAPI
	sess      *session.Session
	confirm   Confirmer
	notify    Notifier

	Composer *Composer
	Expand   *ExpandState

	mu      sync.RWMutex
	forest  []model.Comment
	loaded  bool
	loadErr error
}

func NewZone(summaryID int64, comments CommentAPI, sess *session.Session, opts ...Option) *Zone {
	z := &Zone{
		summaryID: summaryID,
		comments:  comments,
		sess:      sess,
		confirm:   ConfirmFunc(func(string) bool { return false }),
		notify: NotifyFunc(func(message string) {
			logrus.Warn(message)
		}),
		Composer: &Composer{},
		Expand:   NewExpandState(),
	}
	for _, opt := range opts {
		opt(z)
	}

	return z
}

// Load fetches the forest. A failure is kept as the zone's error state.
func (z *Zone) Load(ctx context.Context) error {
	forest, err := z.comments.List(ctx, z.summaryID)

	z.mu.Lock()
	defer z.mu.Unlock()

	z.loaded = true
	z.loadErr = err
	if err != nil {
		return err
	}
	if forest == nil {
		forest = []model.Comment{}
	}
	z.forest = forest

	return nil
}

func (z *Zone) Forest() []model.Comment {
	z.mu.RLock()
	defer z.mu.RUnlock()

	return z.forest
}

// Count is the number of comments including every reply.
func (z *Zone) Count() int {
	return model.TotalCount(z.Forest())
}

// Reply starts a reply to the comment with the given id.
func (z *Zone) Reply(commentID int64) error {
	c, ok := model.Find(z.Forest(), commentID)
	if !ok {
		return ErrCommentNotFound
	}

	z.Composer.Reply(ReplyTarget{CommentID: c.ID, AuthorName: c.Author.Name, Content: c.Content})
	return nil
}

// Submit sends the composer input as a reply or a root comment. Blank input
// is a no-op. On failure the user is notified and the input is kept.
func (z *Zone) Submit(ctx context.Context) error {
	content, target, ok, err := z.Composer.begin()
	if err != nil || !ok {
		return err
	}

	toast := ToastCreateFailed
	if target != nil {
		toast = ToastReplyFailed
		_, err = z.comments.Reply(ctx, z.summaryID, target.CommentID, content)
	} else {
		_, err = z.comments.Create(ctx, z.summaryID, content)
	}

	z.Composer.finish(err == nil)
	if err != nil {
		logrus.Errorf("submit comment: %v", err)
		z.notify.Notify(toast)
		return err
	}

	z.refresh(ctx)
	return nil
}

// CanModify reports whether the session user may edit or delete the comment.
func (z *Zone) CanModify(c model.Comment) bool {
	return z.sess.IsAuthor(c.Author.ID)
}

// Edit replaces the content of one of the user's comments. Blank content is
// a no-op.
func (z *Zone) Edit(ctx context.Context, commentID int64, content string) error {
	c, err := z.own(commentID)
	if err != nil {
		return err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	if err := z.comments.Update(ctx, c.ID, content); err != nil {
		logrus.Errorf("update comment %d: %v", c.ID, err)
		z.notify.Notify(ToastUpdateFailed)
		return err
	}

	z.refresh(ctx)
	return nil
}

// Delete removes one of the user's comments after confirmation. It returns
// false without issuing a request when the user declines.
func (z *Zone) Delete(ctx context.Context, commentID int64) (bool, error) {
	c, err := z.own(commentID)
	if err != nil {
		return false, err
	}

	if !z.confirm.Confirm(DeletePrompt) {
		return false, nil
	}

	if err := z.comments.Delete(ctx, z.summaryID, c.ID); err != nil {
		logrus.Errorf("delete comment %d: %v", c.ID, err)
		z.notify.Notify(ToastDeleteFailed)
		return false, err
	}

	z.refresh(ctx)
	return true, nil
}

func (z *Zone) own(commentID int64) (model.Comment, error) {
	c, ok := model.Find(z.Forest(), commentID)
	if !ok {
		return model.Comment{}, ErrCommentNotFound
	}
	if !z.CanModify(c) {
		return model.Comment{}, ErrNotAuthor
	}
	return c, nil
}

func (z *Zone) refresh(ctx context.Context) {
	if err := z.Load(ctx); err != nil {
		logrus.Warnf("refetch comments of summary %d: %v", z.summaryID, err)
	}
}

// errorText is the error state shown instead of the forest.
func errorText(err error) string {
	return fmt.Sprintf("댓글을 불러오는데 실패했습니다: %s", api.MessageOf(err))
}
