package papernote

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/compress"
	"github.com/emrgen/papernote/internal/config"
	"github.com/emrgen/papernote/internal/markdown"
	"github.com/emrgen/papernote/internal/service"
	"github.com/emrgen/papernote/internal/session"
	"github.com/emrgen/papernote/internal/store"
	"gorm.io/gorm"
)

// Client bundles every service of the remote API for one session.
type Client struct {
	Comments  *service.CommentService
	Summaries *service.SummaryService
	Users     *service.UserService
	Tags      *service.TagService
	Auth      *service.AuthService

	API   *api.Client
	Cache cache.QueryCache

	cfg    *config.Config
	once   sync.Once
	db     *gorm.DB
	drafts *service.DraftService
	err    error
}

// NewClient wires the services for sess from cfg.
func NewClient(cfg *config.Config, sess *session.Session) (*Client, error) {
	transport, err := api.NewClient(cfg.APIURL, api.WithRetry(cfg.Retry), api.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, err
	}

	qc, err := cache.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		Comments:  service.NewCommentService(transport, qc, sess),
		Summaries: service.NewSummaryService(transport, qc, sess),
		Users:     service.NewUserService(transport, qc, sess),
		Tags:      service.NewTagService(transport, qc, sess),
		Auth:      service.NewAuthService(transport),
		API:       transport,
		Cache:     qc,
		cfg:       cfg,
	}, nil
}

// Drafts opens the draft database on first use.
func (c *Client) Drafts() (*service.DraftService, error) {
	c.once.Do(func() {
		c.db = config.GetDb(c.cfg)

		s := store.NewGormStore(c.db)
		if c.err = s.Migrate(); c.err != nil {
			return
		}

		codec, err := compress.New(c.cfg.Cache.Compression)
		if err != nil {
			c.err = err
			return
		}

		loader := markdown.NewLoader(&http.Client{Timeout: c.cfg.HTTPTimeout}, c.cfg.Retry)
		importer := markdown.NewImporter(loader, markdown.NewGoldmarkDeserializer(false))
		c.drafts = service.NewDraftService(c.Summaries, importer, s, codec)
	})

	return c.drafts, c.err
}

func (c *Client) Close() error {
	var errs []error
	if closer, ok := c.Cache.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
