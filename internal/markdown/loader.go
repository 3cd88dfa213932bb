package markdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const (
	MsgMissingURL   = "마크다운 URL을 찾을 수 없습니다."
	MsgEmptyContent = "마크다운 내용이 비어있습니다."
	MsgLoadFailed   = "마크다운을 불러오지 못했습니다."
)

// LoadError is returned when the markdown cannot be fetched or is empty.
type LoadError struct {
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s (%s: status %d)", e.Message, e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s (%s: %v)", e.Message, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s (%s)", e.Message, e.URL)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches raw markdown documents.
type Loader struct {
	http  *http.Client
	retry int
}

func NewLoader(client *http.Client, retry int) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{http: client, retry: retry}
}

// Load returns the markdown at url.
func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", &LoadError{URL: url, Message: MsgMissingURL}
	}

	var body string
	operation := func() error {
		var err error
		body, err = l.load(ctx, url)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Status >= 400 && loadErr.Status < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = 200 * time.Millisecond
	b := backoff.WithContext(backoff.WithMaxRetries(schedule, uint64(l.retry)), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return "", err
	}

	if strings.TrimSpace(body) == "" {
		return "", &LoadError{URL: url, Message: MsgEmptyContent}
	}

	return body, nil
}

func (l *Loader) load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(&LoadError{URL: url, Message: MsgLoadFailed, Err: err})
	}

	start := time.Now()
	res, err := l.http.Do(req)
	logrus.Debugf("request time: GET %s: %v", url, time.Since(start))
	if err != nil {
		return "", &LoadError{URL: url, Message: MsgLoadFailed, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &LoadError{URL: url, Status: res.StatusCode, Message: MsgLoadFailed}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &LoadError{URL: url, Message: MsgLoadFailed, Err: err}
	}

	return string(data), nil
}
