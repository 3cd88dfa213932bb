package session

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const sessionFileName = "session"

// Store persists the session between CLI invocations, the same way the browser
// keeps the accessToken and userInfo-storage cookies.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFileName+".yml")
}

func (s *Store) viper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(sessionFileName)
	v.SetConfigType("yml")
	v.AddConfigPath(s.dir)
	return v
}

// Load returns the stored session, or an anonymous one if nothing is stored.
func (s *Store) Load() (*Session, error) {
	if _, err := os.Stat(s.path()); errors.Is(err, os.ErrNotExist) {
		return Anonymous(), nil
	}

	v := s.viper()
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	sess := &Session{}
	if err := v.UnmarshalKey("session", sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Save writes the session, creating the directory when needed.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	v := s.viper()
	v.Set("session", map[string]any{
		"accessToken": sess.AccessToken,
		"user": map[string]any{
			"id":              sess.User.ID,
			"username":        sess.User.Username,
			"profileImageUrl": sess.User.ProfileImageURL,
			"interests":       sess.User.Interests,
		},
	})

	if err := v.WriteConfigAs(s.path()); err != nil {
		return err
	}

	logrus.Debugf("session saved to %s", s.path())
	return nil
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
