package session

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoAccessToken is returned when an authenticated call is made without a token.
	ErrNoAccessToken = errors.New("no access token")
	// ErrSignUpRequired is returned when the stored user info is missing or incomplete.
	ErrSignUpRequired = errors.New("sign-up required: user info is incomplete")
)

// UserInfo mirrors the userInfo-storage record kept next to the access token.
type UserInfo struct {
	ID              int64    `json:"id" mapstructure:"id"`
	Username        string   `json:"username" mapstructure:"username"`
	ProfileImageURL string   `json:"profileImageUrl" mapstructure:"profileImageUrl"`
	Interests       []string `json:"interests" mapstructure:"interests"`
}

// Complete reports whether the user finished sign-up.
func (u UserInfo) Complete() bool {
	return u.Username != "" && u.ProfileImageURL != "" && len(u.Interests) > 0
}

// Session is the explicit auth context handed to every data-access call.
type Session struct {
	AccessToken string   `json:"accessToken" mapstructure:"accessToken"`
	User        UserInfo `json:"user" mapstructure:"user"`
}

// Anonymous returns an empty session, used for unauthenticated calls.
func Anonymous() *Session {
	return &Session{}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Authorize attaches the bearer token to the request.
func (s *Session) Authorize(req *http.Request) error {
	if !s.Authenticated() {
		return ErrNoAccessToken
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.AccessToken))
	return nil
}

// RequireProfile gates the home feed the same way the root path redirects to sign-up.
func (s *Session) RequireProfile() error {
	if s == nil || !s.User.Complete() {
		return ErrSignUpRequired
	}

	return nil
}

// IsAuthor reports whether the session user wrote the comment with the given author id.
func (s *Session) IsAuthor(authorID int64) bool {
	return s != nil && s.User.ID != 0 && s.User.ID == authorID
}
