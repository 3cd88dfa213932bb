package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/session"
	"github.com/sirupsen/logrus"
)

// AccessTokenCookie is the cookie the API sets on a successful login.
const AccessTokenCookie = "accessToken"

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// AuthService exchanges a github oauth code for a session.
type AuthService struct {
	client *api.Client
}

type tokenBody struct {
	AccessToken string `json:"accessToken"`
}

// GithubCallback completes the oauth flow and returns a session holding the
// access token and the profile of the signed in user.
func (s *AuthService) GithubCallback(ctx context.Context, code string) (*session.Session, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingCode
	}

	res, err := s.client.Send(ctx, nil, api.Request{
		Op:      "github callback",
		Message: MsgAuthentication,
		Path:    "/api/auth/github/callback",
		Query:   url.Values{"code": {code}},
		Public:  true,
	})
	if err != nil {
		return nil, err
	}

	token := s.client.Cookie(AccessTokenCookie)
	if token == "" {
		if body, err := api.DecodeData[tokenBody](res.Body); err == nil {
			token = body.AccessToken
		}
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	sess := &session.Session{AccessToken: token}
	b := base{client: s.client, sess: sess}

	user, err := me(ctx, b)
	if err != nil {
		return nil, err
	}
	sess.User = session.UserInfo{
		ID:              user.ID,
		Username:        user.Username,
		ProfileImageURL: user.ProfileImageURL,
		Interests:       user.Interests,
	}

	if len(sess.User.Interests) == 0 {
		interests, err := list[string](ctx, b, api.Request{
			Op:      "user interests",
			Message: MsgLoadInterests,
			Path:    "/api/users/me/interests",
		}, "interests")
		if err != nil {
			logrus.Warnf("load interests after login: %v", err)
		} else {
			sess.User.Interests = interests
		}
	}

	logrus.Infof("signed in as %s", sess.User.Username)
	return sess, nil
}
