package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/emrgen/papernote/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_GithubCallback(t *testing.T) {
	tests := []struct {
		name     string
		callback http.HandlerFunc
	}{
		{
			name: "token from cookie",
			callback: func(w http.ResponseWriter, r *http.Request) {
				http.SetCookie(w, &http.Cookie{Name: AccessTokenCookie, Value: "tok", Path: "/"})
			},
		},
		{
			name: "token from body",
			callback: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"accessToken":"tok"}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPI()
			f.mux.HandleFunc("GET /api/auth/github/callback", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "abc", r.URL.Query().Get("code"))
				assert.Empty(t, r.Header.Get("Authorization"))
				tt.callback(w, r)
			})
			f.mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(`{"id":7,"username":"Alice","profileImageUrl":"http://img/a.png"}`))
			})
			f.handle("GET /api/users/me/interests", `{"data":{"interests":["nlp"]}}`)
			client, _ := startAPI(t, f)

			sess, err := NewAuthService(client).GithubCallback(context.Background(), "abc")
			require.NoError(t, err)
			assert.Equal(t, "tok", sess.AccessToken)
			assert.Equal(t, int64(7), sess.User.ID)
			assert.Equal(t, []string{"nlp"}, sess.User.Interests)
			assert.True(t, sess.User.Complete())
		})
	}
}

func TestAuthService_GithubCallbackErrors(t *testing.T) {
	f := newFakeAPI()
	f.mux.HandleFunc("GET /api/auth/github/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("code") == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	client, _ := startAPI(t, f)
	s := NewAuthService(client)
	ctx := context.Background()

	_, err := s.GithubCallback(ctx, " ")
	assert.ErrorIs(t, err, ErrMissingCode)
	assert.Empty(t, f.calls())

	_, err = s.GithubCallback(ctx, "bad")
	require.Error(t, err)
	assert.Equal(t, MsgAuthentication, api.MessageOf(err))

	_, err = s.GithubCallback(ctx, "good")
	assert.ErrorIs(t, err, ErrMissingToken)
}
