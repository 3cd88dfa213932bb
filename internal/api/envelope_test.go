package api

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int64 `json:"id"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		body string
		keys []string
		want []item
	}{
		{name: "data wrapper", body: `{"data":{"comments":[{"id":1},{"id":2}]}}`, keys: []string{"comments"}, want: []item{{1}, {2}}},
		{name: "bare array", body: `[{"id":1},{"id":2}]`, keys: []string{"comments"}, want: []item{{1}, {2}}},
		{name: "data array", body: `{"data":[{"id":1}]}`, keys: []string{"comments"}, want: []item{}},
		{name: "second key", body: `{"data":{"content":[{"id":4}]}}`, keys: []string{"summaries", "content"}, want: []item{{4}}},
		{name: "unknown shape", body: `{"foo":1}`, keys: []string{"comments"}, want: []item{}},
		{name: "wrong key", body: `{"data":{"items":[{"id":1}]}}`, keys: []string{"comments"}, want: []item{}},
		{name: "null data", body: `{"data":null}`, keys: []string{"comments"}, want: []item{}},
		{name: "scalar", body: `42`, keys: []string{"comments"}, want: []item{}},
		{name: "empty", body: ``, keys: []string{"comments"}, want: []item{}},
		{name: "bad items", body: `[{"id":"x"}]`, keys: []string{"comments"}, want: []item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeList[item]([]byte(tt.body), tt.keys...)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeListLoose(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []item
	}{
		{name: "data array", body: `{"data":[{"id":1}]}`, want: []item{{1}}},
		{name: "data wrapper", body: `{"data":{"summaries":[{"id":2}]}}`, want: []item{{2}}},
		{name: "bare array", body: `[{"id":3}]`, want: []item{{3}}},
		{name: "unknown shape", body: `{"foo":1}`, want: []item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeListLoose[item]([]byte(tt.body), "summaries"))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))

	got := truncate("댓글 조회 실패", 2)
	assert.Equal(t, "댓글...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestDecodeList_WrapperAndBareArrayAgree(t *testing.T) {
	wrapped := DecodeList[item]([]byte(`{"data":{"comments":[{"id":7}]}}`), "comments")
	bare := DecodeList[item]([]byte(`[{"id":7}]`), "comments")
	assert.Equal(t, wrapped, bare)
}

func TestDecodeData(t *testing.T) {
	got, err := DecodeData[item]([]byte(`{"data":{"id":5}}`))
	require.NoError(t, err)
	assert.Equal(t, item{ID: 5}, got)

	got, err = DecodeData[item]([]byte(`{"id":6}`))
	require.NoError(t, err)
	assert.Equal(t, item{ID: 6}, got)

	_, err = DecodeData[item]([]byte(`[1]`))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = DecodeData[item](nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
