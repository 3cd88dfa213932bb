package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 {
	return &v
}

func forest() []Comment {
	return []Comment{
		{
			ID: 1,
			Children: []Comment{
				{ID: 2, ParentID: ptr(1), Children: []Comment{
					{ID: 3, ParentID: ptr(2)},
				}},
				{ID: 4, ParentID: ptr(1)},
			},
		},
		{ID: 5},
	}
}

func TestTotalCount(t *testing.T) {
	assert.Equal(t, 0, TotalCount(nil))
	assert.Equal(t, 5, TotalCount(forest()))

	f := forest()
	assert.Equal(t, 3, f[0].ReplyCount())
	assert.Equal(t, 0, f[1].ReplyCount())
}

func TestTotalCount_ReplyAddsOne(t *testing.T) {
	f := forest()
	before := TotalCount(f)

	f[0].Children[0].Children[0].Children = append(f[0].Children[0].Children[0].Children, Comment{ID: 6, ParentID: ptr(3)})
	assert.Equal(t, before+1, TotalCount(f))
}

func TestTotalCount_MatchesWalk(t *testing.T) {
	visited := 0
	Walk(forest(), func(c Comment, depth int) bool {
		visited++
		return true
	})
	assert.Equal(t, TotalCount(forest()), visited)
}

func TestWalk_Order(t *testing.T) {
	var ids []int64
	var depths []int
	Walk(forest(), func(c Comment, depth int) bool {
		ids = append(ids, c.ID)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
}

func TestFind(t *testing.T) {
	c, ok := Find(forest(), 3)
	require.True(t, ok)
	assert.Equal(t, int64(2), *c.ParentID)

	_, ok = Find(forest(), 99)
	assert.False(t, ok)
}

func TestValidateForest(t *testing.T) {
	assert.NoError(t, ValidateForest(forest()))

	bad := forest()
	bad[0].Children[1].ParentID = ptr(5)
	assert.Error(t, ValidateForest(bad))

	dup := forest()
	dup[1].ID = 3
	assert.Error(t, ValidateForest(dup))
}

func TestComment_UnmarshalAPIShape(t *testing.T) {
	body := `{
		"id": 10,
		"content": "좋은 요약입니다",
		"createdAt": "2025-05-01T12:30:00",
		"updatedAt": null,
		"parentId": null,
		"likeCount": 2,
		"author": {"id": 3, "name": "Alice", "profileImage": "http://img/a.png"},
		"children": [
			{"id": 11, "content": "감사합니다", "createdAt": "2025-05-01T13:00:00Z", "updatedAt": "2025-05-02T09:00:00Z", "parentId": 10, "author": {"id": 4, "name": "Bob"}, "children": []}
		]
	}`

	var c Comment
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.True(t, c.IsRoot())
	assert.False(t, c.Edited())
	assert.Equal(t, 2025, c.CreatedAt.Year())
	assert.Equal(t, "Alice", c.Author.Name)
	require.Len(t, c.Children, 1)
	assert.True(t, c.Children[0].Edited())
	assert.Equal(t, int64(10), *c.Children[0].ParentID)
	assert.NoError(t, ValidateForest([]Comment{c}))
}

func TestTime_Unmarshal(t *testing.T) {
	var tm Time
	assert.NoError(t, json.Unmarshal([]byte(`"2025-01-02 03:04:05"`), &tm))
	assert.Equal(t, 3, tm.Hour())

	assert.NoError(t, json.Unmarshal([]byte(`null`), &tm))
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &tm))
}
