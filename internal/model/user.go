package model

import (
	"bytes"
	"encoding/json"
)

type User struct {
	ID              int64    `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email,omitempty"`
	ProfileImageURL string   `json:"profileImageUrl"`
	Interests       []string `json:"interests,omitempty"`
}

// Tag is a topic label. The API sends either a bare name or {name, count}.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		t.Count = 0
		return json.Unmarshal(data, &t.Name)
	}

	type plain Tag
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Tag(p)
	return nil
}
