package model

import "fmt"

// Author is the public profile attached to a comment.
type Author struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

// Comment is a node of a summary's comment forest. Children only holds
// comments whose ParentID is this comment's ID.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt Time      `json:"createdAt"`
	UpdatedAt *Time     `json:"updatedAt"`
	ParentID  *int64    `json:"parentId"`
	LikeCount int       `json:"likeCount"`
	Author    Author    `json:"author"`
	Children  []Comment `json:"children"`
}

func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}

func (c Comment) Edited() bool {
	return c.UpdatedAt != nil && !c.UpdatedAt.IsZero()
}

// ReplyCount is the number of descendants of c.
func (c Comment) ReplyCount() int {
	return TotalCount(c.Children)
}

// TotalCount counts every comment of the forest, replies included.
func TotalCount(forest []Comment) int {
	total := 0
	for _, c := range forest {
		total += 1 + TotalCount(c.Children)
	}
	return total
}

// Walk visits the forest depth first, parents before children.
func Walk(forest []Comment, fn func(c Comment, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(forest []Comment, depth int, fn func(c Comment, depth int) bool) bool {
	for _, c := range forest {
		if !fn(c, depth) {
			return false
		}
		if !walk(c.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Find returns the comment with the given id anywhere in the forest.
func Find(forest []Comment, id int64) (Comment, bool) {
	var found Comment
	ok := false
	Walk(forest, func(c Comment, depth int) bool {
		if c.ID == id {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

// ValidateForest checks that every child points at its parent and that ids are unique.
func ValidateForest(forest []Comment) error {
	seen := make(map[int64]struct{})
	return validate(forest, nil, seen)
}

func validate(forest []Comment, parent *int64, seen map[int64]struct{}) error {
	for _, c := range forest {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("comment %d appears more than once", c.ID)
		}
		seen[c.ID] = struct{}{}

		if parent != nil && (c.ParentID == nil || *c.ParentID != *parent) {
			return fmt.Errorf("comment %d is nested under %d but has parent %s", c.ID, *parent, formatParent(c.ParentID))
		}

		id := c.ID
		if err := validate(c.Children, &id, seen); err != nil {
			return err
		}
	}
	return nil
}

func formatParent(p *int64) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprint(*p)
}
