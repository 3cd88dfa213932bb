package model

// Summary is a card in a summary feed.
type Summary struct {
	SummaryID    int64    `json:"summaryId"`
	Title        string   `json:"title"`
	Brief        string   `json:"brief,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CommentCount int      `json:"commentCount"`
	Likes        int      `json:"likes"`
	Public       bool     `json:"public"`
	CreatedAt    Time     `json:"createdAt"`
}

// SummaryData is the detail of a summary, including the markdown it was written in.
type SummaryData struct {
	Title       string   `json:"title"`
	Brief       string   `json:"brief"`
	LikeCount   int      `json:"likeCount"`
	PublishedAt Time     `json:"publishedAt"`
	Tags        []string `json:"tags"`
	ViewCount   int      `json:"viewCount"`
	MarkdownURL string   `json:"markdownUrl"`
}

// Page is a page of a paginated feed.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}
