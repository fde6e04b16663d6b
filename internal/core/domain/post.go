package domain

import "time"

const summaryLimit = 100

// Post is a content item owned by exactly one User.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) Persisted() bool {
	return p.ID != 0
}

// Summary returns the content truncated to 100 characters, with a "..."
// marker appended when truncation happened. Empty content yields "".
func (p *Post) Summary() string {
	runes := []rune(p.Content)
	if len(runes) <= summaryLimit {
		return p.Content
	}
	return string(runes[:summaryLimit]) + "..."
}
