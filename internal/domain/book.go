package domain

// Book is a catalog entry. Reviews maps the reviewing user's id to that
// user's review text; each user holds at most one entry per book. A nil map
// means the book has no reviews collection at all, which callers treat
// differently from an allocated empty map.
type Book struct {
	ISBN    string
	Title   string
	Author  string
	Reviews map[int64]string
}

// CloneReviews returns a copy of the book's reviews map, preserving the
// nil / empty distinction.
func (b Book) CloneReviews() map[int64]string {
	if b.Reviews == nil {
		return nil
	}
	out := make(map[int64]string, len(b.Reviews))
	for id, text := range b.Reviews {
		out[id] = text
	}
	return out
}
