package models

// Post is a blog post. AuthorID and Date are fixed at creation.
type Post struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
}

// PostUpdate lists the editable fields of a post. Nil means "leave as is".
type PostUpdate struct {
	Title    *string
	Subtitle *string
	Body     *string
	ImgURL   *string
}
