package blog

import "time"

// Post content is paragraph-delimited: paragraphs are separated by a
// blank line, the way the site renders them.
type Post struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	Excerpt     string    `bson:"excerpt" json:"excerpt"`
	Content     string    `bson:"content" json:"content"`
	ReadTime    int       `bson:"read_time" json:"readTime"`
	PublishedAt time.Time `bson:"published_at" json:"publishedAt"`
}

type ListFilter struct {
	Category string
}
