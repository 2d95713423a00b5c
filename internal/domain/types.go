package domain

import "time"

// Post is a forum topic record from the posts corpus file.
// Fields the corpus file omits stay as zero values; scoring treats
// empty text as low similarity rather than an error.
type Post struct {
	ID        int      `json:"id,omitempty"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	URL       string   `json:"url"`
	CreatedAt string   `json:"created_at,omitempty"`
	Username  string   `json:"username,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Replies   []string `json:"replies,omitempty"`
}

// ContentItem is a course-content record from the content corpus file.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Corpus is an immutable snapshot of both corpora. Published once at
// startup (or on reload) and shared read-only across requests.
type Corpus struct {
	Posts    []Post
	Content  []ContentItem
	LoadedAt time.Time
}

// Link points a student at a supporting resource.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Answer is the payload returned for a question.
type Answer struct {
	Answer string `json:"answer"`
	Links  []Link `json:"links"`
}

// Stats describes the loaded knowledge base.
type Stats struct {
	PostCount    int       `json:"discourse_posts"`
	ContentCount int       `json:"course_content_items"`
	TotalCount   int       `json:"total_items"`
	LastUpdated  time.Time `json:"last_updated"`
}
