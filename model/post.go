package model

import (
	"time"
)

const (
	// MaxPostLength caps the raw content of posts and comments
	MaxPostLength = 280
	// MaxPostImages caps the number of images attached to a single post
	MaxPostImages = 4
)

type Post struct {
	Id      int64  `json:"id"`
	Creator *User  `json:"creator"`
	Content string `json:"content"`
	// ImageUrls is never nil once loaded; empty means no images
	ImageUrls []string `json:"imageUrls"`
	// Mentions holds the ids of users referenced by @ tokens in Content
	Mentions []string `json:"mentions"`
	// Topics holds the ids of topics referenced by # tokens in Content
	Topics []int64 `json:"topics"`
	// MentionedUsers is filled during hydration for mention ids that still resolve
	MentionedUsers []*User    `json:"mentionedUsers,omitempty"`
	NumComments    int64      `json:"numComments"`
	CreatedAt      time.Time  `json:"createdAt"`
	ScheduledAt    *time.Time `json:"scheduledAt,omitempty"`
}

// IsScheduled reports whether the post's publish time is still in the future
func (p *Post) IsScheduled(now time.Time) bool {
	return p.ScheduledAt != nil && p.ScheduledAt.After(now)
}

// VisibleTo reports whether viewerId may see the post at now: a post whose
// publish time has not passed is visible to its author only. The SQL read
// paths enforce the same rule in their WHERE clause; this predicate is the
// reference form of it.
func (p *Post) VisibleTo(viewerId string, now time.Time) bool {
	if !p.IsScheduled(now) {
		return true
	}
	return p.Creator != nil && p.Creator.Id == viewerId
}

// CanDelete reports whether user may delete the post
func (p *Post) CanDelete(user *User) bool {
	return user != nil && p.Creator != nil && user.Id == p.Creator.Id
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Creator   *User     `json:"creator"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanDelete reports whether user may delete the comment
func (c *Comment) CanDelete(user *User) bool {
	return user != nil && c.Creator != nil && user.Id == c.Creator.Id
}

// CommentWithPost pairs a comment with the post it was left on, for
// profile comment listings
type CommentWithPost struct {
	*Comment
	Post *Post `json:"post,omitempty"`
}
