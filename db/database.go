package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/weixing2014/twitter-clone/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	PostDatabase
	CommentDatabase
	FollowDatabase
	TopicDatabase
	UserDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreatePost struct {
	CreatorId string
	Content   string
	ImageUrls []string
	// Mentions holds resolved mentioned-user ids, in order of appearance
	Mentions []string
	// TopicIds holds resolved topic ids, in order of appearance
	TopicIds    []int64
	ScheduledAt *time.Time
}

type CreateComment struct {
	PostId    int64
	CreatorId string
	Content   string
}

// PostsListQuery describes one feed query as a set of optional filters.
// Zero values leave a filter off; ViewerId is always consulted for the
// scheduled-post visibility rule (future posts are only returned to their
// author), so it must be set even when no other filter is.
type PostsListQuery struct {
	// AuthorIds restricts to posts authored by any of these users (nil = all)
	AuthorIds []string
	// MentionedId restricts to posts whose mentions contain this user id
	MentionedId string
	// TopicId restricts to posts tagged with this topic (0 = any)
	TopicId int64
	// ViewerId is the requesting user's id, "" when anonymous
	ViewerId string
	// From and LastId page backwards from a previous result's newest-first
	// tail; From nil starts at the top
	From   *time.Time
	LastId int64
	Limit  int16
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	GetPostById(ctx context.Context, id int64, viewerId string) (*model.Post, error)
	GetPostsByIds(ctx context.Context, ids []int64, viewerId string) ([]*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type CommentDatabase interface {
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentById(ctx context.Context, id int64) (*model.Comment, error)
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
	GetCommentsByUser(ctx context.Context, userId string) ([]*model.Comment, error)
	GetCommentCount(ctx context.Context, postId int64) (int64, error)
	GetCommentCounts(ctx context.Context, postIds []int64) (map[int64]int64, error)
	DeleteComment(ctx context.Context, id int64) error
}

type FollowDatabase interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, follow *model.Follow) error
	IsFollowing(ctx context.Context, followerId, followingId string) (bool, error)
	GetFollowing(ctx context.Context, followerId string) (followingIds []string, err error)
}

type TopicDatabase interface {
	// UpsertTopic creates the topic if absent and returns its id either way
	UpsertTopic(ctx context.Context, name string) (topicId int64, err error)
	GetTopicByName(ctx context.Context, name string) (*model.Topic, error)
	GetTopicsByIds(ctx context.Context, ids []int64) ([]*model.Topic, error)
	SearchTopics(ctx context.Context, prefix string, limit int) ([]*model.Topic, error)
	// GetRecentPostTopics returns the topic-id lists of recent posts, newest
	// first, for frequency counting. since nil means no time bound; limit 0
	// means no count bound.
	GetRecentPostTopics(ctx context.Context, since *time.Time, limit int) ([][]int64, error)
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUsers(ctx context.Context) ([]*model.User, error)
	GetUsersByIds(ctx context.Context, ids []string) ([]*model.User, error)
	GetUsersByUsernames(ctx context.Context, usernames []string) ([]*model.User, error)
}
