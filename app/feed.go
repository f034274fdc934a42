package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

type FeedType string

const (
	FeedTypeGlobal    FeedType = "GLOBAL"
	FeedTypeFollowing FeedType = "FOLLOWING"
	FeedTypeTopic     FeedType = "TOPIC"
	FeedTypeMentions  FeedType = "MENTIONS"
	FeedTypeUser      FeedType = "USER"
)

// ErrFeedRequiresAccount is returned for feed types that only make sense for
// a signed-in viewer
var ErrFeedRequiresAccount = errors.New("feed requires a signed-in user")

// ErrBadFeedRequest wraps request-shape problems so callers can map them to a
// client error instead of a server one
var ErrBadFeedRequest = errors.New("bad feed request")

type FeedRequest struct {
	Type FeedType `json:"type"`
	// Topic names the topic for FeedTypeTopic
	Topic string `json:"topic,omitempty"`
	// UserId names the author for FeedTypeUser
	UserId string `json:"userId,omitempty"`
	// LastDate/LastId continue a previous page; nil LastDate starts at the top
	LastDate *time.Time `json:"lastDate,omitempty"`
	LastId   int64      `json:"lastId,omitempty"`
}

type FeedCursor struct {
	LastDate time.Time `json:"lastDate"`
	LastId   int64     `json:"lastId"`
}

type FeedPage struct {
	Posts []*model.Post `json:"posts"`
	// Cursor is nil once the feed is exhausted
	Cursor *FeedCursor `json:"cursor"`
}

const DefaultFeedLimit = 20

// GetFeed assembles one page of the requested feed for viewer (nil when
// anonymous), newest first. Scheduled-post visibility is enforced inside the
// posts query itself, so unpublished content cannot leak through any feed
// type.
func GetFeed(ctx context.Context, database db.Database, viewer *model.User, req *FeedRequest, limit int16) (*FeedPage, error) {
	query := &db.PostsListQuery{
		From:   req.LastDate,
		LastId: req.LastId,
		Limit:  limit,
	}
	if viewer != nil {
		query.ViewerId = viewer.Id
	}

	switch req.Type {
	case FeedTypeGlobal:
		// no extra filters
	case FeedTypeFollowing:
		if viewer == nil {
			return nil, ErrFeedRequiresAccount
		}
		followingIds, err := database.GetFollowing(ctx, viewer.Id)
		if err != nil {
			return nil, err
		}
		// self is always included; dedupe guards against a self-follow edge
		query.AuthorIds = dedupeIds(append([]string{viewer.Id}, followingIds...))
	case FeedTypeMentions:
		if viewer == nil {
			return nil, ErrFeedRequiresAccount
		}
		query.MentionedId = viewer.Id
	case FeedTypeTopic:
		topic, err := database.GetTopicByName(ctx, req.Topic)
		if err != nil {
			return nil, err
		}
		if topic == nil {
			return &FeedPage{Posts: []*model.Post{}}, nil
		}
		query.TopicId = topic.Id
	case FeedTypeUser:
		if req.UserId == "" {
			return nil, fmt.Errorf("%w: user feed requires a user id", ErrBadFeedRequest)
		}
		query.AuthorIds = []string{req.UserId}
	default:
		return nil, fmt.Errorf("%w: unsupported feed type %v", ErrBadFeedRequest, req.Type)
	}

	posts, err := database.GetPosts(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := HydratePosts(ctx, database, posts); err != nil {
		return nil, err
	}
	if err := attachCommentCounts(ctx, database, posts); err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:  posts,
		Cursor: buildCursorForNextPage(posts, limit),
	}, nil
}

// buildCursorForNextPage returns nil once the feed is exhausted: a page
// shorter than the limit means there is nothing older to fetch
func buildCursorForNextPage(posts []*model.Post, limit int16) *FeedCursor {
	if len(posts) == 0 || (limit > 0 && len(posts) < int(limit)) {
		return nil
	}
	last := posts[len(posts)-1]
	return &FeedCursor{
		LastDate: last.CreatedAt,
		LastId:   last.Id,
	}
}

func attachCommentCounts(ctx context.Context, commentDB db.CommentDatabase, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	postIds := make([]int64, len(posts))
	for i, post := range posts {
		postIds[i] = post.Id
	}
	counts, err := commentDB.GetCommentCounts(ctx, postIds)
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.NumComments = counts[post.Id]
	}
	return nil
}

func dedupeIds(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped
}
