package app

import (
	"context"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

// GetCommentsWithPosts lists a user's comments newest first, each paired
// with the post it was left on. Posts the viewer may not see (scheduled,
// deleted) come back with a nil Post.
func GetCommentsWithPosts(ctx context.Context, database db.Database, userId, viewerId string) ([]*model.CommentWithPost, error) {
	comments, err := database.GetCommentsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	postIdSet := make(map[int64]bool)
	var postIds []int64
	for _, comment := range comments {
		if !postIdSet[comment.PostId] {
			postIdSet[comment.PostId] = true
			postIds = append(postIds, comment.PostId)
		}
	}

	posts, err := database.GetPostsByIds(ctx, postIds, viewerId)
	if err != nil {
		return nil, err
	}
	if err := HydratePosts(ctx, database, posts); err != nil {
		return nil, err
	}
	if err := attachCommentCounts(ctx, database, posts); err != nil {
		return nil, err
	}
	postById := make(map[int64]*model.Post, len(posts))
	for _, post := range posts {
		postById[post.Id] = post
	}

	withPosts := make([]*model.CommentWithPost, len(comments))
	for i, comment := range comments {
		withPosts[i] = &model.CommentWithPost{
			Comment: comment,
			Post:    postById[comment.PostId],
		}
	}
	return withPosts, nil
}
