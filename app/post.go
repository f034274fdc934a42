package app

import (
	"context"
	"log"
	"time"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

// ImageDeleter removes a stored image by the URL kept on the post row
type ImageDeleter interface {
	DeleteImageByURL(ctx context.Context, rawUrl string) error
}

// CreatePost resolves mentions and topics, stores the post, and returns it
// hydrated for display. The resolve and insert steps are not one atomic
// transaction; a topic row created before a failed insert simply stays.
func CreatePost(ctx context.Context, database db.Database, creator *model.User,
	content string, imageUrls []string, scheduledAt *time.Time) (*model.Post, error) {
	resolved, err := ResolveContent(ctx, database, database, content)
	if err != nil {
		return nil, err
	}

	postId, err := database.CreatePost(ctx, &db.CreatePost{
		CreatorId:   creator.Id,
		Content:     resolved.Content,
		ImageUrls:   imageUrls,
		Mentions:    resolved.Mentions,
		TopicIds:    resolved.TopicIds,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return nil, err
	}

	post, err := database.GetPostById(ctx, postId, creator.Id)
	if err != nil {
		return nil, err
	}
	if err := HydratePosts(ctx, database, []*model.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post's image blobs and then its row. Blob deletion
// failures are logged and do not block removing the user-visible row.
func DeletePost(ctx context.Context, database db.PostDatabase, images ImageDeleter, post *model.Post) error {
	for _, imageUrl := range post.ImageUrls {
		if err := images.DeleteImageByURL(ctx, imageUrl); err != nil {
			log.Println("failed to delete post image", imageUrl, err)
		}
	}
	return database.DeletePost(ctx, post.Id)
}
