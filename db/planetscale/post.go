package planetscale

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/upper/db/v4"
	db2 "github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
	"github.com/weixing2014/twitter-clone/util"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	imageUrls := req.ImageUrls
	if imageUrls == nil {
		imageUrls = []string{}
	}
	imageUrlsJSON, err := json.Marshal(imageUrls)
	if err != nil {
		return 0, err
	}

	res, err := pdb.sess.SQL().
		InsertInto("posts").
		Columns("user_id", "content", "image_urls", "mentions", "topics", "scheduled_at").
		Values(req.CreatorId, req.Content, string(imageUrlsJSON),
			jsonArrayOrNull(req.Mentions), jsonArrayOrNull(req.TopicIds), req.ScheduledAt).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	_, err := pdb.sess.SQL().
		DeleteFrom("posts").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

type flattenedPost struct {
	Id              int64          `db:"id"`
	Content         string         `db:"content"`
	CreatorId       string         `db:"user_id"`
	ImageUrlsJSON   sql.NullString `db:"image_urls"`
	MentionsJSON    sql.NullString `db:"mentions"`
	TopicsJSON      sql.NullString `db:"topics"`
	CreatedAt       time.Time      `db:"created_at"`
	ScheduledAt     *time.Time     `db:"scheduled_at"`
	CreatorUsername sql.NullString `db:"username"`
	CreatorEmail    sql.NullString `db:"email"`
	CreatorAvatar   sql.NullString `db:"avatar_url"`
}

var postColumns = []interface{}{
	"p.id",
	"p.content",
	"p.user_id",
	"p.image_urls",
	"p.mentions",
	"p.topics",
	"p.created_at",
	"p.scheduled_at",
	"pr.username",
	"pr.email",
	"pr.avatar_url",
}

func (pdb *PostDB) postSelector(viewerId string) db.Selector {
	return pdb.sess.SQL().
		Select(postColumns...).
		From("posts AS p").
		LeftJoin("profiles AS pr").On("p.user_id = pr.id").
		// a future-scheduled post is visible to its author only
		Where("(p.scheduled_at IS NULL OR p.scheduled_at <= NOW() OR p.user_id = ?)", viewerId)
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64, viewerId string) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.postSelector(viewerId).
		And("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post)
}

func (pdb *PostDB) GetPostsByIds(ctx context.Context, ids []int64, viewerId string) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var flattenedPosts []flattenedPost
	if err := pdb.postSelector(viewerId).
		And("p.id IN ?", ids).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	return buildPostsFromFlattened(flattenedPosts)
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *db2.PostsListQuery) ([]*model.Post, error) {
	sel := pdb.postSelector(query.ViewerId)
	if query.AuthorIds != nil {
		sel = sel.And("p.user_id IN ?", query.AuthorIds)
	}
	if query.MentionedId != "" {
		sel = sel.And("JSON_CONTAINS(p.mentions, JSON_QUOTE(?))", query.MentionedId)
	}
	if query.TopicId != 0 {
		sel = sel.And("JSON_CONTAINS(p.topics, CAST(? AS JSON))", query.TopicId)
	}
	if query.From != nil {
		sel = sel.And("(p.created_at < ? OR (p.created_at = ? AND p.id < ?))",
			query.From, query.From, query.LastId)
	}
	sel = sel.OrderBy("p.created_at DESC", "p.id DESC")
	if query.Limit > 0 {
		sel = sel.Limit(int(query.Limit))
	}

	var flattenedPosts []flattenedPost
	if err := sel.IteratorContext(ctx).All(&flattenedPosts); err != nil {
		return nil, err
	}
	return buildPostsFromFlattened(flattenedPosts)
}

func buildPostsFromFlattened(flattenedPosts []flattenedPost) ([]*model.Post, error) {
	posts := make([]*model.Post, len(flattenedPosts))
	for i, flattened := range flattenedPosts {
		post, err := buildPostFromFlattened(&flattened)
		if err != nil {
			return nil, err
		}
		posts[i] = post
	}
	return posts, nil
}

func buildPostFromFlattened(post *flattenedPost) (*model.Post, error) {
	imageUrls, err := unmarshalStringArray(post.ImageUrlsJSON)
	if err != nil {
		return nil, err
	}
	mentions, err := unmarshalStringArray(post.MentionsJSON)
	if err != nil {
		return nil, err
	}
	topics, err := unmarshalInt64Array(post.TopicsJSON)
	if err != nil {
		return nil, err
	}

	return &model.Post{
		Id:          post.Id,
		Creator:     buildCreator(post.CreatorId, post.CreatorUsername, post.CreatorEmail, post.CreatorAvatar),
		Content:     post.Content,
		ImageUrls:   imageUrls,
		Mentions:    mentions,
		Topics:      topics,
		CreatedAt:   post.CreatedAt,
		ScheduledAt: post.ScheduledAt,
	}, nil
}

func buildCreator(id string, username, email, avatar sql.NullString) *model.User {
	creator := &model.User{
		Id:        id,
		Username:  username.String,
		Email:     email.String,
		AvatarUrl: avatar.String,
	}
	if !username.Valid || creator.Username == "" {
		creator.Username = model.DeletedUsername
	}
	if creator.AvatarUrl == "" {
		creator.AvatarUrl = util.Avatar(id)
	}
	return creator
}
