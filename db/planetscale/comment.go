package planetscale

import (
	"context"
	"database/sql"
	"time"

	"github.com/upper/db/v4"
	db2 "github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

type CommentDB struct {
	sess db.Session
}

func getCommentDB(sess db.Session) *CommentDB {
	return &CommentDB{sess}
}

func (cdb *CommentDB) CreateComment(ctx context.Context, req *db2.CreateComment) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("comments").
		Columns("post_id", "user_id", "content").
		Values(req.PostId, req.CreatorId, req.Content).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (cdb *CommentDB) DeleteComment(ctx context.Context, id int64) error {
	_, err := cdb.sess.SQL().
		DeleteFrom("comments").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

type flattenedComment struct {
	Id              int64          `db:"id"`
	PostId          int64          `db:"post_id"`
	CreatorId       string         `db:"user_id"`
	Content         string         `db:"content"`
	CreatedAt       time.Time      `db:"created_at"`
	CreatorUsername sql.NullString `db:"username"`
	CreatorEmail    sql.NullString `db:"email"`
	CreatorAvatar   sql.NullString `db:"avatar_url"`
}

var commentColumns = []interface{}{
	"c.id",
	"c.post_id",
	"c.user_id",
	"c.content",
	"c.created_at",
	"pr.username",
	"pr.email",
	"pr.avatar_url",
}

func (cdb *CommentDB) commentSelector() db.Selector {
	return cdb.sess.SQL().
		Select(commentColumns...).
		From("comments AS c").
		LeftJoin("profiles AS pr").On("c.user_id = pr.id")
}

func (cdb *CommentDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	var comment flattenedComment
	if err := cdb.commentSelector().
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildCommentFromFlattened(&comment), nil
}

func (cdb *CommentDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	return cdb.getComments(ctx, "c.post_id = ?", postId)
}

func (cdb *CommentDB) GetCommentsByUser(ctx context.Context, userId string) ([]*model.Comment, error) {
	return cdb.getComments(ctx, "c.user_id = ?", userId)
}

func (cdb *CommentDB) getComments(ctx context.Context, cond string, arg interface{}) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := cdb.commentSelector().
		Where(cond, arg).
		OrderBy("c.created_at DESC", "c.id DESC").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		comments[i] = buildCommentFromFlattened(&flattened)
	}
	return comments, nil
}

func buildCommentFromFlattened(comment *flattenedComment) *model.Comment {
	return &model.Comment{
		Id:        comment.Id,
		PostId:    comment.PostId,
		Creator:   buildCreator(comment.CreatorId, comment.CreatorUsername, comment.CreatorEmail, comment.CreatorAvatar),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func (cdb *CommentDB) GetCommentCount(ctx context.Context, postId int64) (int64, error) {
	counts, err := cdb.GetCommentCounts(ctx, []int64{postId})
	if err != nil {
		return 0, err
	}
	return counts[postId], nil
}

type commentCountRow struct {
	PostId int64 `db:"post_id"`
	Count  int64 `db:"num_comments"`
}

func (cdb *CommentDB) GetCommentCounts(ctx context.Context, postIds []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(postIds))
	if len(postIds) == 0 {
		return counts, nil
	}
	var rows []commentCountRow
	if err := cdb.sess.SQL().
		Select("post_id", db.Raw("COUNT(*) AS num_comments")).
		From("comments").
		Where("post_id IN ?", postIds).
		GroupBy("post_id").
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostId] = row.Count
	}
	return counts, nil
}
