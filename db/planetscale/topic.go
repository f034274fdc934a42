package planetscale

import (
	"context"
	"database/sql"
	"time"

	"github.com/upper/db/v4"
	"github.com/weixing2014/twitter-clone/model"
)

type TopicDB struct {
	sess db.Session
}

func getTopicDB(sess db.Session) *TopicDB {
	return &TopicDB{sess}
}

// UpsertTopic relies on LAST_INSERT_ID(id) so the returned id is the
// existing row's on a name collision, making repeated submissions of the
// same topic name idempotent
func (tdb *TopicDB) UpsertTopic(ctx context.Context, name string) (int64, error) {
	res, err := tdb.sess.SQL().
		ExecContext(ctx, db.Raw(
			"INSERT INTO topics (name) VALUES (?) ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)",
			name))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (tdb *TopicDB) GetTopicByName(ctx context.Context, name string) (*model.Topic, error) {
	var topic model.Topic
	if err := tdb.sess.SQL().
		Select("*").
		From("topics").
		Where("name = ?", name).
		IteratorContext(ctx).
		One(&topic); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

func (tdb *TopicDB) GetTopicsByIds(ctx context.Context, ids []int64) ([]*model.Topic, error) {
	if len(ids) == 0 {
		return []*model.Topic{}, nil
	}
	var topics []*model.Topic
	return topics, tdb.sess.SQL().
		Select("*").
		From("topics").
		Where("id IN ?", ids).
		IteratorContext(ctx).
		All(&topics)
}

func (tdb *TopicDB) SearchTopics(ctx context.Context, prefix string, limit int) ([]*model.Topic, error) {
	var topics []*model.Topic
	return topics, tdb.sess.SQL().
		Select("*").
		From("topics").
		Where("name LIKE ?", prefix+"%").
		OrderBy("name").
		Limit(limit).
		IteratorContext(ctx).
		All(&topics)
}

type postTopicsRow struct {
	TopicsJSON sql.NullString `db:"topics"`
}

func (tdb *TopicDB) GetRecentPostTopics(ctx context.Context, since *time.Time, limit int) ([][]int64, error) {
	sel := tdb.sess.SQL().
		Select("topics").
		From("posts").
		Where("topics IS NOT NULL")
	if since != nil {
		sel = sel.And("created_at >= ?", since)
	}
	sel = sel.OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	var rows []postTopicsRow
	if err := sel.IteratorContext(ctx).All(&rows); err != nil {
		return nil, err
	}
	topicIdLists := make([][]int64, len(rows))
	for i, row := range rows {
		topicIds, err := unmarshalInt64Array(row.TopicsJSON)
		if err != nil {
			return nil, err
		}
		topicIdLists[i] = topicIds
	}
	return topicIdLists, nil
}
