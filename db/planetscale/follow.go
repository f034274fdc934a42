package planetscale

import (
	"context"

	"github.com/upper/db/v4"
	"github.com/weixing2014/twitter-clone/model"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	_, err := fdb.sess.WithContext(ctx).
		Collection("follows").
		Insert(follow)
	return err
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	return fdb.sess.WithContext(ctx).
		Collection("follows").
		Find("follower_id = ? AND following_id = ?", follow.FollowerId, follow.FollowingId).
		Delete()
}

func (fdb *FollowDB) IsFollowing(ctx context.Context, followerId, followingId string) (bool, error) {
	return fdb.sess.WithContext(ctx).
		Collection("follows").
		Find("follower_id = ? AND following_id = ?", followerId, followingId).
		Exists()
}

func (fdb *FollowDB) GetFollowing(ctx context.Context, followerId string) ([]string, error) {
	var follows []*model.Follow
	if err := fdb.sess.WithContext(ctx).
		Collection("follows").
		Find("follower_id = ?", followerId).
		All(&follows); err != nil {
		return nil, err
	}
	followingIds := make([]string, len(follows))
	for i, follow := range follows {
		followingIds[i] = follow.FollowingId
	}
	return followingIds, nil
}
