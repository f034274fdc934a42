package app

import (
	"context"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

// GetUsersWithFollowStatus lists every profile ordered by username, flagging
// the ones the viewer already follows. Anonymous viewers get all-false flags.
func GetUsersWithFollowStatus(ctx context.Context, database db.Database, viewer *model.User) ([]*model.UserWithFollowStatus, error) {
	users, err := database.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	followingSet := make(map[string]bool)
	if viewer != nil {
		followingIds, err := database.GetFollowing(ctx, viewer.Id)
		if err != nil {
			return nil, err
		}
		for _, id := range followingIds {
			followingSet[id] = true
		}
	}

	withStatus := make([]*model.UserWithFollowStatus, len(users))
	for i, user := range users {
		withStatus[i] = &model.UserWithFollowStatus{
			User:        user,
			IsFollowing: followingSet[user.Id],
		}
	}
	return withStatus, nil
}
