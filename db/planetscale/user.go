package planetscale

import (
	"context"

	"github.com/upper/db/v4"
	"github.com/weixing2014/twitter-clone/model"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.SQL().
		InsertInto("profiles").
		Columns("id", "username", "email", "avatar_url").
		Values(user.Id, user.Username, user.Email, user.AvatarUrl).
		ExecContext(ctx)
	return err
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("profiles").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (udb *UserDB) GetUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	return users, udb.sess.SQL().
		Select("*").
		From("profiles").
		OrderBy("username").
		IteratorContext(ctx).
		All(&users)
}

func (udb *UserDB) GetUsersByIds(ctx context.Context, ids []string) ([]*model.User, error) {
	return udb.getUsersWhere(ctx, "id IN ?", ids)
}

func (udb *UserDB) GetUsersByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	return udb.getUsersWhere(ctx, "username IN ?", usernames)
}

func (udb *UserDB) getUsersWhere(ctx context.Context, cond string, values []string) ([]*model.User, error) {
	// IN with an empty list is invalid SQL; zero matches is the normal case
	// for content with no resolvable references
	if len(values) == 0 {
		return []*model.User{}, nil
	}
	var users []*model.User
	return users, udb.sess.SQL().
		Select("*").
		From("profiles").
		Where(cond, values).
		IteratorContext(ctx).
		All(&users)
}
