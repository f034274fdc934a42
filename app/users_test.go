package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

func TestGetUsersWithFollowStatus(t *testing.T) {
	fake := newFakeDB()
	fake.users = []*model.User{
		{Id: "a", Username: "alice"},
		{Id: "b", Username: "bob"},
	}
	fake.following["me"] = []string{"b"}

	users, err := GetUsersWithFollowStatus(context.Background(), fake, &model.User{Id: "me"})
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.False(t, users[0].IsFollowing)
	assert.True(t, users[1].IsFollowing)
}

func TestGetUsersWithFollowStatusAnonymous(t *testing.T) {
	fake := newFakeDB()
	fake.users = []*model.User{{Id: "a", Username: "alice"}}

	users, err := GetUsersWithFollowStatus(context.Background(), fake, nil)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.False(t, users[0].IsFollowing)
}

func TestGetCommentsWithPosts(t *testing.T) {
	fake := newFakeDB()
	postId, err := fake.CreatePost(context.Background(), &db.CreatePost{CreatorId: "author", Content: "a post"})
	require.NoError(t, err)
	_, err = fake.CreateComment(context.Background(), &db.CreateComment{PostId: postId, CreatorId: "me", Content: "nice"})
	require.NoError(t, err)

	withPosts, err := GetCommentsWithPosts(context.Background(), fake, "me", "me")
	require.NoError(t, err)

	require.Len(t, withPosts, 1)
	require.NotNil(t, withPosts[0].Post)
	assert.Equal(t, postId, withPosts[0].Post.Id)
}

func TestGetCommentsWithPostsHidesPostsTheViewerMayNotSee(t *testing.T) {
	fake := newFakeDB()
	future := time.Now().Add(time.Hour)
	postId, err := fake.CreatePost(context.Background(), &db.CreatePost{
		CreatorId: "author", Content: "not published yet", ScheduledAt: &future,
	})
	require.NoError(t, err)
	_, err = fake.CreateComment(context.Background(), &db.CreateComment{PostId: postId, CreatorId: "me", Content: "early"})
	require.NoError(t, err)

	// the comment still lists, but its scheduled parent stays hidden
	withPosts, err := GetCommentsWithPosts(context.Background(), fake, "me", "stranger")
	require.NoError(t, err)

	require.Len(t, withPosts, 1)
	assert.Nil(t, withPosts[0].Post)
}
