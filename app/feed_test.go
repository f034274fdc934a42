package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weixing2014/twitter-clone/model"
)

func TestGetFeedGlobal(t *testing.T) {
	fake := newFakeDB()
	fake.listPosts = []*model.Post{
		{Id: 2, Content: "second", CreatedAt: time.Now()},
		{Id: 1, Content: "first", CreatedAt: time.Now().Add(-time.Minute)},
	}
	fake.commentCounts[2] = 3

	page, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: FeedTypeGlobal}, 2)
	require.NoError(t, err)

	require.NotNil(t, fake.lastQuery)
	assert.Nil(t, fake.lastQuery.AuthorIds)
	assert.Empty(t, fake.lastQuery.ViewerId)
	assert.EqualValues(t, 2, fake.lastQuery.Limit)

	require.Len(t, page.Posts, 2)
	assert.EqualValues(t, 3, page.Posts[0].NumComments)
	// a full page carries a cursor pointing at its oldest post
	require.NotNil(t, page.Cursor)
	assert.EqualValues(t, 1, page.Cursor.LastId)
}

func TestGetFeedShortPageHasNoCursor(t *testing.T) {
	fake := newFakeDB()
	fake.listPosts = []*model.Post{
		{Id: 1, Content: "only one", CreatedAt: time.Now()},
	}

	page, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: FeedTypeGlobal}, DefaultFeedLimit)
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Nil(t, page.Cursor)
}

func TestGetFeedHidesFutureScheduledPostsFromOtherViewers(t *testing.T) {
	fake := newFakeDB()
	author := &model.User{Id: "author"}
	future := time.Now().Add(time.Hour)
	fake.listPosts = []*model.Post{
		{Id: 2, Creator: author, Content: "not yet", CreatedAt: time.Now(), ScheduledAt: &future},
		{Id: 1, Creator: author, Content: "live", CreatedAt: time.Now().Add(-time.Minute)},
	}

	asStranger, err := GetFeed(context.Background(), fake, &model.User{Id: "stranger"},
		&FeedRequest{Type: FeedTypeGlobal}, DefaultFeedLimit)
	require.NoError(t, err)
	require.Len(t, asStranger.Posts, 1)
	assert.EqualValues(t, 1, asStranger.Posts[0].Id)

	asAnonymous, err := GetFeed(context.Background(), fake, nil,
		&FeedRequest{Type: FeedTypeGlobal}, DefaultFeedLimit)
	require.NoError(t, err)
	require.Len(t, asAnonymous.Posts, 1)

	asAuthor, err := GetFeed(context.Background(), fake, author,
		&FeedRequest{Type: FeedTypeGlobal}, DefaultFeedLimit)
	require.NoError(t, err)
	assert.Len(t, asAuthor.Posts, 2)
}

func TestGetFeedFollowingIncludesSelfAndDedupes(t *testing.T) {
	fake := newFakeDB()
	viewer := &model.User{Id: "me"}
	// a self-follow edge must not produce a duplicate author filter entry
	fake.following["me"] = []string{"friend", "me", "friend"}

	_, err := GetFeed(context.Background(), fake, viewer, &FeedRequest{Type: FeedTypeFollowing}, DefaultFeedLimit)
	require.NoError(t, err)

	assert.Equal(t, []string{"me", "friend"}, fake.lastQuery.AuthorIds)
	assert.Equal(t, "me", fake.lastQuery.ViewerId)
}

func TestGetFeedFollowingRequiresAccount(t *testing.T) {
	fake := newFakeDB()
	_, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: FeedTypeFollowing}, DefaultFeedLimit)
	assert.ErrorIs(t, err, ErrFeedRequiresAccount)
}

func TestGetFeedMentions(t *testing.T) {
	fake := newFakeDB()
	viewer := &model.User{Id: "me"}

	_, err := GetFeed(context.Background(), fake, viewer, &FeedRequest{Type: FeedTypeMentions}, DefaultFeedLimit)
	require.NoError(t, err)

	assert.Equal(t, "me", fake.lastQuery.MentionedId)
}

func TestGetFeedTopic(t *testing.T) {
	fake := newFakeDB()
	fake.topicIdsByName["news"] = 7

	_, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: FeedTypeTopic, Topic: "news"}, DefaultFeedLimit)
	require.NoError(t, err)

	assert.EqualValues(t, 7, fake.lastQuery.TopicId)
}

func TestGetFeedUnknownTopicIsEmptyNotError(t *testing.T) {
	fake := newFakeDB()

	page, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: FeedTypeTopic, Topic: "nope"}, DefaultFeedLimit)
	require.NoError(t, err)

	assert.Empty(t, page.Posts)
	assert.Nil(t, page.Cursor)
	assert.Nil(t, fake.lastQuery)
}

func TestGetFeedUser(t *testing.T) {
	fake := newFakeDB()

	_, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: FeedTypeUser, UserId: "author"}, DefaultFeedLimit)
	require.NoError(t, err)

	assert.Equal(t, []string{"author"}, fake.lastQuery.AuthorIds)
}

func TestGetFeedUnknownTypeErrors(t *testing.T) {
	fake := newFakeDB()
	_, err := GetFeed(context.Background(), fake, nil, &FeedRequest{Type: "POPULAR"}, DefaultFeedLimit)
	assert.Error(t, err)
}

func TestGetFeedCursorPropagates(t *testing.T) {
	fake := newFakeDB()
	lastDate := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := GetFeed(context.Background(), fake, nil,
		&FeedRequest{Type: FeedTypeGlobal, LastDate: &lastDate, LastId: 40}, DefaultFeedLimit)
	require.NoError(t, err)

	require.NotNil(t, fake.lastQuery.From)
	assert.True(t, fake.lastQuery.From.Equal(lastDate))
	assert.EqualValues(t, 40, fake.lastQuery.LastId)
}
