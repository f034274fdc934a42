package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrendingTopicsRanksByFrequency(t *testing.T) {
	fake := newFakeDB()
	fake.topicIdsByName = map[string]int64{"go": 1, "news": 2, "misc": 3}
	fake.topicLists = [][]int64{
		{2},
		{1, 2},
		{2, 3},
	}

	trending, err := GetTrendingTopics(context.Background(), fake, 2)
	require.NoError(t, err)

	require.Len(t, trending, 2)
	assert.Equal(t, "news", trending[0].Name)
	assert.Equal(t, 3, trending[0].Count)
	assert.Equal(t, "go", trending[1].Name)
	assert.Nil(t, fake.topicsSince)
	assert.Equal(t, TrendingSampleSize, fake.topicsLimit)
}

func TestGetTrendingTopicsTiesKeepNewestFirstOrder(t *testing.T) {
	fake := newFakeDB()
	fake.topicIdsByName = map[string]int64{"go": 1, "news": 2}
	fake.topicLists = [][]int64{
		{2},
		{1},
	}

	trending, err := GetTrendingTopics(context.Background(), fake, 10)
	require.NoError(t, err)

	require.Len(t, trending, 2)
	assert.Equal(t, "news", trending[0].Name)
	assert.Equal(t, "go", trending[1].Name)
}

func TestGetHotTopicsUsesDayWindow(t *testing.T) {
	fake := newFakeDB()
	fake.topicIdsByName = map[string]int64{"go": 1}
	fake.topicLists = [][]int64{{1}, {1}}
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	hot, err := GetHotTopics(context.Background(), fake, now)
	require.NoError(t, err)

	require.NotNil(t, fake.topicsSince)
	assert.True(t, fake.topicsSince.Equal(now.Add(-24*time.Hour)))
	require.Len(t, hot, 1)
	assert.Equal(t, 2, hot[0].Count)
}

func TestRankTopicsSkipsDeletedTopicRows(t *testing.T) {
	fake := newFakeDB()
	fake.topicIdsByName = map[string]int64{"go": 1}
	fake.topicLists = [][]int64{{1, 99}}

	trending, err := GetTrendingTopics(context.Background(), fake, 10)
	require.NoError(t, err)

	require.Len(t, trending, 1)
	assert.Equal(t, "go", trending[0].Name)
}
