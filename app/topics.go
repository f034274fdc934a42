package app

import (
	"context"
	"sort"
	"time"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

const (
	// TrendingSampleSize is how many recent posts feed the trending count
	TrendingSampleSize = 100
	trendingLimit      = 10
	hotTopicsWindow    = 24 * time.Hour
	hotTopicsLimit     = 10
)

// GetTrendingTopics ranks topics by frequency across the latest posts
func GetTrendingTopics(ctx context.Context, topicDB db.TopicDatabase, limit int) ([]*model.TopicWithCount, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	topicIdLists, err := topicDB.GetRecentPostTopics(ctx, nil, TrendingSampleSize)
	if err != nil {
		return nil, err
	}
	return rankTopics(ctx, topicDB, topicIdLists, limit)
}

// GetHotTopics ranks topics by frequency across the last 24 hours of posts
func GetHotTopics(ctx context.Context, topicDB db.TopicDatabase, now time.Time) ([]*model.TopicWithCount, error) {
	since := now.Add(-hotTopicsWindow)
	topicIdLists, err := topicDB.GetRecentPostTopics(ctx, &since, 0)
	if err != nil {
		return nil, err
	}
	return rankTopics(ctx, topicDB, topicIdLists, hotTopicsLimit)
}

func rankTopics(ctx context.Context, topicDB db.TopicDatabase, topicIdLists [][]int64, limit int) ([]*model.TopicWithCount, error) {
	counts := make(map[int64]int)
	var order []int64
	for _, topicIds := range topicIdLists {
		for _, topicId := range topicIds {
			if counts[topicId] == 0 {
				order = append(order, topicId)
			}
			counts[topicId]++
		}
	}
	// ties keep first-seen order, which is newest-post-first
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	topics, err := topicDB.GetTopicsByIds(ctx, order)
	if err != nil {
		return nil, err
	}
	topicById := make(map[int64]*model.Topic, len(topics))
	for _, topic := range topics {
		topicById[topic.Id] = topic
	}

	ranked := make([]*model.TopicWithCount, 0, len(order))
	for _, topicId := range order {
		topic, ok := topicById[topicId]
		if !ok {
			// topic row deleted since the post was written
			continue
		}
		ranked = append(ranked, &model.TopicWithCount{
			Topic: topic,
			Count: counts[topicId],
		})
	}
	return ranked, nil
}
