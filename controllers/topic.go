package controllers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/weixing2014/twitter-clone/app"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

const HotTopicsUpdateInterval = time.Minute * 5

// TopicController serves the hot-topics sidebar from a periodically
// refreshed cache instead of recounting recent posts on every request
type TopicController struct {
	db            db.TopicDatabase
	cachedHot     []*model.TopicWithCount
	cachedHotLock sync.Mutex
	updateTicker  *time.Ticker
}

func NewTopicController(c context.Context, topicDB db.TopicDatabase) (*TopicController, error) {
	controller := &TopicController{
		db: topicDB,
	}
	if err := controller.updateCachedHotTopics(c); err != nil {
		return nil, err
	}

	updateTicker := time.NewTicker(HotTopicsUpdateInterval)
	controller.updateTicker = updateTicker
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Println("recovered while attempting to update hot topics", r)
			}
		}()
		for {
			select {
			case <-updateTicker.C:
				controller.attemptToUpdateCachedHotTopics(c)
			}
		}
	}()

	return controller, nil
}

// HotTopics returns the cached ranking; it never blocks on the database
func (tc *TopicController) HotTopics() []*model.TopicWithCount {
	tc.cachedHotLock.Lock()
	defer tc.cachedHotLock.Unlock()
	return tc.cachedHot
}

// NotifyPostCreated refreshes the cache in the background so a new topic
// shows up without waiting a full tick. The refresh outlives the request,
// so it runs on its own context.
func (tc *TopicController) NotifyPostCreated() {
	go tc.attemptToUpdateCachedHotTopics(context.Background())
}

func (tc *TopicController) attemptToUpdateCachedHotTopics(c context.Context) {
	if err := tc.updateCachedHotTopics(c); err != nil {
		log.Println("an error occurred while updating hot topics", err)
	}
}

func (tc *TopicController) updateCachedHotTopics(c context.Context) error {
	hotTopics, err := app.GetHotTopics(c, tc.db, time.Now())
	if err != nil {
		return err
	}

	tc.cachedHotLock.Lock()
	defer tc.cachedHotLock.Unlock()
	tc.cachedHot = hotTopics
	return nil
}
