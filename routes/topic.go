package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/app"
	"github.com/weixing2014/twitter-clone/controllers"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/util"
)

const (
	defaultTrendingLimit = 10
	defaultSearchLimit   = 5
)

type topicRoutes struct {
	db         db.Database
	controller *controllers.TopicController
}

func AddTopicRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.TopicController) {
	routes := topicRoutes{database, controller}
	topics := group.Group("/topics")
	topics.GET("/trending", util.HandlerWrapper(routes.getTrendingTopics, &util.HandlerOpts{}))
	topics.GET("/hot", util.HandlerWrapper(routes.getHotTopics, &util.HandlerOpts{}))
	topics.GET("/search", util.HandlerWrapper(routes.searchTopics, &util.HandlerOpts{}))
}

func (tr *topicRoutes) getTrendingTopics(c *gin.Context) (interface{}, *util.HTTPError) {
	topics, err := app.GetTrendingTopics(c, tr.db, limitQuery(c, defaultTrendingLimit))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return topics, nil
}

// getHotTopics serves from the controller cache rather than recounting per
// request
func (tr *topicRoutes) getHotTopics(c *gin.Context) (interface{}, *util.HTTPError) {
	return tr.controller.HotTopics(), nil
}

func (tr *topicRoutes) searchTopics(c *gin.Context) (interface{}, *util.HTTPError) {
	prefix := c.Query("q")
	if prefix == "" {
		return nil, util.BuildValidationHTTPErr("q is required")
	}
	topics, err := tr.db.SearchTopics(c, prefix, limitQuery(c, defaultSearchLimit))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return topics, nil
}

func limitQuery(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}
