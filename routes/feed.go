package routes

import (
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/app"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/middleware"
	"github.com/weixing2014/twitter-clone/util"
)

type feedRoutes struct {
	db db.Database
}

func AddFeedRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := feedRoutes{db: database}
	// the global and topic feeds work anonymously; the rest reject inside
	feeds := group.Group("/feeds", middleware.Auth(database, authClient, &middleware.AuthConfig{
		SessionNotRequired: true,
		ProfileNotRequired: true,
	}))
	feeds.POST("", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
}

func (fr *feedRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	var req app.FeedRequest
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	page, err := app.GetFeed(c, fr.db, middleware.GetUser(c), &req, app.DefaultFeedLimit)
	if err != nil {
		if errors.Is(err, app.ErrFeedRequiresAccount) {
			return nil, &util.HTTPError{
				Status:  http.StatusUnauthorized,
				Message: err.Error(),
			}
		}
		if errors.Is(err, app.ErrBadFeedRequest) {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return page, nil
}
