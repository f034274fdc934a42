package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/middleware"
	"github.com/weixing2014/twitter-clone/model"
	"github.com/weixing2014/twitter-clone/util"
)

type followRoutes struct {
	db db.Database
}

func AddFollowRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := followRoutes{db: database}
	follows := group.Group("/follows", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	follows.GET("", util.HandlerWrapper(routes.getFollowing, &util.HandlerOpts{}))
	follows.GET("/:userId", util.HandlerWrapper(routes.isFollowing, &util.HandlerOpts{}))
	follows.PUT("/:userId", util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	follows.DELETE("/:userId", util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
}

func (fr *followRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	targetId := c.Param("userId")
	if targetId == user.Id {
		return nil, util.BuildValidationHTTPErr("cannot follow yourself")
	}
	target, err := fr.db.GetUser(c, targetId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if target == nil {
		return nil, &util.NotFoundHTTPErr
	}
	err = fr.db.CreateFollow(c, &model.Follow{
		FollowerId:  user.Id,
		FollowingId: targetId,
	})
	// a repeated follow is a no-op, not an error
	if err != nil && !db.IsDupKeyErr(err) {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	if err := fr.db.DeleteFollow(c, &model.Follow{
		FollowerId:  user.Id,
		FollowingId: c.Param("userId"),
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (fr *followRoutes) isFollowing(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	following, err := fr.db.IsFollowing(c, user.Id, c.Param("userId"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"isFollowing": following}, nil
}

func (fr *followRoutes) getFollowing(c *gin.Context) (interface{}, *util.HTTPError) {
	followingIds, err := fr.db.GetFollowing(c, middleware.MustGetUser(c).Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	users, err := fr.db.GetUsersByIds(c, followingIds)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}
