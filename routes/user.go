package routes

import (
	"errors"
	"io"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/app"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/middleware"
	"github.com/weixing2014/twitter-clone/model"
	"github.com/weixing2014/twitter-clone/util"
)

type userRoutes struct {
	db db.Database
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := userRoutes{db: database}

	users := group.Group("/users", middleware.Auth(database, authClient, &middleware.AuthConfig{
		SessionNotRequired: true,
		ProfileNotRequired: true,
	}))
	users.GET("", util.HandlerWrapper(routes.getUsers, &util.HandlerOpts{}))
	users.GET("/:id", util.HandlerWrapper(routes.getUserById, &util.HandlerOpts{}))
	users.GET("/:id/comments", util.HandlerWrapper(routes.getUserComments, &util.HandlerOpts{}))

	// profile creation only needs a verified session
	sessionUsers := group.Group("/users", middleware.Auth(database, authClient, &middleware.AuthConfig{
		ProfileNotRequired: true,
	}))
	sessionUsers.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

type createUserReq struct {
	Username string `json:"username"`
}

// createUser makes sure a profile row exists for the session. Repeated calls
// and sign-ins racing on the same account both settle on the first row.
func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	if existing := middleware.GetUser(c); existing != nil {
		return existing, nil
	}

	// the body is optional; everything can come from the token claims
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	token := middleware.MustGetToken(c)
	email := stringClaim(token, "email")
	claimed := req.Username
	if claimed == "" {
		claimed = stringClaim(token, "name")
	}
	avatarUrl := stringClaim(token, "picture")
	if avatarUrl == "" {
		avatarUrl = util.Avatar(token.UID)
	}

	user := &model.User{
		Id:        token.UID,
		Username:  util.UsernameFallback(claimed, email),
		Email:     email,
		AvatarUrl: avatarUrl,
	}
	if err := ur.db.CreateUser(c, user); err != nil && !db.IsDupKeyErr(err) {
		return nil, util.BuildDbHTTPErr(err)
	}

	created, err := ur.db.GetUser(c, token.UID)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return created, nil
}

func (ur *userRoutes) getUsers(c *gin.Context) (interface{}, *util.HTTPError) {
	users, err := app.GetUsersWithFollowStatus(c, ur.db, middleware.GetUser(c))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}

func (ur *userRoutes) getUserById(c *gin.Context) (interface{}, *util.HTTPError) {
	user, err := ur.db.GetUser(c, c.Param("id"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, &util.NotFoundHTTPErr
	}
	return user, nil
}

func (ur *userRoutes) getUserComments(c *gin.Context) (interface{}, *util.HTTPError) {
	comments, err := app.GetCommentsWithPosts(c, ur.db, c.Param("id"), viewerId(c))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return comments, nil
}

func stringClaim(token *auth.Token, key string) string {
	val, _ := token.Claims[key].(string)
	return val
}
