package routes

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/app"
	"github.com/weixing2014/twitter-clone/controllers"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/middleware"
	"github.com/weixing2014/twitter-clone/model"
	"github.com/weixing2014/twitter-clone/services"
	"github.com/weixing2014/twitter-clone/util"
)

type postRoutes struct {
	db         db.Database
	bucket     *services.StorageBucket
	controller *controllers.TopicController
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, bucket *services.StorageBucket,
	controller *controllers.TopicController, authClient *auth.Client) {
	routes := postRoutes{database, bucket, controller}

	// reads work for anonymous viewers; the scheduled-post rule is applied
	// with whatever viewer id the session carries
	posts := group.Group("/posts", middleware.Auth(database, authClient, &middleware.AuthConfig{
		SessionNotRequired: true,
		ProfileNotRequired: true,
	}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))

	authedPosts := group.Group("/posts", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	authedPosts.PUT("", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	authedPosts.DELETE("/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
}

type createPostReq struct {
	Content     string   `json:"content"`
	ImageUrls   []string `json:"imageUrls"`
	ScheduledAt string   `json:"scheduledAt"`
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createPostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, util.BuildValidationHTTPErr("post cannot be empty")
	}
	if utf8.RuneCountInString(content) > model.MaxPostLength {
		return nil, util.BuildValidationHTTPErr(
			fmt.Sprintf("post cannot exceed %v characters", model.MaxPostLength))
	}
	if len(req.ImageUrls) > model.MaxPostImages {
		return nil, util.BuildValidationHTTPErr(
			fmt.Sprintf("post cannot have more than %v images", model.MaxPostImages))
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != "" {
		parsed, err := util.ParseTime(req.ScheduledAt)
		if err != nil {
			return nil, util.BuildValidationHTTPErr("scheduledAt must be an RFC 3339 timestamp")
		}
		scheduledAt = &parsed
	}

	post, err := app.CreatePost(c, pr.db, middleware.MustGetUser(c),
		util.XSSSanitize(content), req.ImageUrls, scheduledAt)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	pr.controller.NotifyPostCreated()
	return post, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id, viewerId(c))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, &util.NotFoundHTTPErr
	}
	if err := app.HydratePosts(c, pr.db, []*model.Post{post}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	numComments, err := pr.db.GetCommentCount(c, post.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	post.NumComments = numComments
	return post, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	post, err := pr.db.GetPostById(c, id, user.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, &util.NotFoundHTTPErr
	}
	if !post.CanDelete(user) {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "only the author can delete a post",
		}
	}
	if err := app.DeletePost(c, pr.db, pr.bucket, post); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

// viewerId returns the signed-in user's id or "" for anonymous requests
func viewerId(c *gin.Context) string {
	if user := middleware.GetUser(c); user != nil {
		return user.Id
	}
	return ""
}
