package routes

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/middleware"
	"github.com/weixing2014/twitter-clone/model"
	"github.com/weixing2014/twitter-clone/util"
)

type commentRoutes struct {
	db db.Database
}

func AddCommentRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := commentRoutes{database}

	postComments := group.Group("/posts/:id/comments", middleware.Auth(database, authClient, &middleware.AuthConfig{
		SessionNotRequired: true,
		ProfileNotRequired: true,
	}))
	postComments.GET("", util.HandlerWrapper(routes.getCommentsForPost, &util.HandlerOpts{}))
	postComments.GET("/count", util.HandlerWrapper(routes.getCommentCount, &util.HandlerOpts{}))

	authedPostComments := group.Group("/posts/:id/comments",
		middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	authedPostComments.PUT("", util.HandlerWrapper(routes.createComment, &util.HandlerOpts{}))

	comments := group.Group("/comments", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	comments.DELETE("/:id", util.HandlerWrapper(routes.deleteComment, &util.HandlerOpts{}))
}

type createCommentReq struct {
	Content string `json:"content"`
}

func (cr *commentRoutes) createComment(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req createCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, util.BuildValidationHTTPErr("comment cannot be empty")
	}
	if utf8.RuneCountInString(content) > model.MaxPostLength {
		return nil, util.BuildValidationHTTPErr(
			fmt.Sprintf("comment cannot exceed %v characters", model.MaxPostLength))
	}

	user := middleware.MustGetUser(c)
	post, err := cr.db.GetPostById(c, postId, user.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, &util.NotFoundHTTPErr
	}

	commentId, err := cr.db.CreateComment(c, &db.CreateComment{
		PostId:    postId,
		CreatorId: user.Id,
		Content:   util.XSSSanitize(content),
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	comment, err := cr.db.GetCommentById(c, commentId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return comment, nil
}

func (cr *commentRoutes) getCommentsForPost(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := cr.db.GetPostById(c, postId, viewerId(c))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, &util.NotFoundHTTPErr
	}
	comments, err := cr.db.GetCommentsForPost(c, postId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return comments, nil
}

func (cr *commentRoutes) getCommentCount(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	count, err := cr.db.GetCommentCount(c, postId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"count": count}, nil
}

func (cr *commentRoutes) deleteComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	comment, err := cr.db.GetCommentById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if comment == nil {
		return nil, &util.NotFoundHTTPErr
	}
	if !comment.CanDelete(user) {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "only the author can delete a comment",
		}
	}
	if err := cr.db.DeleteComment(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
