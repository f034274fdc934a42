package routes

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/middleware"
	"github.com/weixing2014/twitter-clone/services"
	"github.com/weixing2014/twitter-clone/util"
)

// MaxImageSize caps a single upload at 5 MiB
const MaxImageSize = 5 << 20

type uploadRoutes struct {
	db     db.Database
	bucket *services.StorageBucket
}

func AddUploadRoutes(group *gin.RouterGroup, database db.Database, bucket *services.StorageBucket,
	authClient *auth.Client) {
	routes := uploadRoutes{database, bucket}
	uploads := group.Group("/uploads", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	uploads.POST("/images", util.HandlerWrapper(routes.uploadImage, &util.HandlerOpts{}))
}

func (ur *uploadRoutes) uploadImage(c *gin.Context) (interface{}, *util.HTTPError) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, util.BuildValidationHTTPErr("request must carry an image file part")
	}
	if fileHeader.Size > MaxImageSize {
		return nil, util.BuildValidationHTTPErr(
			fmt.Sprintf("image cannot exceed %v bytes", MaxImageSize))
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, util.BuildValidationHTTPErr("only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, util.BuildValidationHTTPErr("could not read the uploaded file")
	}
	defer file.Close()

	url, err := ur.bucket.UploadImage(c, middleware.MustGetUser(c).Id,
		filepath.Ext(fileHeader.Filename), contentType, file)
	if err != nil {
		log.Println("image upload failed", err)
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "upload failed",
		}
	}
	return gin.H{"url": url}, nil
}
