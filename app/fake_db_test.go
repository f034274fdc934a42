package app

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

// fakeDB is an in-memory db.Database for exercising app logic without MySQL
type fakeDB struct {
	users     []*model.User
	following map[string][]string
	follows   []*model.Follow

	topicIdsByName map[string]int64
	nextTopicId    int64
	upsertCalls    map[string]int

	postById   map[int64]*model.Post
	nextPostId int64
	listPosts  []*model.Post
	lastQuery  *db.PostsListQuery
	deletedIds []int64

	comments      []*model.Comment
	commentCounts map[int64]int64

	topicLists   [][]int64
	topicsSince  *time.Time
	topicsLimit  int
	topicsByIdIn []int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		following:      make(map[string][]string),
		topicIdsByName: make(map[string]int64),
		nextTopicId:    1,
		upsertCalls:    make(map[string]int),
		postById:       make(map[int64]*model.Post),
		nextPostId:     1,
		commentCounts:  make(map[int64]int64),
	}
}

func (f *fakeDB) GetSQLDB() *sql.DB { return nil }
func (f *fakeDB) Close() error      { return nil }

func (f *fakeDB) CreatePost(ctx context.Context, req *db.CreatePost) (int64, error) {
	id := f.nextPostId
	f.nextPostId++
	imageUrls := req.ImageUrls
	if imageUrls == nil {
		imageUrls = []string{}
	}
	f.postById[id] = &model.Post{
		Id:          id,
		Creator:     &model.User{Id: req.CreatorId, Username: "creator-" + req.CreatorId},
		Content:     req.Content,
		ImageUrls:   imageUrls,
		Mentions:    req.Mentions,
		Topics:      req.TopicIds,
		CreatedAt:   time.Now(),
		ScheduledAt: req.ScheduledAt,
	}
	return id, nil
}

func (f *fakeDB) GetPostById(ctx context.Context, id int64, viewerId string) (*model.Post, error) {
	post, ok := f.postById[id]
	if !ok || !post.VisibleTo(viewerId, time.Now()) {
		return nil, nil
	}
	return post, nil
}

func (f *fakeDB) GetPostsByIds(ctx context.Context, ids []int64, viewerId string) ([]*model.Post, error) {
	posts := []*model.Post{}
	for _, id := range ids {
		if post, ok := f.postById[id]; ok && post.VisibleTo(viewerId, time.Now()) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakeDB) GetPosts(ctx context.Context, query *db.PostsListQuery) ([]*model.Post, error) {
	f.lastQuery = query
	posts := []*model.Post{}
	for _, post := range f.listPosts {
		if post.VisibleTo(query.ViewerId, time.Now()) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakeDB) DeletePost(ctx context.Context, id int64) error {
	f.deletedIds = append(f.deletedIds, id)
	delete(f.postById, id)
	return nil
}

func (f *fakeDB) CreateComment(ctx context.Context, req *db.CreateComment) (int64, error) {
	comment := &model.Comment{
		Id:        int64(len(f.comments) + 1),
		PostId:    req.PostId,
		Creator:   &model.User{Id: req.CreatorId},
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	f.comments = append(f.comments, comment)
	return comment.Id, nil
}

func (f *fakeDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	for _, comment := range f.comments {
		if comment.Id == id {
			return comment, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	for _, comment := range f.comments {
		if comment.PostId == postId {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (f *fakeDB) GetCommentsByUser(ctx context.Context, userId string) ([]*model.Comment, error) {
	var comments []*model.Comment
	for _, comment := range f.comments {
		if comment.Creator.Id == userId {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (f *fakeDB) GetCommentCount(ctx context.Context, postId int64) (int64, error) {
	return f.commentCounts[postId], nil
}

func (f *fakeDB) GetCommentCounts(ctx context.Context, postIds []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, id := range postIds {
		if count, ok := f.commentCounts[id]; ok {
			counts[id] = count
		}
	}
	return counts, nil
}

func (f *fakeDB) DeleteComment(ctx context.Context, id int64) error {
	for i, comment := range f.comments {
		if comment.Id == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	f.follows = append(f.follows, follow)
	f.following[follow.FollowerId] = append(f.following[follow.FollowerId], follow.FollowingId)
	return nil
}

func (f *fakeDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	ids := f.following[follow.FollowerId]
	for i, id := range ids {
		if id == follow.FollowingId {
			f.following[follow.FollowerId] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeDB) IsFollowing(ctx context.Context, followerId, followingId string) (bool, error) {
	for _, id := range f.following[followerId] {
		if id == followingId {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDB) GetFollowing(ctx context.Context, followerId string) ([]string, error) {
	return f.following[followerId], nil
}

func (f *fakeDB) UpsertTopic(ctx context.Context, name string) (int64, error) {
	f.upsertCalls[name]++
	if id, ok := f.topicIdsByName[name]; ok {
		return id, nil
	}
	id := f.nextTopicId
	f.nextTopicId++
	f.topicIdsByName[name] = id
	return id, nil
}

func (f *fakeDB) GetTopicByName(ctx context.Context, name string) (*model.Topic, error) {
	id, ok := f.topicIdsByName[name]
	if !ok {
		return nil, nil
	}
	return &model.Topic{Id: id, Name: name}, nil
}

func (f *fakeDB) GetTopicsByIds(ctx context.Context, ids []int64) ([]*model.Topic, error) {
	f.topicsByIdIn = ids
	nameById := make(map[int64]string)
	for name, id := range f.topicIdsByName {
		nameById[id] = name
	}
	topics := []*model.Topic{}
	for _, id := range ids {
		if name, ok := nameById[id]; ok {
			topics = append(topics, &model.Topic{Id: id, Name: name})
		}
	}
	return topics, nil
}

func (f *fakeDB) SearchTopics(ctx context.Context, prefix string, limit int) ([]*model.Topic, error) {
	return nil, nil
}

func (f *fakeDB) GetRecentPostTopics(ctx context.Context, since *time.Time, limit int) ([][]int64, error) {
	f.topicsSince = since
	f.topicsLimit = limit
	return f.topicLists, nil
}

func (f *fakeDB) CreateUser(ctx context.Context, user *model.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	for _, user := range f.users {
		if user.Id == id {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetUsers(ctx context.Context) ([]*model.User, error) {
	return f.users, nil
}

func (f *fakeDB) GetUsersByIds(ctx context.Context, ids []string) ([]*model.User, error) {
	idSet := make(map[string]bool)
	for _, id := range ids {
		idSet[id] = true
	}
	users := []*model.User{}
	for _, user := range f.users {
		if idSet[user.Id] {
			users = append(users, user)
		}
	}
	return users, nil
}

// GetUsersByUsernames matches case-insensitively, like the MySQL collation
// the real query runs under
func (f *fakeDB) GetUsersByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	nameSet := make(map[string]bool)
	for _, name := range usernames {
		nameSet[strings.ToLower(name)] = true
	}
	users := []*model.User{}
	for _, user := range f.users {
		if nameSet[strings.ToLower(user.Username)] {
			users = append(users, user)
		}
	}
	return users, nil
}
