package app

import (
	"context"
	"strings"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
	"github.com/weixing2014/twitter-clone/parse"
)

// HydratePosts rewrites stored @<user-id> mentions back to @username for
// display, using one batch profile lookup across the whole page. Ids whose
// profile is gone stay literal. Mutates the posts in place.
func HydratePosts(ctx context.Context, userDB db.UserDatabase, posts []*model.Post) error {
	idSet := make(map[string]bool)
	var mentionIds []string
	for _, post := range posts {
		for _, id := range post.Mentions {
			if !idSet[id] {
				idSet[id] = true
				mentionIds = append(mentionIds, id)
			}
		}
	}
	if len(mentionIds) == 0 {
		return nil
	}

	users, err := userDB.GetUsersByIds(ctx, mentionIds)
	if err != nil {
		return err
	}
	userById := make(map[string]*model.User, len(users))
	for _, user := range users {
		userById[user.Id] = user
	}

	for _, post := range posts {
		hydratePost(post, userById)
	}
	return nil
}

func hydratePost(post *model.Post, userById map[string]*model.User) {
	if len(post.Mentions) == 0 {
		return
	}

	var b strings.Builder
	for _, token := range parse.SplitContent(post.Content) {
		if token.Kind == parse.TokenMention {
			if user, ok := userById[token.Body]; ok {
				b.WriteString("@")
				b.WriteString(user.Username)
				continue
			}
		}
		b.WriteString(token.Raw)
	}
	post.Content = b.String()

	post.MentionedUsers = post.MentionedUsers[:0]
	for _, id := range post.Mentions {
		if user, ok := userById[id]; ok {
			post.MentionedUsers = append(post.MentionedUsers, user)
		}
	}
}
