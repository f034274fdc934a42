package app

import (
	"context"
	"strings"

	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/parse"
)

// ResolvedContent is post content prepared for storage: matched @username
// tokens rewritten to @<user-id>, topic tokens upserted to topic rows.
type ResolvedContent struct {
	Content  string
	Mentions []string
	TopicIds []int64
}

// ResolveContent rewrites mentions and topics for storage. Usernames that
// match no profile stay literal text; that is a design choice, not an error.
// Substitution happens on the exact token spans of the parse, so usernames
// that are substrings of other tokens cannot be clobbered.
func ResolveContent(ctx context.Context, userDB db.UserDatabase, topicDB db.TopicDatabase, content string) (*ResolvedContent, error) {
	tokens := parse.SplitContent(content)

	users, err := userDB.GetUsersByUsernames(ctx, parse.ExtractMentions(content))
	if err != nil {
		return nil, err
	}
	// the username lookup runs under MySQL's case-insensitive collation, so
	// a returned profile can differ in case from the token body; the map has
	// to match the same way or a "found" profile would never substitute
	idByUsername := make(map[string]string, len(users))
	for _, user := range users {
		idByUsername[strings.ToLower(user.Username)] = user.Id
	}

	var b strings.Builder
	var mentions []string
	seenIds := make(map[string]bool)
	for _, token := range tokens {
		if token.Kind == parse.TokenMention {
			if id, ok := idByUsername[strings.ToLower(token.Body)]; ok {
				b.WriteString("@")
				b.WriteString(id)
				if !seenIds[id] {
					seenIds[id] = true
					mentions = append(mentions, id)
				}
				continue
			}
		}
		b.WriteString(token.Raw)
	}

	var topicIds []int64
	for _, name := range parse.ExtractTopics(content) {
		topicId, err := topicDB.UpsertTopic(ctx, name)
		if err != nil {
			return nil, err
		}
		topicIds = append(topicIds, topicId)
	}

	return &ResolvedContent{
		Content:  b.String(),
		Mentions: mentions,
		TopicIds: topicIds,
	}, nil
}
