// Package parse tokenizes post content into mention, topic, whitespace and
// plain-text runs. Tokenization is a pure function of the input string and is
// lossless: concatenating the Raw fields of the returned tokens reproduces
// the input exactly.
package parse

import (
	"regexp"
	"strings"
	"unicode"
)

type TokenKind int

const (
	TokenText TokenKind = iota
	TokenWhitespace
	TokenMention
	TokenTopic
)

// Token is a classified span of post content. For mentions and topics, Body
// is the token without its sigil; for text and whitespace Body equals Raw.
type Token struct {
	Kind TokenKind
	Raw  string
	Body string
}

var (
	// a mention body is either a username-safe run or a user id (UUID)
	mentionPattern = regexp.MustCompile(`^@([a-zA-Z0-9._]+)$`)
	uuidPattern    = regexp.MustCompile(`^@[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	topicPattern   = regexp.MustCompile(`^#(\w+)$`)

	// inlinePattern finds mentions and topics embedded in a chunk with no
	// whitespace separating them from surrounding text
	inlinePattern = regexp.MustCompile(`@[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|@[a-zA-Z0-9._]+|#\w+`)
)

// SplitContent splits content into an ordered token slice. A '@' or '#' not
// followed by a valid body stays plain text. Returns an empty slice for
// empty content.
func SplitContent(content string) []Token {
	tokens := []Token{}
	for _, chunk := range splitPreservingWhitespace(content) {
		if strings.TrimSpace(chunk) == "" {
			tokens = append(tokens, Token{Kind: TokenWhitespace, Raw: chunk, Body: chunk})
			continue
		}
		tokens = append(tokens, classifyChunk(chunk)...)
	}
	return tokens
}

// classifyChunk classifies a single whitespace-free chunk, sub-splitting
// mixed chunks such as "hello@alice" or "#a#b"
func classifyChunk(chunk string) []Token {
	if token, ok := classifyWhole(chunk); ok {
		return []Token{token}
	}

	var tokens []Token
	last := 0
	for _, span := range inlinePattern.FindAllStringIndex(chunk, -1) {
		if span[0] > last {
			tokens = append(tokens, Token{Kind: TokenText, Raw: chunk[last:span[0]], Body: chunk[last:span[0]]})
		}
		raw := chunk[span[0]:span[1]]
		tokens = append(tokens, Token{Kind: kindOf(raw), Raw: raw, Body: raw[1:]})
		last = span[1]
	}
	if last < len(chunk) {
		tokens = append(tokens, Token{Kind: TokenText, Raw: chunk[last:], Body: chunk[last:]})
	}
	return tokens
}

func classifyWhole(chunk string) (Token, bool) {
	if mentionPattern.MatchString(chunk) || uuidPattern.MatchString(chunk) {
		return Token{Kind: TokenMention, Raw: chunk, Body: chunk[1:]}, true
	}
	if topicPattern.MatchString(chunk) {
		return Token{Kind: TokenTopic, Raw: chunk, Body: chunk[1:]}, true
	}
	return Token{}, false
}

func kindOf(raw string) TokenKind {
	if strings.HasPrefix(raw, "@") {
		return TokenMention
	}
	return TokenTopic
}

// splitPreservingWhitespace splits content into alternating whitespace and
// non-whitespace runs, dropping nothing
func splitPreservingWhitespace(content string) []string {
	var chunks []string
	start := 0
	inSpace := false
	for i, r := range content {
		isSpace := unicode.IsSpace(r)
		if i == 0 {
			inSpace = isSpace
			continue
		}
		if isSpace != inSpace {
			chunks = append(chunks, content[start:i])
			start = i
			inSpace = isSpace
		}
	}
	if start < len(content) {
		chunks = append(chunks, content[start:])
	}
	return chunks
}

// Join reassembles tokens into the string they were split from
func Join(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.Raw)
	}
	return b.String()
}

// ExtractMentions returns the mention bodies of content in order of first
// appearance, deduplicated
func ExtractMentions(content string) []string {
	return extract(content, TokenMention)
}

// ExtractTopics returns the topic bodies of content in order of first
// appearance, deduplicated
func ExtractTopics(content string) []string {
	return extract(content, TokenTopic)
}

func extract(content string, kind TokenKind) []string {
	seen := make(map[string]bool)
	var bodies []string
	for _, token := range SplitContent(content) {
		if token.Kind != kind || seen[token.Body] {
			continue
		}
		seen[token.Body] = true
		bodies = append(bodies, token.Body)
	}
	return bodies
}
