package model

import (
	"strings"
	"time"

	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// DefaultSkipTokens are the answers treated as "nothing to report". The
// comparison is case-insensitive on the trimmed text.
var DefaultSkipTokens = []string{"-", "nil", "none", "null"}

// Answer is one reply recorded during a session. Answers accumulate per user
// across a cycle and are deleted as a batch after the report is assembled.
type Answer struct {
	UserID     types.UserID
	QuestionID types.QuestionID
	Text       string
	CreatedAt  time.Time
}

// IsSkip reports whether the answer text is one of the given skip tokens.
// An empty token list falls back to DefaultSkipTokens.
func (a *Answer) IsSkip(tokens []string) bool {
	if len(tokens) == 0 {
		tokens = DefaultSkipTokens
	}
	text := strings.ToLower(strings.TrimSpace(a.Text))
	for _, t := range tokens {
		if text == strings.ToLower(t) {
			return true
		}
	}
	return false
}
