package model

import (
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Question is one entry of a channel's ordered question list. The ID is
// allocated by the repository and ascending ID order is the order users
// traverse during a session.
type Question struct {
	ID        types.QuestionID
	ChannelID types.ChannelID
	Body      string
}

// Validate checks the required question fields
func (q *Question) Validate() error {
	if err := q.ChannelID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid question")
	}
	if q.Body == "" {
		return goerr.New("question body is required", goerr.V("channel_id", q.ChannelID))
	}
	return nil
}

// FirstQuestion returns the first question of an ascending sequence, or nil
// when the sequence is empty.
func FirstQuestion(questions []*Question) *Question {
	if len(questions) == 0 {
		return nil
	}
	return questions[0]
}

// NextQuestion locates current in the ascending sequence and returns the
// following question. ok is false when current is the last question, or when
// current is no longer in the sequence (deleted mid-session); callers treat
// both as session completion.
func NextQuestion(questions []*Question, current types.QuestionID) (*Question, bool) {
	if current.IsNone() {
		// Just-started marker: the first question is owed, so the
		// "next" after answering it is the second entry.
		if len(questions) > 1 {
			return questions[1], true
		}
		return nil, false
	}

	for i, q := range questions {
		if q.ID == current {
			if i+1 < len(questions) {
				return questions[i+1], true
			}
			return nil, false
		}
	}

	return nil, false
}

// ResolveOwed maps a user's stored question position to the question actually
// owed: the just-started marker resolves to the first question.
func ResolveOwed(questions []*Question, current types.QuestionID) *Question {
	if current.IsNone() {
		return FirstQuestion(questions)
	}
	for _, q := range questions {
		if q.ID == current {
			return q
		}
	}
	return nil
}
