package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type answerRepository struct {
	mu      sync.RWMutex
	answers map[types.UserID][]*model.Answer
}

var _ interfaces.AnswerRepository = &answerRepository{}

func newAnswerRepository() *answerRepository {
	return &answerRepository{
		answers: make(map[types.UserID][]*model.Answer),
	}
}

func copyAnswer(a *model.Answer) *model.Answer {
	copied := *a
	return &copied
}

func (r *answerRepository) Add(ctx context.Context, answer *model.Answer) error {
	if answer == nil {
		return goerr.New("answer is nil")
	}
	if err := answer.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid answer")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAnswer(answer)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.answers[created.UserID] = append(r.answers[created.UserID], created)
	return nil
}

func (r *answerRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.answers[userID]
	result := make([]*model.Answer, 0, len(stored))
	for _, a := range stored {
		result = append(result, copyAnswer(a))
	}

	// Ascending question order; insertion order breaks ties so duplicate
	// answers for one question keep their arrival order.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].QuestionID < result[j].QuestionID
	})

	return result, nil
}

func (r *answerRepository) DeleteByUser(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.answers, userID)
	return nil
}
