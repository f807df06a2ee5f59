package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type questionRepository struct {
	mu        sync.RWMutex
	questions map[types.QuestionID]*model.Question
	nextID    types.QuestionID
}

var _ interfaces.QuestionRepository = &questionRepository{}

func newQuestionRepository() *questionRepository {
	return &questionRepository{
		questions: make(map[types.QuestionID]*model.Question),
		nextID:    1,
	}
}

func copyQuestion(q *model.Question) *model.Question {
	copied := *q
	return &copied
}

func (r *questionRepository) Add(ctx context.Context, question *model.Question) (*model.Question, error) {
	if question == nil {
		return nil, goerr.New("question is nil")
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyQuestion(question)
	created.ID = r.nextID
	r.nextID++

	r.questions[created.ID] = created
	return copyQuestion(created), nil
}

func (r *questionRepository) ListByChannel(ctx context.Context, channelID types.ChannelID) ([]*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Question
	for _, q := range r.questions {
		if q.ChannelID == channelID {
			result = append(result, copyQuestion(q))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *questionRepository) Delete(ctx context.Context, id types.QuestionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.questions, id)
	return nil
}

func (r *questionRepository) DeleteByChannel(ctx context.Context, channelID types.ChannelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, q := range r.questions {
		if q.ChannelID == channelID {
			delete(r.questions, id)
		}
	}
	return nil
}
