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

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.User
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.User),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, nil
	}
	return copyUser(user), nil
}

func (r *userRepository) ListByChannel(ctx context.Context, channelID types.ChannelID) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.User
	for _, u := range r.users {
		if u.ChannelID == channelID {
			result = append(result, copyUser(u))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *userRepository) Delete(ctx context.Context, id types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *userRepository) DeleteByChannel(ctx context.Context, channelID types.ChannelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.ChannelID == channelID {
			delete(r.users, id)
		}
	}
	return nil
}

func (r *userRepository) SetProgress(ctx context.Context, id types.UserID, dailyStatus bool, questionID types.QuestionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return nil
	}

	user.DailyStatus = dailyStatus
	user.QuestionID = questionID
	return nil
}
