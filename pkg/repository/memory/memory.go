package memory

import (
	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
)

// Memory is an in-memory Repository implementation for development and tests
type Memory struct {
	channel  *channelRepository
	user     *userRepository
	question *questionRepository
	answer   *answerRepository
	thread   *threadRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		channel:  newChannelRepository(),
		user:     newUserRepository(),
		question: newQuestionRepository(),
		answer:   newAnswerRepository(),
		thread:   newThreadRepository(),
	}
}

func (m *Memory) Channel() interfaces.ChannelRepository {
	return m.channel
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Question() interfaces.QuestionRepository {
	return m.question
}

func (m *Memory) Answer() interfaces.AnswerRepository {
	return m.answer
}

func (m *Memory) Thread() interfaces.ThreadRepository {
	return m.thread
}

func (m *Memory) Close() error {
	return nil
}
