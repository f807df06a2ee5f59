package interfaces

// Repository defines the interface for data persistence. All operations are
// atomic at the single-entity level; there are no cross-entity transactions,
// so callers sequence operations to get their ordering guarantees.
type Repository interface {
	Channel() ChannelRepository
	User() UserRepository
	Question() QuestionRepository
	Answer() AnswerRepository
	Thread() ThreadRepository

	Close() error
}
