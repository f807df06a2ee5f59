package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	questionsCollection = "questions"
	countersCollection  = "counters"
	questionCounterDoc  = "question_id"
)

type questionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.QuestionRepository = &questionRepository{}

func newQuestionRepository(client *firestore.Client) *questionRepository {
	return &questionRepository{
		client: client,
	}
}

// questionDoc is the Firestore persistence model
type questionDoc struct {
	ID        int64  `firestore:"id"`
	ChannelID string `firestore:"channel_id"`
	Body      string `firestore:"body"`
}

// counterDoc backs the monotonic question ID allocation
type counterDoc struct {
	Value int64 `firestore:"value"`
}

func (r *questionRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + questionsCollection)
	}
	return r.client.Collection(questionsCollection)
}

func (r *questionRepository) counterRef() *firestore.DocumentRef {
	name := countersCollection
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_" + countersCollection
	}
	return r.client.Collection(name).Doc(questionCounterDoc)
}

func (r *questionRepository) fromDoc(doc *questionDoc) *model.Question {
	return &model.Question{
		ID:        types.QuestionID(doc.ID),
		ChannelID: types.ChannelID(doc.ChannelID),
		Body:      doc.Body,
	}
}

// Add allocates the next monotonic ID inside a transaction and stores the
// question under it. IDs are never reused, even after deletes.
func (r *questionRepository) Add(ctx context.Context, question *model.Question) (*model.Question, error) {
	if question == nil {
		return nil, goerr.New("question is nil")
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	var allocated int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter counterDoc
		snap, err := tx.Get(r.counterRef())
		switch {
		case err == nil:
			if err := snap.DataTo(&counter); err != nil {
				return goerr.Wrap(err, "failed to unmarshal question counter")
			}
		case status.Code(err) == codes.NotFound:
			counter.Value = 0
		default:
			return goerr.Wrap(err, "failed to read question counter")
		}

		counter.Value++
		allocated = counter.Value

		if err := tx.Set(r.counterRef(), &counter); err != nil {
			return goerr.Wrap(err, "failed to advance question counter")
		}

		doc := &questionDoc{
			ID:        allocated,
			ChannelID: string(question.ChannelID),
			Body:      question.Body,
		}
		return tx.Set(r.collection().Doc(types.QuestionID(allocated).String()), doc)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add question", goerr.V("channel_id", question.ChannelID))
	}

	created := *question
	created.ID = types.QuestionID(allocated)
	return &created, nil
}

func (r *questionRepository) ListByChannel(ctx context.Context, channelID types.ChannelID) ([]*model.Question, error) {
	iter := r.collection().
		Where("channel_id", "==", string(channelID)).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var questions []*model.Question
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions", goerr.V("channel_id", channelID))
		}

		var doc questionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V("docID", snap.Ref.ID))
		}

		questions = append(questions, r.fromDoc(&doc))
	}

	return questions, nil
}

func (r *questionRepository) Delete(ctx context.Context, id types.QuestionID) error {
	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete question", goerr.V("question_id", id))
	}
	return nil
}

func (r *questionRepository) DeleteByChannel(ctx context.Context, channelID types.ChannelID) error {
	iter := r.collection().Where("channel_id", "==", string(channelID)).Documents(ctx)
	defer iter.Stop()

	writer := r.client.BulkWriter(ctx)

	count := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate questions for delete", goerr.V("channel_id", channelID))
		}

		if _, err := writer.Delete(snap.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue question delete", goerr.V("docID", snap.Ref.ID))
		}

		count++
		if count%batchLimit == 0 {
			writer.Flush()
		}
	}

	writer.End()
	return nil
}
