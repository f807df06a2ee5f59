package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

const answersCollection = "answers"

type answerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.AnswerRepository = &answerRepository{}

func newAnswerRepository(client *firestore.Client) *answerRepository {
	return &answerRepository{
		client: client,
	}
}

// answerDoc is the Firestore persistence model. Answers get auto document
// IDs; duplicates for one question in one cycle are kept.
type answerDoc struct {
	UserID     string    `firestore:"user_id"`
	QuestionID int64     `firestore:"question_id"`
	Text       string    `firestore:"text"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func (r *answerRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + answersCollection)
	}
	return r.client.Collection(answersCollection)
}

func (r *answerRepository) Add(ctx context.Context, answer *model.Answer) error {
	if answer == nil {
		return goerr.New("answer is nil")
	}
	if err := answer.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid answer")
	}

	createdAt := answer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := &answerDoc{
		UserID:     string(answer.UserID),
		QuestionID: int64(answer.QuestionID),
		Text:       answer.Text,
		CreatedAt:  createdAt,
	}

	if _, _, err := r.collection().Add(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to add answer", goerr.V("user_id", answer.UserID))
	}
	return nil
}

func (r *answerRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Answer, error) {
	iter := r.collection().
		Where("user_id", "==", string(userID)).
		OrderBy("question_id", firestore.Asc).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var answers []*model.Answer
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate answers", goerr.V("user_id", userID))
		}

		var doc answerDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal answer", goerr.V("docID", snap.Ref.ID))
		}

		answers = append(answers, &model.Answer{
			UserID:     types.UserID(doc.UserID),
			QuestionID: types.QuestionID(doc.QuestionID),
			Text:       doc.Text,
			CreatedAt:  doc.CreatedAt,
		})
	}

	return answers, nil
}

func (r *answerRepository) DeleteByUser(ctx context.Context, userID types.UserID) error {
	iter := r.collection().Where("user_id", "==", string(userID)).Documents(ctx)
	defer iter.Stop()

	writer := r.client.BulkWriter(ctx)

	count := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate answers for delete", goerr.V("user_id", userID))
		}

		if _, err := writer.Delete(snap.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue answer delete", goerr.V("docID", snap.Ref.ID))
		}

		count++
		if count%batchLimit == 0 {
			writer.Flush()
		}
	}

	writer.End()
	return nil
}
