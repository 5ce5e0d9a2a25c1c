package session

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/trials-agent/memory"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore keeps one document per session in the "sessions" collection.
type MongoStore struct {
	collection odm.OdmCollectionInterface[SessionModel]
}

func NewMongoStore(collection odm.OdmCollectionInterface[SessionModel]) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) Load(ctx context.Context, id string) (*memory.ConversationState, error) {
	model, err := async.Await(s.collection.FindOneByID(ctx, id))
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && model == nil) {
		return nil, memory.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toState(), nil
}

func (s *MongoStore) Save(ctx context.Context, state *memory.ConversationState) error {
	if state.ID == "" {
		return errors.New("session id is required")
	}
	_, err := async.Await(s.collection.Save(ctx, toSessionModel(state)))
	return err
}
