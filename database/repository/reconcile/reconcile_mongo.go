package reconcileRepo

import (
	"context"
	"fmt"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewQueue keeps cases in the "reconciliations" collection.
type MongoReviewQueue struct {
	coll *mongo.Collection
}

func NewMongoReviewQueue(db *mongo.Database) (*MongoReviewQueue, error) {
	q := &MongoReviewQueue{coll: db.Collection("reconciliations")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := q.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "draftId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "resolved", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reconciliation indexes: %w", err)
	}
	return q, nil
}

func (q *MongoReviewQueue) Add(ctx context.Context, c *models.ReconciliationCase) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"record":    c.Record,
			"attempts":  c.Attempts,
			"lastError": c.LastError,
			"resolved":  false,
		},
		"$setOnInsert": bson.M{"draftId": c.DraftID, "createdAt": c.CreatedAt},
	}
	_, err := q.coll.UpdateOne(ctx, bson.M{"draftId": c.DraftID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to queue reconciliation for draft %s: %w", c.DraftID, err)
	}
	return nil
}

func (q *MongoReviewQueue) ListOpen(ctx context.Context) ([]models.ReconciliationCase, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := q.coll.Find(ctx, bson.M{"resolved": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	defer cursor.Close(ctx)

	cases := []models.ReconciliationCase{}
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, fmt.Errorf("failed to decode reconciliations: %w", err)
	}
	return cases, nil
}

func (q *MongoReviewQueue) Resolve(ctx context.Context, draftID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := q.coll.UpdateOne(ctx, bson.M{"draftId": draftID}, bson.M{"$set": bson.M{"resolved": true}})
	if err != nil {
		return fmt.Errorf("failed to resolve reconciliation %s: %w", draftID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
