package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository on the "bookings" collection.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) (*MongoBookingRepo, error) {
	r := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoBookingRepo) CreateIdempotent(ctx context.Context, rec *models.BookingRecord) (*models.BookingRecord, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, rec)
	if err == nil {
		return rec, true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("failed to insert booking for draft %s: %w", rec.DraftID, err)
	}

	existing, findErr := r.findOne(ctx, bson.M{"draftId": rec.DraftID})
	if findErr != nil {
		return nil, false, fmt.Errorf("duplicate booking for draft %s but lookup failed: %w", rec.DraftID, findErr)
	}
	return existing, false, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBookingRepo) GetByDraftID(ctx context.Context, draftID string) (*models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.findOne(ctx, bson.M{"draftId": draftID})
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	if err := r.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &rec, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.BookingRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *MongoBookingRepo) ListByPandit(ctx context.Context, panditID string, status models.BookingStatus) ([]models.BookingRecord, error) {
	filter := bson.M{"panditId": panditID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "scheduledTime", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.BookingRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return records, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec models.BookingRecord
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	// Distinguish a missing booking from one in the wrong state.
	if _, getErr := r.findOne(ctx, bson.M{"id": id}); getErr != nil {
		return nil, getErr
	}
	return nil, repository.ErrConflict
}
