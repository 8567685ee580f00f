package panditRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPanditRepo implements PanditRepository using MongoDB.
type MongoPanditRepo struct {
	coll *mongo.Collection
}

// NewMongoPanditRepo creates a PanditRepository backed by the "pandits" collection.
func NewMongoPanditRepo(db *mongo.Database) (*MongoPanditRepo, error) {
	r := &MongoPanditRepo{coll: db.Collection("pandits")}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoPanditRepo) GetByID(ctx context.Context, id string) (*models.PanditProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var p models.PanditProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch pandit with id %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoPanditRepo) List(ctx context.Context, filter models.PanditFilter) ([]models.PanditProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "featured", Value: -1},
		{Key: "rating", Value: -1},
		{Key: "id", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pandits: %w", err)
	}
	defer cursor.Close(ctx)

	pandits := []models.PanditProfile{}
	for cursor.Next(ctx) {
		var p models.PanditProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode pandit: %w", err)
		}
		pandits = append(pandits, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("pandit cursor: %w", err)
	}
	return pandits, nil
}

func (r *MongoPanditRepo) Upsert(ctx context.Context, p *models.PanditProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p, opts); err != nil {
		return fmt.Errorf("failed to upsert pandit %s: %w", p.ID, err)
	}
	return nil
}

func containsI(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func equalsI(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}

// buildFilter mirrors models.PanditFilter.Matches as a Mongo query.
func buildFilter(f models.PanditFilter) bson.M {
	var and bson.A
	if city := strings.TrimSpace(f.City); city != "" {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"city": containsI(city)},
			bson.M{"state": containsI(city)},
		}})
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"fullName": containsI(q)},
			bson.M{"bio": containsI(q)},
		}})
	}
	if lang := strings.TrimSpace(f.Language); lang != "" {
		and = append(and, bson.M{"languages": equalsI(lang)})
	}
	if spec := strings.TrimSpace(f.Specialization); spec != "" {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"specializations": containsI(spec)},
			bson.M{"ritualsOffered": equalsI(spec)},
		}})
	}
	if f.FeaturedOnly {
		and = append(and, bson.M{"featured": true})
	}
	if len(and) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": and}
}
