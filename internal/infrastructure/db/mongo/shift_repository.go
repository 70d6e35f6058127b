package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

const collectionShifts = "shifts"

var _ ports.ShiftRepository = (*ShiftRepository)(nil)

type ShiftRepository struct {
	col *mongo.Collection
}

func NewShiftRepository(db *mongo.Database) *ShiftRepository {
	return &ShiftRepository{col: db.Collection(collectionShifts)}
}

// shiftDocument stores the structured timestamp in "at". Older documents
// only carry a preformatted "time" string; for those the ObjectID creation
// time stands in.
type shiftDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Email string             `bson:"email"`
	Type  string             `bson:"type"`
	At    time.Time          `bson:"at,omitempty"`
	Time  string             `bson:"time,omitempty"`
}

func (d *shiftDocument) toDomain() *domain.Shift {
	at := d.At
	if at.IsZero() {
		at = d.ID.Timestamp()
	}
	return &domain.Shift{
		ID:    d.ID.Hex(),
		Email: d.Email,
		Type:  domain.ShiftType(d.Type),
		At:    at.UTC(),
	}
}

// Create appends a shift. Existing documents are never touched.
func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := shiftDocument{
		Email: shift.Email,
		Type:  string(shift.Type),
		At:    shift.At.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, unavailable("insert shift", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.toDomain(), nil
}

// Recent returns the newest shifts by insertion order.
func (r *ShiftRepository) Recent(ctx context.Context, limit int) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, unavailable("list shifts", err)
	}
	var docs []shiftDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode shifts", err)
	}

	shifts := make([]*domain.Shift, 0, len(docs))
	for i := range docs {
		shifts = append(shifts, docs[i].toDomain())
	}
	return shifts, nil
}

func (r *ShiftRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return unavailable("shifts index", err)
	}
	return nil
}
