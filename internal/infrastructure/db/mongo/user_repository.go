package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

const collectionUsers = "users"

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	col *mongo.Collection
	// indexed gates inserts on the unique email index.
	indexed *readyOnce
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), indexed: &readyOnce{}}
}

// userDocument keeps the field names of the existing users collection.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Name      string             `bson:"name"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d *userDocument) toDomain() *domain.User {
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		// Unknown roles stay as stored; the authorization gate rejects them.
		role = domain.Role(d.Role)
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = d.ID.Timestamp()
	}
	return &domain.User{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		Credential: d.Password,
		Name:       d.Name,
		Role:       role,
		CreatedAt:  createdAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		Email:     user.Email,
		Password:  user.Credential,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.UTC(),
	}

	// Without the index a duplicate email would be inserted silently.
	if err := r.indexed.Do(ctx, r.EnsureIndexes); err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, unavailable("insert user", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, unavailable("find user", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, unavailable("count users", err)
	}
	return n, nil
}

func (r *UserRepository) ListByName(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, unavailable("list users", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

// EnsureIndexes creates the unique email index that backs duplicate detection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return unavailable("users index", err)
	}
	return nil
}
