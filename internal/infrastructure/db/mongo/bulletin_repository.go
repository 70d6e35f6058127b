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

const (
	collectionRules   = "rules"
	collectionNotices = "notices"
)

var (
	_ ports.RuleRepository   = (*RuleRepository)(nil)
	_ ports.NoticeRepository = (*NoticeRepository)(nil)
)

// newestFirst sorts on createdAt descending, capped at limit.
func newestFirst(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
}

type RuleRepository struct {
	col *mongo.Collection
}

func NewRuleRepository(db *mongo.Database) *RuleRepository {
	return &RuleRepository{col: db.Collection(collectionRules)}
}

type ruleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *ruleDocument) toDomain() *domain.Rule {
	return &domain.Rule{ID: d.ID.Hex(), Title: d.Title, Content: d.Content, CreatedAt: d.CreatedAt.UTC()}
}

func (r *RuleRepository) Create(ctx context.Context, rule *domain.Rule) (*domain.Rule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := ruleDocument{Title: rule.Title, Content: rule.Content, CreatedAt: rule.CreatedAt.UTC()}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, unavailable("insert rule", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.toDomain(), nil
}

func (r *RuleRepository) Recent(ctx context.Context, limit int) ([]*domain.Rule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, newestFirst(limit))
	if err != nil {
		return nil, unavailable("list rules", err)
	}
	var docs []ruleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode rules", err)
	}
	rules := make([]*domain.Rule, 0, len(docs))
	for i := range docs {
		rules = append(rules, docs[i].toDomain())
	}
	return rules, nil
}

type NoticeRepository struct {
	col *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{col: db.Collection(collectionNotices)}
}

type noticeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *noticeDocument) toDomain() *domain.Notice {
	return &domain.Notice{ID: d.ID.Hex(), Text: d.Text, CreatedAt: d.CreatedAt.UTC()}
}

func (r *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) (*domain.Notice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := noticeDocument{Text: notice.Text, CreatedAt: notice.CreatedAt.UTC()}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, unavailable("insert notice", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.toDomain(), nil
}

func (r *NoticeRepository) Recent(ctx context.Context, limit int) ([]*domain.Notice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, newestFirst(limit))
	if err != nil {
		return nil, unavailable("list notices", err)
	}
	var docs []noticeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode notices", err)
	}
	notices := make([]*domain.Notice, 0, len(docs))
	for i := range docs {
		notices = append(notices, docs[i].toDomain())
	}
	return notices, nil
}
