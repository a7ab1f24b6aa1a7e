package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

const adminsCollection = "admins"

type MongoAdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{coll: db.Collection(adminsCollection)}
}

type mongoAdmin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Superadmin   bool               `bson:"superadmin"`
	CreatedAt    int64              `bson:"created_at"`
}

func (ma mongoAdmin) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           ma.ID.Hex(),
		Username:     ma.Username,
		PasswordHash: ma.PasswordHash,
		Superadmin:   ma.Superadmin,
		CreatedAt:    unixToTime(ma.CreatedAt),
	}
}

func (r *MongoAdminRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create admin indexes: %w", err)
	}
	return nil
}

func (r *MongoAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var ma mongoAdmin
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	doc := mongoAdmin{
		Username:     admin.Username,
		PasswordHash: admin.PasswordHash,
		Superadmin:   admin.Superadmin,
		CreatedAt:    admin.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return r.FindByUsername(ctx, admin.Username)
}

func (r *MongoAdminRepository) Update(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	update := bson.M{"$set": bson.M{
		"password_hash": admin.PasswordHash,
		"superadmin":    admin.Superadmin,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"username": admin.Username}, update)
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAdminNotFound
	}
	return r.FindByUsername(ctx, admin.Username)
}
