package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Phone         string             `bson:"phone"`
	Nickname      string             `bson:"nickname,omitempty"`
	PasswordHash  string             `bson:"password_hash,omitempty"`
	Name          string             `bson:"name,omitempty"`
	Age           int                `bson:"age,omitempty"`
	WeightKg      float64            `bson:"weight_kg,omitempty"`
	HeightCm      float64            `bson:"height_cm,omitempty"`
	Gender        string             `bson:"gender,omitempty"`
	ActivityLevel string             `bson:"activity_level,omitempty"`
	Allergies     string             `bson:"allergies,omitempty"`
	Blocked       bool               `bson:"blocked"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Phone:         u.Phone,
		Nickname:      u.Nickname,
		PasswordHash:  u.PasswordHash,
		Name:          u.Name,
		Age:           u.Age,
		WeightKg:      u.WeightKg,
		HeightCm:      u.HeightCm,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
		Allergies:     u.Allergies,
		Blocked:       u.Blocked,
		CreatedAt:     u.CreatedAt.Unix(),
		UpdatedAt:     u.UpdatedAt.Unix(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:            mu.ID.Hex(),
		Phone:         mu.Phone,
		Nickname:      mu.Nickname,
		PasswordHash:  mu.PasswordHash,
		Name:          mu.Name,
		Age:           mu.Age,
		WeightKg:      mu.WeightKg,
		HeightCm:      mu.HeightCm,
		Gender:        mu.Gender,
		ActivityLevel: mu.ActivityLevel,
		Allergies:     mu.Allergies,
		Blocked:       mu.Blocked,
		CreatedAt:     unixToTime(mu.CreatedAt),
		UpdatedAt:     unixToTime(mu.UpdatedAt),
	}
}

// EnsureIndexes creates the unique indexes backing the one-identity-per-key
// invariant. Nickname uniqueness is sparse so shell accounts without a
// nickname do not collide.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "nickname", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *MongoUserRepository) FindByNickname(ctx context.Context, nickname string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"nickname": nickname})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// Upsert atomically creates or replaces the document keyed by phone.
func (r *MongoUserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toMongoUser(user)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"phone": user.Phone}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrNicknameTaken
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return r.FindByPhone(ctx, user.Phone)
}

func (r *MongoUserRepository) List(ctx context.Context, skip, limit int64) ([]*domain.User, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *MongoUserRepository) CountRegistered(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"password_hash": bson.M{"$exists": true, "$ne": ""}})
	if err != nil {
		return 0, fmt.Errorf("count registered users: %w", err)
	}
	return n, nil
}

func (r *MongoUserRepository) SetBlocked(ctx context.Context, id string, blocked bool) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{"blocked": blocked, "updated_at": time.Now().UTC().Unix()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("block user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
