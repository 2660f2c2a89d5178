package repository

import (
	"context"
	"errors"
	"time"

	"edutech_backend/internal/model"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	Col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{Col: db.Collection("users")}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	user.EnsureID()
	if user.Interests == nil {
		user.Interests = []string{}
	}
	if user.Skills == nil {
		user.Skills = []scoring.Proficiency{}
	}
	_, err := r.Col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return util.ErrUsernameTaken
	}
	return err
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.Col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByUsernameAndRole(ctx context.Context, username string, role model.UserRole) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username, "role": role})
}

func (r *MongoUserRepository) ExistsByRole(ctx context.Context, role model.UserRole) (bool, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{"role": role}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return util.ErrEmailInUse
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdateSkills(ctx context.Context, username string, skills []scoring.Proficiency) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"skills": skills, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []model.User{}
	for cur.Next(ctx) {
		var u model.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, cur.Err()
}
