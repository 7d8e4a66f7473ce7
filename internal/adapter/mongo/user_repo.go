package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const userCollectionName = "users"

type UserMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(client *mongo.Client, dbName string, logger *zap.Logger) *UserMongoRepository {
	db := client.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure indexes (idempotent operation)
	_, err := db.Collection(userCollectionName).Indexes().CreateMany(ctx, userIndexModels())
	if err != nil {
		logger.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	} else {
		logger.Info("Successfully ensured indexes for users collection")
	}

	return &UserMongoRepository{
		db: db,
	}
}

// userIndexModels declares the unique indexes on username and email that
// Create's duplicate-key mapping relies on.
func userIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt primitive.DateTime `bson:"created_at"`
	UpdatedAt primitive.DateTime `bson:"updated_at"`
}

func toUserEntity(doc *userDocument) *entity.User {
	return &entity.User{
		ID:        doc.ID.Hex(),
		Username:  doc.Username,
		Email:     doc.Email,
		Password:  doc.Password,
		CreatedAt: doc.CreatedAt.Time(),
		UpdatedAt: doc.UpdatedAt.Time(),
	}
}

func (r *UserMongoRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	doc := &userDocument{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: primitive.NewDateTimeFromTime(user.CreatedAt),
		UpdatedAt: primitive.NewDateTimeFromTime(user.UpdatedAt),
	}

	res, err := r.db.Collection(userCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("failed to create user in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *UserMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.db.Collection(userCollectionName).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"username": username},
			bson.M{"email": email},
		},
	}
	count, err := r.db.Collection(userCollectionName).CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence in mongo: %w", err)
	}
	return count > 0, nil
}
