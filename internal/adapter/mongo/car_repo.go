package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const carCollectionName = "cars"

type CarMongoRepository struct {
	db *mongo.Database
}

func NewCarMongoRepository(client *mongo.Client, dbName string) *CarMongoRepository {
	return &CarMongoRepository{
		db: client.Database(dbName),
	}
}

type carDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Company     string             `bson:"company"`
	Engine      entity.Engine      `bson:"engine"`
	Segment     entity.Segment     `bson:"segment"`
	Dealer      string             `bson:"dealer"`
	Images      []string           `bson:"images"`
	UserID      string             `bson:"user_id"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at"`
}

func toCarDocument(c *entity.Car) (*carDocument, error) {
	doc := &carDocument{
		Title:       c.Title,
		Description: c.Description,
		Company:     c.Company,
		Engine:      c.Engine,
		Segment:     c.Segment,
		Dealer:      c.Dealer,
		Images:      c.Images,
		UserID:      c.UserID,
		CreatedAt:   primitive.NewDateTimeFromTime(c.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(c.UpdatedAt),
	}
	if c.ID != "" {
		objID, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid car ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toCarEntity(doc *carDocument) *entity.Car {
	images := doc.Images
	if images == nil {
		images = []string{}
	}
	return &entity.Car{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Company:     doc.Company,
		Engine:      doc.Engine,
		Segment:     doc.Segment,
		Dealer:      doc.Dealer,
		Images:      images,
		UserID:      doc.UserID,
		CreatedAt:   doc.CreatedAt.Time(),
		UpdatedAt:   doc.UpdatedAt.Time(),
	}
}

// searchFilter matches query as a case-insensitive substring against the
// three searchable text fields. An empty query produces an empty filter.
func searchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"company": pattern},
			bson.M{"description": pattern},
		},
	}
}

func (r *CarMongoRepository) Create(ctx context.Context, car *entity.Car) (string, error) {
	doc, err := toCarDocument(car)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(carCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create car in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *CarMongoRepository) Update(ctx context.Context, car *entity.Car) error {
	doc, err := toCarDocument(car)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("car ID is required for update")
	}

	updateFields := bson.M{
		"$set": bson.M{
			"title":       doc.Title,
			"description": doc.Description,
			"company":     doc.Company,
			"engine":      doc.Engine,
			"segment":     doc.Segment,
			"dealer":      doc.Dealer,
			"images":      doc.Images,
			"updated_at":  doc.UpdatedAt,
		},
	}

	res, err := r.db.Collection(carCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, updateFields)
	if err != nil {
		return fmt.Errorf("failed to update car in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CarMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(carCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete car from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CarMongoRepository) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc carDocument
	err = r.db.Collection(carCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get car by id from mongo: %w", err)
	}

	car := toCarEntity(&doc)
	if err := r.attachUsernames(ctx, []*entity.Car{car}); err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarMongoRepository) Search(ctx context.Context, query string, page, limit int) ([]*entity.Car, error) {
	skip := int64((page - 1) * limit)

	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(int64(limit))
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(carCollectionName).Find(ctx, searchFilter(query), findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to search cars in mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var carDocs []carDocument
	if err = cursor.All(ctx, &carDocs); err != nil {
		return nil, fmt.Errorf("failed to decode car list from mongo: %w", err)
	}

	cars := make([]*entity.Car, len(carDocs))
	for i := range carDocs {
		cars[i] = toCarEntity(&carDocs[i])
	}

	if err := r.attachUsernames(ctx, cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarMongoRepository) Count(ctx context.Context, query string) (int64, error) {
	total, err := r.db.Collection(carCollectionName).CountDocuments(ctx, searchFilter(query))
	if err != nil {
		return 0, fmt.Errorf("failed to count cars in mongo: %w", err)
	}
	return total, nil
}

// attachUsernames resolves the owner username for each car with a single
// query against the users collection. Cars whose owner is gone keep an
// empty username rather than failing the read.
func (r *CarMongoRepository) attachUsernames(ctx context.Context, cars []*entity.Car) error {
	if len(cars) == 0 {
		return nil
	}

	idSet := make(map[string]struct{}, len(cars))
	ownerIDs := make(bson.A, 0, len(cars))
	for _, car := range cars {
		if _, seen := idSet[car.UserID]; seen {
			continue
		}
		idSet[car.UserID] = struct{}{}
		objID, err := primitive.ObjectIDFromHex(car.UserID)
		if err != nil {
			continue
		}
		ownerIDs = append(ownerIDs, objID)
	}
	if len(ownerIDs) == 0 {
		return nil
	}

	cursor, err := r.db.Collection(userCollectionName).Find(ctx,
		bson.M{"_id": bson.M{"$in": ownerIDs}},
		options.Find().SetProjection(bson.M{"username": 1}))
	if err != nil {
		return fmt.Errorf("failed to fetch owner usernames from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var owners []struct {
		ID       primitive.ObjectID `bson:"_id"`
		Username string             `bson:"username"`
	}
	if err := cursor.All(ctx, &owners); err != nil {
		return fmt.Errorf("failed to decode owner usernames from mongo: %w", err)
	}

	usernames := make(map[string]string, len(owners))
	for _, owner := range owners {
		usernames[owner.ID.Hex()] = owner.Username
	}
	for _, car := range cars {
		car.OwnerUsername = usernames[car.UserID]
	}
	return nil
}
