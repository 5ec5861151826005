package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/util"
)

const contactCollection = "contact_messages"

var contactSortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"name":      "name",
	"email":     "email",
	"status":    "status",
}

type contactDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone,omitempty"`
	Message   string    `bson:"message"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d contactDoc) model() models.ContactMessage {
	id, _ := uuid.Parse(d.ID)
	return models.ContactMessage{
		Base:    models.Base{ID: id, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Message: d.Message,
		Status:  d.Status,
	}
}

// MongoContactStore keeps contact messages in a MongoDB collection instead of the SQL database.
type MongoContactStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoContactStore(ctx context.Context, uri, database string) (*MongoContactStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(database).Collection(contactCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo index: %w", err)
	}

	return &MongoContactStore{client: client, coll: coll}, nil
}

func (s *MongoContactStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoContactStore) CreateContact(ctx context.Context, m *models.ContactMessage) error {
	now := time.Now().UTC()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt, m.UpdatedAt = now, now

	_, err := s.coll.InsertOne(ctx, contactDoc{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

func (s *MongoContactStore) ListContacts(ctx context.Context, p util.ListParams, status string) (int64, []models.ContactMessage, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, err
	}

	field, ok := contactSortFields[p.SortBy]
	if !ok {
		field = "createdAt"
	}
	dir := 1
	if p.Desc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, nil, err
	}
	var docs []contactDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return 0, nil, err
	}

	items := make([]models.ContactMessage, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.model())
	}
	return total, items, nil
}

func (s *MongoContactStore) UpdateContactStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error) {
	var doc contactDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m := doc.model()
	return &m, nil
}

func (s *MongoContactStore) DeleteContact(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
