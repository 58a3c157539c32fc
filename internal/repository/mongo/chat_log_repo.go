package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"pulseai/coach-app/internal/domain"
	"pulseai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatLogCollectionName = "ai_chat_logs"

// mongoChatMessageRepository implements repository.ChatMessageRepository
type mongoChatMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoChatMessageRepository creates a new chat log repository.
func NewMongoChatMessageRepository(db *mongo.Database) repository.ChatMessageRepository {
	return &mongoChatMessageRepository{
		collection: db.Collection(chatLogCollectionName),
	}
}

// Append writes one message to the log. Messages are never updated.
func (r *mongoChatMessageRepository) Append(ctx context.Context, msg *domain.ChatMessage) (primitive.ObjectID, error) {
	if msg.UserID == primitive.NilObjectID || msg.Role == "" {
		return primitive.NilObjectID, errors.New("chat message requires userId and role")
	}
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted message ID")
	}
	return insertedID, nil
}

// GetRecentByUserID returns up to limit messages, newest first.
func (r *mongoChatMessageRepository) GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	filter := bson.M{"userId": userID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// EnsureChatLogIndexes creates necessary indexes. Call during startup.
func EnsureChatLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
