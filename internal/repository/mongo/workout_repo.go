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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// CreateMany bulk inserts the workouts of a freshly materialized plan.
func (r *mongoWorkoutRepository) CreateMany(ctx context.Context, workouts []*domain.Workout) error {
	if len(workouts) == 0 {
		return errors.New("no workouts to insert")
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(workouts))
	for _, w := range workouts {
		if w.PlanID == primitive.NilObjectID || w.Title == "" {
			return errors.New("workout requires planId and title")
		}
		if w.ID == primitive.NilObjectID {
			w.ID = primitive.NewObjectID()
		}
		w.CreatedAt = now
		w.UpdatedAt = now
		docs = append(docs, w)
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByIDs retrieves the workouts matching the given IDs. Missing IDs are
// simply absent from the result; callers check the returned length.
func (r *mongoWorkoutRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error) {
	var workouts []domain.Workout
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetByPlanID retrieves all workouts of a plan in calendar order.
// Sorted by scheduledDate first: reschedules move the date without
// touching dayOffset, so the offset alone is not a reliable order key.
func (r *mongoWorkoutRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	var workouts []domain.Workout
	filter := bson.M{"planId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "dayOffset", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetByPlanAndDateRange retrieves workouts with from <= scheduledDate < to.
func (r *mongoWorkoutRepository) GetByPlanAndDateRange(ctx context.Context, planID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	var workouts []domain.Workout
	filter := bson.M{
		"planId":        planID,
		"scheduledDate": bson.M{"$gte": from, "$lt": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "dayOffset", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// UpdateFields applies a partial update; nil fields stay untouched.
func (r *mongoWorkoutRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.WorkoutUpdate) error {
	if id == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.ActivityType != nil {
		set["activityType"] = *update.ActivityType
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Structure != nil {
		set["structure"] = *update.Structure
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateSchedule sets scheduledDate and dayOffset together (swap semantics).
func (r *mongoWorkoutRepository) UpdateSchedule(ctx context.Context, id primitive.ObjectID, scheduledDate time.Time, dayOffset int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"scheduledDate": scheduledDate,
			"dayOffset":     dayOffset,
			"updatedAt":     time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateScheduledDate moves a workout to a new date, leaving dayOffset as is.
func (r *mongoWorkoutRepository) UpdateScheduledDate(ctx context.Context, id primitive.ObjectID, scheduledDate time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"scheduledDate": scheduledDate,
			"updatedAt":     time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetCompleted flips the completion flag.
func (r *mongoWorkoutRepository) SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"isCompleted": completed,
			"updatedAt":   time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByPlanID removes all workouts of a plan.
func (r *mongoWorkoutRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "dayOffset", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
