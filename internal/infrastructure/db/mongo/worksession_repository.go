package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

const collectionWorkSessions = "work_sessions"

// WorkSessionRepository stores work sessions. The single open session per
// user is guaranteed by a partial unique index on user_id over open documents.
type WorkSessionRepository struct {
	coll *mongo.Collection
}

func NewWorkSessionRepository(db *mongo.Database) *WorkSessionRepository {
	return &WorkSessionRepository{coll: db.Collection(collectionWorkSessions)}
}

func (r *WorkSessionRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.coll.Indexes().CreateMany(ctx, workSessionIndexes()); err != nil {
		return fmt.Errorf("work_sessions indexes: %w", err)
	}
	return nil
}

// workSessionIndexes lists the collection indexes. The first one enforces a
// single open session per user.
func workSessionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_open_session_per_user").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "open", Value: true}}),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("user_start_time"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "calendar_date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().SetName("user_calendar_date"),
		},
	}
}

func (r *WorkSessionRepository) FindOpen(ctx context.Context, userID string) (*domain.WorkSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: -1}})

	var s domain.WorkSession
	err := r.coll.FindOne(ctx, openFilter(userID), opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("find open session: %w", err)
	}
	return &s, nil
}

func (r *WorkSessionRepository) Create(ctx context.Context, s *domain.WorkSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyClockedIn
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// CloseOpen closes the latest open session in a single round trip. The end
// time is computed server side as max(start_time, end) so a clock that moved
// backwards never yields a negative duration.
func (r *WorkSessionRepository) CloseOpen(ctx context.Context, userID string, end time.Time) (*domain.WorkSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetReturnDocument(options.After)

	var s domain.WorkSession
	err := r.coll.FindOneAndUpdate(ctx, openFilter(userID), closeUpdate(end), opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("close session: %w", err)
	}
	return &s, nil
}

func (r *WorkSessionRepository) ListByStartTime(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkSession, error) {
	filter := bson.M{
		"user_id":    userID,
		"start_time": bson.M{"$gte": from, "$lte": to},
	}
	return r.list(ctx, filter, bson.D{{Key: "start_time", Value: 1}})
}

func (r *WorkSessionRepository) ListByCalendarDate(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkSession, error) {
	filter := bson.M{
		"user_id":       userID,
		"calendar_date": bson.M{"$gte": from, "$lt": to},
	}
	sort := bson.D{{Key: "calendar_date", Value: 1}, {Key: "start_time", Value: 1}}
	return r.list(ctx, filter, sort)
}

func (r *WorkSessionRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]domain.WorkSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	sessions := make([]domain.WorkSession, 0)
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func openFilter(userID string) bson.M {
	return bson.M{"user_id": userID, "open": true}
}

// closeUpdate is an update pipeline so end_time can reference start_time.
func closeUpdate(end time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "end_time", Value: bson.D{{Key: "$max", Value: bson.A{"$start_time", end}}}},
			{Key: "open", Value: false},
		}}},
	}
}
