package databases

// go generate: mockery --name TrainingDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/training-calendar-api/models"
)

const trainingName = "trainings"

// TrainingDatabase contains the methods to use with the training database
type TrainingDatabase interface {
	QueryPendingTrainingsDueWithin(ctx context.Context, days int, reference time.Time) ([]models.Training, error)
}

type trainingDatabase struct {
	db DatabaseHelper
}

// NewTrainingDatabase initializes a new instance of training database with the provided db connection
func NewTrainingDatabase(db DatabaseHelper) TrainingDatabase {
	return &trainingDatabase{
		db: db,
	}
}

// QueryPendingTrainingsDueWithin returns the pending trainings scheduled on
// any calendar day from reference's day through reference's day + days,
// inclusive, using reference's location to decide where days begin.
func (t *trainingDatabase) QueryPendingTrainingsDueWithin(ctx context.Context, days int, reference time.Time) ([]models.Training, error) {
	from, to := DueWindow(days, reference)
	filter := bson.M{
		"status": models.TrainingStatusPending,
		"scheduleDate": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduleDate", Value: 1}})

	cursor, err := t.db.Collection(trainingName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	trainings := []models.Training{}
	if err := cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

// DueWindow returns the half-open instant range [from, to) covering the
// calendar days reference..reference+days.
func DueWindow(days int, reference time.Time) (from, to time.Time) {
	y, m, d := reference.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, reference.Location())
	to = from.AddDate(0, 0, days+1)
	return from, to
}
