package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/training-calendar-api/databases"
	"github.com/linesmerrill/training-calendar-api/databases/mocks"
	"github.com/linesmerrill/training-calendar-api/models"
)

func TestDueWindow(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2026, time.March, 30, 23, 15, 0, 0, ist)

	from, to := databases.DueWindow(2, ref)

	assert.Equal(t, time.Date(2026, time.March, 30, 0, 0, 0, 0, ist), from)
	assert.Equal(t, time.Date(2026, time.April, 2, 0, 0, 0, 0, ist), to)
}

func TestDueWindowIsCalendarBased(t *testing.T) {
	// late in the evening the window still reaches the end of day+2,
	// well past 48 hours from the reference instant
	ref := time.Date(2026, time.January, 10, 20, 0, 0, 0, time.UTC)
	_, to := databases.DueWindow(2, ref)

	assert.True(t, to.Sub(ref) > 48*time.Hour)
	assert.Equal(t, time.Date(2026, time.January, 13, 0, 0, 0, 0, time.UTC), to)
}

func TestTrainingDatabase_QueryPendingTrainingsDueWithin(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	ref := time.Date(2026, time.May, 4, 8, 0, 0, 0, time.UTC)
	expectedFilter := bson.M{
		"status": "pending",
		"scheduleDate": bson.M{
			"$gte": time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC),
			"$lt":  time.Date(2026, time.May, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	cursorHelper.On("All", context.Background(), mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			arg := args.Get(1).(*[]models.Training)
			*arg = []models.Training{{Name: "Fire safety"}}
		})
	collectionHelper.On("Find", context.Background(), expectedFilter, mock.Anything).Return(cursorHelper, nil)
	dbHelper.On("Collection", "trainings").Return(collectionHelper)

	trainings, err := databases.NewTrainingDatabase(dbHelper).
		QueryPendingTrainingsDueWithin(context.Background(), 2, ref)

	require.NoError(t, err)
	assert.Equal(t, []models.Training{{Name: "Fire safety"}}, trainings)
}

func TestTrainingDatabase_QueryPendingTrainingsDueWithinFindError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "trainings").Return(collectionHelper)

	trainings, err := databases.NewTrainingDatabase(dbHelper).
		QueryPendingTrainingsDueWithin(context.Background(), 2, time.Now())

	assert.Nil(t, trainings)
	assert.EqualError(t, err, "mocked-error")
}

func TestTrainingDatabase_QueryPendingTrainingsDueWithinDecodeError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("All", mock.Anything, mock.Anything).Return(errors.New("mocked-decode-error"))
	collectionHelper.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper, nil)
	dbHelper.On("Collection", "trainings").Return(collectionHelper)

	_, err := databases.NewTrainingDatabase(dbHelper).
		QueryPendingTrainingsDueWithin(context.Background(), 2, time.Now())

	assert.EqualError(t, err, "mocked-decode-error")
}
