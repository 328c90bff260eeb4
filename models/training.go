package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training statuses
const (
	TrainingStatusPending   = "pending"
	TrainingStatusCompleted = "completed"
)

// Training holds the structure for the trainings collection in mongo
type Training struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id"`
	Name                 string             `json:"name" bson:"name"`
	Duration             int                `json:"duration" bson:"duration"`
	NumberOfParticipants int                `json:"numberOfParticipants" bson:"numberOfParticipants"`
	ScheduleDate         time.Time          `json:"scheduleDate" bson:"scheduleDate"`
	Venue                string             `json:"venue" bson:"venue"`
	Status               string             `json:"status" bson:"status"`
	TrainingHours        int                `json:"trainingHours" bson:"trainingHours"`
	// NotificationRecipients is either an array of addresses or, for rows
	// imported from the old SQL store, a string holding a JSON array.
	NotificationRecipients bson.RawValue      `json:"-" bson:"notificationRecipients"`
	UserID                 primitive.ObjectID `json:"userId" bson:"userId,omitempty"`
	CreatedAt              time.Time          `json:"createdAt" bson:"createdAt"`
}
