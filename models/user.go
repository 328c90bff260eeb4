package models

import "time"

// User holds the structure for the user collection in mongo
type User struct {
	ID      string      `json:"_id" bson:"_id,omitempty"`
	Details UserDetails `json:"user" bson:"user"`
}

// UserDetails holds the structure for the inner user structure as defined in the user collection in mongo
type UserDetails struct {
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	EmployeeNumber int       `json:"employeeNumber" bson:"employeeNumber"`
	Password       string    `json:"-" bson:"password"`
	Verified       bool      `json:"verified" bson:"verified"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
