package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/training-calendar-api/models"
)

const (
	userName = "users"

	userEmailIndex          = "user_email_unique"
	userEmployeeNumberIndex = "user_employee_number_unique"
)

// DuplicateKeyError is returned when an insert collides with one of the
// unique user indexes
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s: %v", e.Field, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// DuplicateField reports which unique field collided
func (e *DuplicateKeyError) DuplicateField() string { return e.Field }

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	AccountExistsByEmail(ctx context.Context, email string) (bool, error)
	AccountExistsByEmployeeNumber(ctx context.Context, employeeNumber int) (bool, error)
	InsertVerifiedAccount(ctx context.Context, name, email string, employeeNumber int, passwordHash string) (string, error)
	EnsureIndexes(ctx context.Context) error
}

type userDatabase struct {
	db  DatabaseHelper
	now func() time.Time
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db:  db,
		now: time.Now,
	}
}

func (u *userDatabase) AccountExistsByEmail(ctx context.Context, email string) (bool, error) {
	return u.exists(ctx, bson.M{"user.email": email})
}

func (u *userDatabase) AccountExistsByEmployeeNumber(ctx context.Context, employeeNumber int) (bool, error) {
	return u.exists(ctx, bson.M{"user.employeeNumber": employeeNumber})
}

func (u *userDatabase) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := u.db.Collection(userName).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *userDatabase) InsertVerifiedAccount(ctx context.Context, name, email string, employeeNumber int, passwordHash string) (string, error) {
	doc := models.User{
		Details: models.UserDetails{
			Name:           name,
			Email:          email,
			EmployeeNumber: employeeNumber,
			Password:       passwordHash,
			Verified:       true,
			CreatedAt:      u.now().UTC(),
		},
	}
	res, err := u.db.Collection(userName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", &DuplicateKeyError{Field: duplicateField(err), Err: err}
		}
		return "", err
	}

	switch id := res.Decode().(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

// EnsureIndexes creates the unique indexes the duplicate-account checks rely on
func (u *userDatabase) EnsureIndexes(ctx context.Context) error {
	return u.db.Collection(userName).CreateIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user.email", Value: 1}},
			Options: options.Index().SetName(userEmailIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user.employeeNumber", Value: 1}},
			Options: options.Index().SetName(userEmployeeNumberIndex).SetUnique(true),
		},
	})
}

func duplicateField(err error) string {
	if strings.Contains(err.Error(), userEmployeeNumberIndex) {
		return "employeeNumber"
	}
	return "email"
}
