package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names shared with the document schema.
const (
	usersCollection      = "users"
	profilesCollection   = "profiles"
	farmsCollection      = "farms"
	expensesCollection   = "expenses"
	incomeCollection     = "income"
	activitiesCollection = "activities"
)

// mongoConn bounds every driver call with the configured timeout.
type mongoConn struct {
	db      *mongo.Database
	timeout time.Duration
}

func (c mongoConn) conn(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c mongoConn) coll(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// mongoErr maps driver errors onto the package sentinels.
func mongoErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrRecordNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// setFields builds a $set document from a patch, adding updated_at.
func setFields(fields map[string]interface{}) bson.M {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()
	return bson.M{"$set": set}
}

// NewMongoStore wires all repositories to one database.
func NewMongoStore(db *mongo.Database, timeout time.Duration) *Store {
	c := mongoConn{db: db, timeout: timeout}
	return &Store{
		Users:      &MongoUserRepository{mongoConn: c},
		Profiles:   &MongoProfileRepository{mongoConn: c},
		Farms:      &MongoFarmRepository{mongoConn: c},
		Expenses:   &MongoExpenseRepository{mongoConn: c},
		Income:     &MongoIncomeRepository{mongoConn: c},
		Activities: &MongoActivityRepository{mongoConn: c},
	}
}

func ascending(key string) bson.D  { return bson.D{{Key: key, Value: 1}} }
func descending(key string) bson.D { return bson.D{{Key: key, Value: -1}} }

// EnsureIndexes creates the collection indexes, including the uniqueness
// constraints the repositories rely on to detect conflicts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: ascending("username"), Options: options.Index().SetUnique(true)},
			{Keys: ascending("email"), Options: options.Index().SetUnique(true)},
		},
		profilesCollection: {
			{Keys: ascending("user_id"), Options: options.Index().SetUnique(true)},
			{Keys: ascending("username")},
		},
		farmsCollection: {
			{Keys: ascending("owner_id")},
			{Keys: descending("created_at")},
			{Keys: ascending("default_for"), Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		expensesCollection: {
			{Keys: ascending("farm_id")},
			{Keys: descending("date")},
			{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: ascending("category")},
		},
		incomeCollection: {
			{Keys: ascending("farm_id")},
			{Keys: descending("date")},
			{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: ascending("source")},
		},
		activitiesCollection: {
			{Keys: ascending("farm_id")},
			{Keys: ascending("completed")},
			{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "completed", Value: 1}}},
			{Keys: ascending("time_frame")},
			{Keys: ascending("priority")},
			{Keys: ascending("custom_date")},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (c mongoConn) findAll(ctx context.Context, name string, filter bson.M, sort bson.D, out interface{}) error {
	ctx, cancel := c.conn(ctx)
	defer cancel()

	cur, err := c.coll(name).Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (c mongoConn) findByID(ctx context.Context, name, id string, out interface{}) error {
	ctx, cancel := c.conn(ctx)
	defer cancel()

	return mongoErr(c.coll(name).FindOne(ctx, bson.M{"_id": id}).Decode(out))
}

func (c mongoConn) insert(ctx context.Context, name string, doc interface{}) error {
	ctx, cancel := c.conn(ctx)
	defer cancel()

	_, err := c.coll(name).InsertOne(ctx, doc)
	return mongoErr(err)
}

func (c mongoConn) updateByID(ctx context.Context, name, id string, fields map[string]interface{}) error {
	ctx, cancel := c.conn(ctx)
	defer cancel()

	res, err := c.coll(name).UpdateOne(ctx, bson.M{"_id": id}, setFields(fields))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (c mongoConn) deleteByID(ctx context.Context, name, id string) error {
	ctx, cancel := c.conn(ctx)
	defer cancel()

	res, err := c.coll(name).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
