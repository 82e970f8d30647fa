package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned by FindOne and FindByID when nothing matches.
var ErrNotFound = errors.New("document not found")

// Document is anything the store can stamp with an id and timestamps on insert.
type Document interface {
	Stamp(id string, now time.Time)
}

// Store is the document store every service is built on. Filters are plain
// field equality maps; updates overwrite only the supplied fields and refresh
// updated_at.
type Store interface {
	Insert(ctx context.Context, coll string, doc Document) (string, error)
	FindByID(ctx context.Context, coll, id string, out any) error
	FindOne(ctx context.Context, coll string, filter bson.M, out any) error
	Find(ctx context.Context, coll string, filter bson.M, out any) error
	Update(ctx context.Context, coll, id string, fields bson.M) (bool, error)
	Increment(ctx context.Context, coll, id, field string, by int) error
	Delete(ctx context.Context, coll, id string) (bool, error)
	Count(ctx context.Context, coll string, filter bson.M) (int64, error)
	Close(ctx context.Context) error
}

// Clock is the time source for timestamps.
type Clock func() time.Time

// SystemClock is millisecond-truncated UTC, the precision BSON dates keep.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func orEmpty(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}
