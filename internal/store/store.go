// Package store is the persistence gateway: one long-lived database handle
// with typed accessors per collection.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/petermazzocco/temple-desk/internal/config"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection names.
const (
	Forms    = "forms"
	Events   = "events"
	Tickets  = "tickets"
	Carousel = "carousel"
	Users    = "users"
	Admins   = "useradmin"
)

var ErrNotFound = errors.New("document not found")

// Collection is a handle on one logical collection of the fixed database.
type Collection interface {
	// FindAll decodes every document into results, which must be a pointer to a slice.
	FindAll(ctx context.Context, results any) error
	// FindOne decodes the first document matching filter into result, or returns ErrNotFound.
	FindOne(ctx context.Context, filter bson.M, result any) error
	InsertOne(ctx context.Context, doc any) (bson.ObjectID, error)
	DeleteOne(ctx context.Context, id bson.ObjectID) (int64, error)
}

type Database interface {
	Collection(name string) Collection
	Close(ctx context.Context) error
}

// Open connects to the configured backend. It returns only once the backend
// is reachable.
func Open(ctx context.Context, cfg config.Config) (Database, error) {
	switch cfg.DatabaseType {
	case config.DatabaseMongo:
		db, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DatabaseMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}
