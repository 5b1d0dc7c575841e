package remotecheck

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig holds the connection settings for ConnectMongo.
type MongoConfig struct {
	ConnURL        string        `env:"MONGODB_URL,required"`                     // ConnURL is the mongodb connection string.
	MaxPoolSize    uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"4"`     // MaxPoolSize caps the pool; checks are single short finds.
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`   // RetryInterval is the wait between attempts.
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"` // ConnectTimeout applies per connection attempt.
}

// ConnectMongo opens a mongo client suitable for backing a MongoChecker,
// retrying until the server answers a ping.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrMongoUnavailable, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrMongoUnavailable
}

// MongoChecker probes one collection field for a value.
type MongoChecker struct {
	coll  *mongo.Collection
	field string
}

// NewMongoChecker builds a checker against a collection field, e.g.
// NewMongoChecker(client.Database("app").Collection("users"), "email").
func NewMongoChecker(coll *mongo.Collection, field string) *MongoChecker {
	return &MongoChecker{coll: coll, field: field}
}

func (c *MongoChecker) Exists(ctx context.Context, value string) (bool, error) {
	err := c.coll.FindOne(ctx, bson.D{{Key: c.field, Value: value}}).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	default:
		return false, errors.Join(ErrCheckFailed, err)
	}
}
