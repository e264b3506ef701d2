package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

type Options struct {
	AppName  string
	Hosts    []string
	Direct   bool
	Username string
	Password string
	AuthDB   string
	Database string
	Timeout  time.Duration
}

// ClientOptions maps Options onto driver options. Auth is only set when a
// username is given.
func ClientOptions(o Options) *options.ClientOptions {
	appName := o.AppName
	if appName == "" {
		appName = "storefront"
	}
	opts := options.Client().
		SetAppName(appName).
		SetHosts(o.Hosts).
		SetDirect(o.Direct).
		SetMaxPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second)
	if o.Timeout > 0 {
		opts.SetTimeout(o.Timeout)
	}

	if o.Username != "" {
		authSource := o.AuthDB
		if authSource == "" {
			authSource = "admin"
		}
		opts.SetAuth(options.Credential{
			AuthSource: authSource,
			Username:   o.Username,
			Password:   o.Password,
		})
	}
	return opts
}

// Connect creates the client without pinging; call Ping once the server is
// expected to be reachable.
func Connect(ctx context.Context, o Options) (*DB, error) {
	client, err := mongo.Connect(ctx, ClientOptions(o))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return &DB{
		Client:   client,
		Database: client.Database(o.Database),
	}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}
