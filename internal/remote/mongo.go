package remote

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
	mng "github.com/nikmy/fleetsync/pkg/mongotools"
)

func newMongo(ctx context.Context, log logger.Logger, cfg MongoConfig) (*mongoClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}
	if cfg.Pool.MinSize > 0 {
		opts.SetMinPoolSize(cfg.Pool.MinSize)
	}
	if cfg.Pool.MaxSize > 0 {
		opts.SetMaxPoolSize(cfg.Pool.MaxSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, errors.WrapFail(err, "ping mongo db")
	}

	return &mongoClient{
		c:   client,
		db:  client.Database(cfg.Database),
		log: log.With("mongo_client"),
	}, nil
}

type mongoClient struct {
	c   *mongo.Client
	db  *mongo.Database
	log logger.Logger
}

func (m *mongoClient) List(ctx context.Context, table string) ([]Row, error) {
	c, err := m.db.Collection(table).Find(ctx, mng.All())
	if err != nil {
		return nil, Fail(err, "find rows")
	}

	docs, err := mng.FilterFunc[bson.M](ctx, c, nil)
	if err != nil {
		return nil, Fail(err, "read rows")
	}

	rows := make([]Row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, mng.ExposeID(doc, ColumnID))
	}
	return rows, nil
}

func (m *mongoClient) Insert(ctx context.Context, table string, row Row) (Row, error) {
	doc := mng.HideID(row, ColumnID)
	if _, ok := doc[mng.KeyID]; !ok {
		doc[mng.KeyID] = mng.NewID()
	}

	coll := m.db.Collection(table)

	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, Fail(err, "insert row")
	}

	id, _ := result.InsertedID.(string)
	return m.find(ctx, coll, id)
}

func (m *mongoClient) Update(ctx context.Context, table string, id string, row Row) (Row, error) {
	coll := m.db.Collection(table)

	set := mng.HideID(row, ColumnID)
	delete(set, mng.KeyID)
	if len(set) == 0 {
		return m.find(ctx, coll, id)
	}

	r := coll.FindOneAndUpdate(
		ctx,
		mng.FilterByID(id),
		mng.SetAll(set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	err := r.Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(table, id)
	}
	if err != nil {
		return nil, Fail(err, "update row")
	}

	return m.decode(r)
}

func (m *mongoClient) Delete(ctx context.Context, table string, id string) error {
	result, err := m.db.Collection(table).DeleteOne(ctx, mng.FilterByID(id))
	if err != nil {
		return Fail(err, "delete row")
	}

	if result.DeletedCount == 0 {
		m.log.Debugf("delete from %s: no row %s", table, id)
	}
	return nil
}

func (m *mongoClient) Close(ctx context.Context) error {
	err := m.c.Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}

func (m *mongoClient) find(ctx context.Context, coll *mongo.Collection, id string) (Row, error) {
	r := coll.FindOne(ctx, mng.FilterByID(id))

	err := r.Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(coll.Name(), id)
	}
	if err != nil {
		return nil, Fail(err, "find row by id")
	}

	return m.decode(r)
}

func (m *mongoClient) decode(r *mongo.SingleResult) (Row, error) {
	var doc bson.M
	err := r.Decode(&doc)
	if err != nil {
		return nil, Fail(err, "decode row")
	}

	return mng.ExposeID(doc, ColumnID), nil
}
