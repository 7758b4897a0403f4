// Package mongostore implements store.Collection on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"portfolio-api/internal/logx"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
)

var mongoLogger = logx.GetScope("mongostore")

// Connect opens a client, verifies it with a ping and returns the database.
func Connect(ctx context.Context, uri, database string, poolSize uint64) (*mongo.Database, func(), error) {
	opts := options.Client().ApplyURI(uri)
	if poolSize > 0 {
		opts.SetMaxPoolSize(poolSize)
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, func() {}, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, func() {}, fmt.Errorf("mongo ping: %w", err)
	}
	closer := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			mongoLogger.Sugar().Errorf("disconnect: %v", err)
		}
	}
	return client.Database(database), closer, nil
}

// Collection stores T documents in the collection named by its policy.
// Identities are ObjectID hex strings.
type Collection[T any, P store.Doc[T]] struct {
	coll   *mongo.Collection
	policy store.Policy
}

var _ store.Collection[model.Skill] = (*Collection[model.Skill, *model.Skill])(nil)

// New binds policy to its collection in db.
func New[T any, P store.Doc[T]](db *mongo.Database, policy store.Policy) *Collection[T, P] {
	return &Collection[T, P]{coll: db.Collection(policy.Name), policy: policy}
}

// EnsureIndexes creates the policy's sort and unique indexes.
func (c *Collection[T, P]) EnsureIndexes(ctx context.Context) error {
	models := lo.Map(c.policy.Indexes, func(keys []store.SortKey, _ int) mongo.IndexModel {
		return mongo.IndexModel{Keys: sortDoc(keys)}
	})
	for _, f := range c.policy.Unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueIndexName(f)),
		})
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("%s: create indexes: %w", c.policy.Name, err)
	}
	return nil
}

func (c *Collection[T, P]) Create(ctx context.Context, doc *T) error {
	h := P(doc).Header()
	store.Stamp(h, bson.NewObjectID().Hex())
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		h.ID = ""
		return c.wrap("insert", err)
	}
	return nil
}

func (c *Collection[T, P]) Find(ctx context.Context, q store.Query) ([]*T, error) {
	filter, err := c.filter(q.Filter)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(sortDoc(c.policy.OrderBy()))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, c.wrap("decode", err)
	}
	return out, nil
}

func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.D{{Key: store.IDField, Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, c.wrap("find one", err)
	}
	return &doc, nil
}

// Update replaces the whole document. Concurrent updates to the same
// document resolve as last writer wins.
func (c *Collection[T, P]) Update(ctx context.Context, id string, apply func(*T) error) (*T, error) {
	doc, err := c.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h := P(doc).Header()
	saved := *h
	if err := apply(doc); err != nil {
		return nil, err
	}
	store.Restore(h, saved)
	h.UpdatedAt = store.Now()

	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: store.IDField, Value: id}}, doc)
	if err != nil {
		return nil, c.wrap("replace", err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: store.IDField, Value: id}})
	if err != nil {
		return c.wrap("delete", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Collection[T, P]) Count(ctx context.Context, f store.Filter) (int64, error) {
	filter, err := c.filter(f)
	if err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

// Clear removes every document. Used by the seeder.
func (c *Collection[T, P]) Clear(ctx context.Context) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, c.wrap("clear", err)
	}
	return res.DeletedCount, nil
}

func (c *Collection[T, P]) filter(f store.Filter) (bson.D, error) {
	if err := c.policy.CheckFilter(f); err != nil {
		return nil, err
	}
	keys := lo.Keys(f)
	sort.Strings(keys)
	out := bson.D{}
	for _, k := range keys {
		out = append(out, bson.E{Key: k, Value: f[k]})
	}
	return out, nil
}

func (c *Collection[T, P]) wrap(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return &store.DuplicateKeyError{Field: c.duplicateField(err), Err: err}
	}
	return fmt.Errorf("%s: %s: %w", c.policy.Name, op, err)
}

func (c *Collection[T, P]) duplicateField(err error) string {
	if len(c.policy.Unique) == 1 {
		return c.policy.Unique[0]
	}
	msg := err.Error()
	f, _ := lo.Find(c.policy.Unique, func(f string) bool {
		return strings.Contains(msg, uniqueIndexName(f))
	})
	return f
}

func uniqueIndexName(field string) string { return "uniq_" + field }

func sortDoc(keys []store.SortKey) bson.D {
	return lo.Map(keys, func(k store.SortKey, _ int) bson.E {
		return bson.E{Key: k.Field, Value: lo.Ternary(k.Desc, -1, 1)}
	})
}
