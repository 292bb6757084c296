package store

import (
	"context"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// MongoStore is a Store backed by MongoDB. Counters use Mongo's $inc
// so increments are atomic server-side instead of read-modify-write;
// sets use $addToSet on a single document per set key rather than one
// document per member.
type MongoStore struct {
	session    *mgo.Session
	db         string
	collection string
}

type counterDoc struct {
	Key   string `bson:"_id"`
	Value int64  `bson:"value"`
}

type setDoc struct {
	Key     string   `bson:"_id"`
	Members []string `bson:"members"`
}

// DialMongo connects to url and selects db/collection for both
// counters and sets.
func DialMongo(url, db, collection string) (*MongoStore, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, err
	}
	session.SetMode(mgo.Monotonic, true)
	return &MongoStore{session: session, db: db, collection: collection}, nil
}

func (m *MongoStore) counters() *mgo.Collection {
	return m.session.DB(m.db).C(m.collection + "_counters")
}

func (m *MongoStore) sets() *mgo.Collection {
	return m.session.DB(m.db).C(m.collection + "_sets")
}

func (m *MongoStore) Incr(_ context.Context, key string, delta int64) (int64, error) {
	var doc counterDoc
	_, err := m.counters().FindId(key).Apply(mgo.Change{
		Update:    bson.M{"$inc": bson.M{"value": delta}},
		Upsert:    true,
		ReturnNew: true,
	}, &doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}

func (m *MongoStore) Get(_ context.Context, key string) (int64, bool, error) {
	var doc counterDoc
	err := m.counters().FindId(key).One(&doc)
	if err == mgo.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return doc.Value, true, nil
}

func (m *MongoStore) SetAdd(_ context.Context, key, member string) (bool, error) {
	before, _ := m.SetMembers(context.Background(), key)
	for _, existing := range before {
		if existing == member {
			return false, nil
		}
	}
	_, err := m.sets().UpsertId(key, bson.M{"$addToSet": bson.M{"members": member}})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *MongoStore) SetMembers(_ context.Context, key string) ([]string, error) {
	var doc setDoc
	err := m.sets().FindId(key).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Members, nil
}

func (m *MongoStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		if err := m.counters().RemoveId(key); err != nil && err != mgo.ErrNotFound {
			return err
		}
		if err := m.sets().RemoveId(key); err != nil && err != mgo.ErrNotFound {
			return err
		}
	}
	return nil
}

func (m *MongoStore) Close() error {
	m.session.Close()
	return nil
}

var _ Store = (*MongoStore)(nil)
