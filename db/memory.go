package db

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"alpacafarm/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore keeps documents in process. Every document and filter is passed
// through a BSON round trip so matching and decoding behave like MongoStore.
type MemoryStore struct {
	mu    sync.RWMutex
	colls map[string][]bson.M
	Now   Clock
}

func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = SystemClock
	}
	return &MemoryStore{colls: make(map[string][]bson.M), Now: now}
}

func normalize(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decode(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

func (s *MemoryStore) Insert(_ context.Context, coll string, doc Document) (string, error) {
	id := utils.GetUUID()
	doc.Stamp(id, s.Now())
	m, err := normalize(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", coll, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.colls[coll] = append(s.colls[coll], m)
	return id, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, coll, id string, out any) error {
	return s.FindOne(ctx, coll, bson.M{"_id": id}, out)
}

func (s *MemoryStore) FindOne(_ context.Context, coll string, filter bson.M, out any) error {
	f, err := normalize(orEmpty(filter))
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.colls[coll] {
		if matches(doc, f) {
			return decode(doc, out)
		}
	}
	return ErrNotFound
}

// Find decodes every match into out, which must point to a slice.
func (s *MemoryStore) Find(_ context.Context, coll string, filter bson.M, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find in %s: out must be a pointer to a slice, got %T", coll, out)
	}
	f, err := normalize(orEmpty(filter))
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	slice := rv.Elem()
	elemType := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(s.colls[coll]))
	for _, doc := range s.colls[coll] {
		if !matches(doc, f) {
			continue
		}
		elem := reflect.New(elemType)
		if err := decode(doc, elem.Interface()); err != nil {
			return fmt.Errorf("decode %s: %w", coll, err)
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}

func (s *MemoryStore) indexOf(coll, id string) int {
	for i, doc := range s.colls[coll] {
		if doc["_id"] == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) Update(_ context.Context, coll, id string, fields bson.M) (bool, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = s.Now()
	norm, err := normalize(set)
	if err != nil {
		return false, fmt.Errorf("encode update: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(coll, id)
	if i < 0 {
		return false, nil
	}
	for k, v := range norm {
		s.colls[coll][i][k] = v
	}
	return true, nil
}

func (s *MemoryStore) Increment(_ context.Context, coll, id, field string, by int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(coll, id)
	if i < 0 {
		return nil
	}
	doc := s.colls[coll][i]
	switch v := doc[field].(type) {
	case int32:
		doc[field] = v + int32(by)
	case int64:
		doc[field] = v + int64(by)
	case nil:
		doc[field] = int32(by)
	default:
		return fmt.Errorf("increment %s on %s/%s: not a number (%T)", field, coll, id, v)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, coll, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(coll, id)
	if i < 0 {
		return false, nil
	}
	docs := s.colls[coll]
	s.colls[coll] = append(docs[:i], docs[i+1:]...)
	return true, nil
}

func (s *MemoryStore) Count(_ context.Context, coll string, filter bson.M) (int64, error) {
	f, err := normalize(orEmpty(filter))
	if err != nil {
		return 0, fmt.Errorf("encode filter: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, doc := range s.colls[coll] {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }
