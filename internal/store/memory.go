package store

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory is an in-process Database. Documents are kept BSON-encoded so reads
// and writes go through the same bson tags as the MongoDB backend.
type Memory struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memoryCollection)}
}

func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{name: name}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Close(context.Context) error {
	return nil
}

type memoryCollection struct {
	name string
	mu   sync.RWMutex
	docs []bson.Raw
}

func (c *memoryCollection) FindAll(ctx context.Context, results any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("results must be a pointer to a slice, got %T", results)
	}
	sliceType := rv.Elem().Type()

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := reflect.MakeSlice(sliceType, 0, len(c.docs))
	for _, raw := range c.docs {
		elem := reflect.New(sliceType.Elem())
		if err := decode(raw, elem.Interface()); err != nil {
			return fmt.Errorf("decode %s: %w", c.name, err)
		}
		out = reflect.Append(out, elem.Elem())
	}
	rv.Elem().Set(out)
	return nil
}

func (c *memoryCollection) FindOne(ctx context.Context, filter bson.M, result any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	want, err := bson.Marshal(filter)
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}
	wantElems, err := bson.Raw(want).Elements()
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, raw := range c.docs {
		if matches(raw, wantElems) {
			return decode(raw, result)
		}
	}
	return ErrNotFound
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc any) (bson.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return bson.NilObjectID, err
	}

	data, err := bson.Marshal(doc)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("encode document: %w", err)
	}
	raw := bson.Raw(data)

	var id bson.ObjectID
	if idVal := raw.Lookup("_id"); idVal.Type == 0 {
		id = bson.NewObjectID()
		if raw, err = withID(raw, id); err != nil {
			return bson.NilObjectID, err
		}
	} else {
		var ok bool
		if id, ok = idVal.ObjectIDOK(); !ok {
			return bson.NilObjectID, fmt.Errorf("unsupported _id type %s", idVal.Type)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(id) >= 0 {
		return bson.NilObjectID, fmt.Errorf("insert into %s: duplicate _id %s", c.name, id.Hex())
	}
	c.docs = append(c.docs, raw)
	return id, nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, id bson.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return 1, nil
}

// indexOf must be called with c.mu held.
func (c *memoryCollection) indexOf(id bson.ObjectID) int {
	for i, raw := range c.docs {
		if v, err := raw.LookupErr("_id"); err == nil {
			if got, ok := v.ObjectIDOK(); ok && got == id {
				return i
			}
		}
	}
	return -1
}

func matches(raw bson.Raw, want []bson.RawElement) bool {
	for _, elem := range want {
		got, err := raw.LookupErr(elem.Key())
		if err != nil {
			return false
		}
		v := elem.Value()
		if got.Type != v.Type || !bytes.Equal(got.Value, v.Value) {
			return false
		}
	}
	return true
}

func withID(raw bson.Raw, id bson.ObjectID) (bson.Raw, error) {
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	data, err := bson.Marshal(append(bson.D{{Key: "_id", Value: id}}, d...))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

func decode(raw bson.Raw, v any) error {
	dec := bson.NewDecoder(bson.NewDocumentReader(bytes.NewReader(raw)))
	dec.DefaultDocumentM()
	return dec.Decode(v)
}
