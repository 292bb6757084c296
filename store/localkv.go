package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cznic/kv"
)

// LocalKVStore is an embedded, single-process Store backed by
// github.com/cznic/kv. Counters and sets are both built on top of
// raw key/value records, guarded by a mutex for read-modify-write
// since kv.DB has no atomic increment of its own.
type LocalKVStore struct {
	mu sync.Mutex
	db *kv.DB
}

// OpenLocalKV opens or creates a kv database at path: try Open first,
// fall back to Create.
func OpenLocalKV(path string) (*LocalKVStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create kv directory %s: %w", dir, err)
		}
	}
	db, err := kv.Open(path, &kv.Options{})
	if err != nil {
		db, err = kv.Create(path, &kv.Options{})
		if err != nil {
			return nil, fmt.Errorf("open or create kv db %s: %w", path, err)
		}
	}
	return &LocalKVStore{db: db}, nil
}

func (l *LocalKVStore) getInt(key string) (int64, bool, error) {
	raw, err := l.db.Get(nil, []byte(key))
	if err != nil {
		return 0, false, err
	}
	if raw == nil {
		return 0, false, nil
	}
	v, n := binary.Varint(raw)
	if n <= 0 {
		return 0, false, fmt.Errorf("corrupt counter at key %q", key)
	}
	return v, true, nil
}

func (l *LocalKVStore) putInt(key string, v int64) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, v)
	return l.db.Set([]byte(key), buf[:n])
}

func (l *LocalKVStore) Incr(_ context.Context, key string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, _, err := l.getInt(key)
	if err != nil {
		return 0, err
	}
	next := cur + delta
	if err := l.putInt(key, next); err != nil {
		return 0, err
	}
	return next, nil
}

func (l *LocalKVStore) Get(_ context.Context, key string) (int64, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getInt(key)
}

// memberKey builds the per-member key used to emulate a set: one kv
// record per (setKey, member) pair, with the member list itself kept
// in a sidecar record so SetMembers doesn't need a prefix scan.
func (l *LocalKVStore) memberKey(key, member string) string {
	return "set:" + key + "\x00" + member
}

func (l *LocalKVStore) membersListKey(key string) string {
	return "setlist:" + key
}

func (l *LocalKVStore) SetAdd(_ context.Context, key, member string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	mk := l.memberKey(key, member)
	existing, err := l.db.Get(nil, []byte(mk))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := l.db.Set([]byte(mk), []byte{1}); err != nil {
		return false, err
	}
	listKey := l.membersListKey(key)
	raw, err := l.db.Get(nil, []byte(listKey))
	if err != nil {
		return false, err
	}
	var members []string
	if raw != nil {
		members = decodeMembers(raw)
	}
	members = append(members, member)
	if err := l.db.Set([]byte(listKey), encodeMembers(members)); err != nil {
		return false, err
	}
	return true, nil
}

func (l *LocalKVStore) SetMembers(_ context.Context, key string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	raw, err := l.db.Get(nil, []byte(l.membersListKey(key)))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return decodeMembers(raw), nil
}

func (l *LocalKVStore) Delete(_ context.Context, keys ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		if err := l.db.Delete([]byte(key)); err != nil {
			return err
		}
		listKey := l.membersListKey(key)
		raw, err := l.db.Get(nil, []byte(listKey))
		if err != nil {
			return err
		}
		if raw != nil {
			for _, member := range decodeMembers(raw) {
				if err := l.db.Delete([]byte(l.memberKey(key, member))); err != nil {
					return err
				}
			}
			if err := l.db.Delete([]byte(listKey)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *LocalKVStore) Close() error {
	return l.db.Close()
}

// encodeMembers/decodeMembers store a set's member list as
// length-prefixed strings.
func encodeMembers(members []string) []byte {
	var out []byte
	for _, m := range members {
		out = append(out, []byte(strconv.Itoa(len(m))+":")...)
		out = append(out, []byte(m)...)
	}
	return out
}

func decodeMembers(raw []byte) []string {
	var members []string
	i := 0
	for i < len(raw) {
		j := i
		for j < len(raw) && raw[j] != ':' {
			j++
		}
		n, err := strconv.Atoi(string(raw[i:j]))
		if err != nil {
			break
		}
		start := j + 1
		end := start + n
		if end > len(raw) {
			break
		}
		members = append(members, string(raw[start:end]))
		i = end
	}
	return members
}

var _ Store = (*LocalKVStore)(nil)
