//go:build js && wasm

package main

import (
	"context"
	"strings"
	"syscall/js"

	"github.com/menucraft/menucraft/internal/persist"
)

// localStore adapts the browser's localStorage to the persist.Store
// interface. Values are stored as strings; localStorage has no binary type.
type localStore struct{}

func (localStore) storage() js.Value {
	return js.Global().Get("localStorage")
}

func (s localStore) Get(ctx context.Context, key string) ([]byte, error) {
	v := s.storage().Call("getItem", key)
	if v.IsNull() {
		return nil, persist.ErrNotFound
	}
	return []byte(v.String()), nil
}

func (s localStore) Put(ctx context.Context, key string, value []byte) error {
	s.storage().Call("setItem", key, string(value))
	return nil
}

func (s localStore) Delete(ctx context.Context, key string) error {
	s.storage().Call("removeItem", key)
	return nil
}

func (s localStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	storage := s.storage()
	n := storage.Get("length").Int()
	var keys []string
	for i := 0; i < n; i++ {
		key := storage.Call("key", i).String()
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (localStore) Close() error { return nil }
