// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"iter"
)

// Arena is a generic keyed arena. Values are stored in insertion order and
// located through a map from key to arena position.
type Arena[V any] struct {
	// keys and values are in insertion order.
	keys   []string
	values []V

	pos map[string]int
}

// NewArena creates an empty arena with room for n values.
func NewArena[V any](n int) *Arena[V] {
	return &Arena[V]{
		keys:   make([]string, 0, n),
		values: make([]V, 0, n),
		pos:    make(map[string]int, n),
	}
}

// Insert adds v under key if key is not present. It returns false and leaves
// the arena unchanged if key is already present.
func (a *Arena[V]) Insert(key string, v V) bool {
	if _, ok := a.pos[key]; ok {
		return false
	}
	a.pos[key] = len(a.values)
	a.keys = append(a.keys, key)
	a.values = append(a.values, v)
	return true
}

// Get returns the value stored under key.
func (a *Arena[V]) Get(key string) (V, bool) {
	i, ok := a.pos[key]
	if !ok {
		var zero V
		return zero, false
	}
	return a.values[i], true
}

// Len returns the number of values in the arena.
func (a *Arena[V]) Len() int {
	return len(a.values)
}

// Keys returns the keys in insertion order.
func (a *Arena[V]) Keys() []string {
	return append([]string(nil), a.keys...)
}

// All iterates over the key/value pairs in insertion order.
func (a *Arena[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, k := range a.keys {
			if !yield(k, a.values[i]) {
				return
			}
		}
	}
}
