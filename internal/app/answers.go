package app

import "maps"

// AnswerStore maps a question index to its chosen option key.
// It is owned by a Session and guarded by the session lock.
type AnswerStore struct {
	entries map[int]string
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{entries: make(map[int]string)}
}

// Set records or overwrites the answer for index.
func (a *AnswerStore) Set(index int, key string) {
	a.entries[index] = key
}

// Clear removes the answer for index.
func (a *AnswerStore) Clear(index int) {
	delete(a.entries, index)
}

// Get returns the answer for index, if one is recorded.
func (a *AnswerStore) Get(index int) (string, bool) {
	key, ok := a.entries[index]
	return key, ok
}

func (a *AnswerStore) Len() int {
	return len(a.entries)
}

// Snapshot copies the current answers.
func (a *AnswerStore) Snapshot() map[int]string {
	return maps.Clone(a.entries)
}
