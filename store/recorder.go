package store

// Recorder interface is implemented by anything returned from
// NewRecordingStore.
type Recorder interface {
	// KVPairs returns all keys changed so far. The value is the value
	// written, or nil for a delete.
	KVPairs() map[string][]byte
}

// NewRecordingStore initializes a recording store wrapping this base
// store, using cached alternative if possible.
//
// A cache wrap created from the recording store writes back through it,
// so only changes that were written are recorded and discarded ones are
// not.
func NewRecordingStore(db KVStore) KVStore {
	rec := &recordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
	if _, ok := db.(CacheableKVStore); ok {
		return &cacheableRecordingStore{recordingStore: rec}
	}
	return rec
}

// recordingStore wraps a normal KVStore and records any change operations
type recordingStore struct {
	KVStore
	changes map[string][]byte
}

var _ KVStore = (*recordingStore)(nil)
var _ Recorder = (*recordingStore)(nil)

func (r *recordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the changes while performing.
func (r *recordingStore) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

// Delete records the changes while performing.
func (r *recordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch makes sure all writes go through this one.
func (r *recordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// cacheableRecordingStore wraps a CacheableKVStore and records any change
// operations.
type cacheableRecordingStore struct {
	*recordingStore
}

var _ CacheableKVStore = (*cacheableRecordingStore)(nil)

// CacheWrap makes sure all cached writes also go through this.
func (r *cacheableRecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}
