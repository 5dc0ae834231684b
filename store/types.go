package store

import "github.com/iov-one/pact"

// Storage types are referenced here for shorter names everywhere.
type (
	ReadOnlyKVStore  = pact.ReadOnlyKVStore
	SetDeleter       = pact.SetDeleter
	KVStore          = pact.KVStore
	Batch            = pact.Batch
	Iterator         = pact.Iterator
	CacheableKVStore = pact.CacheableKVStore
	KVCacheWrap      = pact.KVCacheWrap
	CommitKVStore    = pact.CommitKVStore
	CommitID         = pact.CommitID
	Model            = pact.Model
)

// Pair constructs a model from a key-value pair.
var Pair = pact.Pair
