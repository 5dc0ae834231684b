package utils

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/store"
	"github.com/tendermint/tendermint/libs/common"
)

// KeyTagger is a decorator that records all Set/Delete operations
// performed by its children and adds all those keys as DeliverTx tags.
//
// Tag key is the hex encoded bucket key, tag value is "s" for set or "d"
// for delete. Hex keeps the tags searchable by the tendermint indexer.
type KeyTagger struct{}

var _ pact.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator.
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing.
func (KeyTagger) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Checker) (*pact.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes in a recording KVStore into the child and uses that to
// calculate tags to add to DeliverResult.
func (KeyTagger) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Deliverer) (*pact.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, kvPairs(record)...)
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// kvPairs will get the kvpairs from an underlying store if possible.
func kvPairs(db pact.KVStore) common.KVPairs {
	r, ok := db.(store.Recorder)
	if !ok {
		return nil
	}
	return changesToTags(r.KVPairs())
}

func changesToTags(changes map[string][]byte) common.KVPairs {
	if len(changes) == 0 {
		return nil
	}
	res := make(common.KVPairs, 0, len(changes))
	for k, v := range changes {
		tag := recordSet
		if v == nil {
			tag = recordDelete
		}
		res = append(res, common.KVPair{
			Key:   []byte(strings.ToUpper(hex.EncodeToString([]byte(k)))),
			Value: tag,
		})
	}
	res.Sort()
	return res
}
