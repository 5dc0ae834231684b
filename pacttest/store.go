package pacttest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem
// backend engine to store the data. Use it instead of MemStore when you
// want the exact same storage implementation as the daemon is using.
func CommitKVStore(t testing.TB) (db pact.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "pacttest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	db = iavl.NewCommitStore(dbpath, "db")
	return db, func() { os.RemoveAll(dbpath) }
}
