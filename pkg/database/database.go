package database

import (
	"runtime"

	hivedb "github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/kvstore/rocksdb"
)

// Config holds the settings of the vault's on-disk store.
type Config struct {
	Engine    hivedb.Engine
	Directory string

	Version      byte
	PrefixHealth []byte
}

// AllowedEngines is the list of database engines the node can be configured with.
var AllowedEngines = []hivedb.Engine{hivedb.EngineAuto, hivedb.EngineMapDB, hivedb.EngineRocksDB}

// StoreWithDefaultSettings returns a KVStore with default settings.
// It also checks if the database engine is correct.
func StoreWithDefaultSettings(path string, createDatabaseIfNotExists bool, dbEngine hivedb.Engine) (kvstore.KVStore, error) {
	targetEngine, err := hivedb.CheckEngine(path, createDatabaseIfNotExists, dbEngine, AllowedEngines)
	if err != nil {
		return nil, err
	}

	switch targetEngine {
	case hivedb.EngineRocksDB:
		db, err := newRocksDB(path)
		if err != nil {
			return nil, err
		}

		return rocksdb.New(db), nil

	case hivedb.EngineMapDB:
		return mapdb.NewMapDB(), nil

	default:
		return nil, ierrors.Errorf("unknown database engine: %s, supported engines: mapdb/rocksdb", dbEngine)
	}
}

// newRocksDB creates a new RocksDB instance.
func newRocksDB(path string) (*rocksdb.RocksDB, error) {
	opts := []rocksdb.Option{
		rocksdb.IncreaseParallelism(runtime.NumCPU() - 1),
		rocksdb.Custom([]string{
			"periodic_compaction_seconds=43200",
			"level_compaction_dynamic_level_bytes=true",
			"keep_log_file_num=2",
		}),
	}

	return rocksdb.CreateDB(path, opts...)
}
