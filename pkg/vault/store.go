package vault

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
)

// The vault keeps its authoritative state in memory and writes a per-account snapshot through to the
// KVStore after every committed mutation. A failed transfer therefore never reaches the store.

func accountStorageKey(accountID AccountID) []byte {
	return accountID[:]
}

func accountStorageValue(records []*DepositRecord) ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	if err := stream.WriteCollection(byteBuffer, serializer.SeriLengthPrefixTypeAsUint32, func() (int, error) {
		for _, record := range records {
			if err := stream.WriteObjectWithSize(byteBuffer, record, serializer.SeriLengthPrefixTypeAsUint16, (*DepositRecord).Bytes); err != nil {
				return 0, ierrors.Wrapf(err, "failed to write record %s", record.ID)
			}
		}

		return len(records), nil
	}); err != nil {
		return nil, ierrors.Wrap(err, "failed to write records")
	}

	return byteBuffer.Bytes()
}

func accountRecordsFromStorageValue(value []byte) ([]*DepositRecord, error) {
	byteReader := stream.NewByteReader(value)

	var records []*DepositRecord
	if err := stream.ReadCollection(byteReader, serializer.SeriLengthPrefixTypeAsUint32, func(i int) error {
		record, err := stream.ReadObjectWithSize(byteReader, serializer.SeriLengthPrefixTypeAsUint16, DepositRecordFromBytes)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read record %d", i)
		}
		records = append(records, record)

		return nil
	}); err != nil {
		return nil, ierrors.Wrap(err, "failed to read records")
	}

	return records, nil
}

// persistAccount writes the account's current record sequence to the store.
// The caller must hold the account's lock.
func (v *Vault) persistAccount(accountID AccountID, records []*DepositRecord) error {
	value, err := accountStorageValue(records)
	if err != nil {
		return err
	}

	return v.store.Set(accountStorageKey(accountID), value)
}

// ReadFromDisk restores the state of all accounts from the store. It is meant to be called once on
// startup, before the vault serves operations.
func (v *Vault) ReadFromDisk() error {
	v.accountsMutex.Lock()
	defer v.accountsMutex.Unlock()

	var innerErr error
	if err := v.store.Iterate(kvstore.EmptyPrefix, func(key kvstore.Key, value kvstore.Value) bool {
		accountID, _, err := AccountIDFromBytes(key)
		if err != nil {
			innerErr = ierrors.Wrap(err, "failed to parse account key")

			return false
		}

		records, err := accountRecordsFromStorageValue(value)
		if err != nil {
			innerErr = ierrors.Wrapf(err, "failed to load records of account %s", accountID)

			return false
		}

		v.accounts.Set(accountID, &accountDeposits{records: records})

		return true
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate vault store")
	}

	return innerErr
}

// Flush flushes the underlying store to disk.
func (v *Vault) Flush() error {
	return v.store.Flush()
}
