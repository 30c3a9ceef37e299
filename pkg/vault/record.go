package vault

import (
	"time"

	"github.com/google/uuid"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
)

// Amount is a value amount in base units.
type Amount uint64

// DepositRecord is an immutable (amount, unlock time) pair owned exclusively by the vault.
// A record is created only by a deposit and destroyed only by a withdrawal that observes it as unlocked;
// none of its fields ever change in between.
type DepositRecord struct {
	// ID identifies the record towards the API and in notifications.
	ID uuid.UUID
	// Amount is the deposited amount, always > 0.
	Amount Amount
	// UnlockTime is the absolute time after which the amount is eligible for withdrawal.
	UnlockTime time.Time
}

// Unlocked returns true if the record's value is eligible for withdrawal at the given time.
func (d *DepositRecord) Unlocked(now time.Time) bool {
	return !d.UnlockTime.After(now)
}

// TimeRemaining returns the duration until the record unlocks, or 0 if it already has.
func (d *DepositRecord) TimeRemaining(now time.Time) time.Duration {
	if remaining := d.UnlockTime.Sub(now); remaining > 0 {
		return remaining
	}

	return 0
}

func (d *DepositRecord) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	if err := stream.WriteBytesWithSize(byteBuffer, d.ID[:], serializer.SeriLengthPrefixTypeAsByte); err != nil {
		return nil, ierrors.Wrap(err, "failed to write record ID")
	}
	if err := stream.Write(byteBuffer, uint64(d.Amount)); err != nil {
		return nil, ierrors.Wrap(err, "failed to write amount")
	}
	if err := stream.Write(byteBuffer, d.UnlockTime.UnixNano()); err != nil {
		return nil, ierrors.Wrap(err, "failed to write unlock time")
	}

	return byteBuffer.Bytes()
}

func DepositRecordFromBytes(b []byte) (*DepositRecord, int, error) {
	byteReader := stream.NewByteReader(b)

	idBytes, err := stream.ReadBytesWithSize(byteReader, serializer.SeriLengthPrefixTypeAsByte)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to read record ID")
	}
	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse record ID")
	}

	amount, err := stream.Read[uint64](byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to read amount")
	}

	unlockNanos, err := stream.Read[int64](byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to read unlock time")
	}

	return &DepositRecord{
		ID:         id,
		Amount:     Amount(amount),
		UnlockTime: time.Unix(0, unlockNanos),
	}, byteReader.BytesRead(), nil
}
