package vault

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/iotaledger/hive.go/ierrors"
)

// AccountIDLength is the length of an AccountID in bytes.
const AccountIDLength = 32

// AccountID is the opaque identifier under which deposit records are grouped.
// The vault performs no validation on it beyond its use as a map key.
type AccountID [AccountIDLength]byte

var EmptyAccountID = AccountID{}

// AccountIDFromBytes parses an AccountID from the given bytes and returns the amount of bytes consumed.
func AccountIDFromBytes(b []byte) (AccountID, int, error) {
	if len(b) < AccountIDLength {
		return EmptyAccountID, 0, ierrors.Errorf("invalid account ID length: %d", len(b))
	}

	return AccountID(b[:AccountIDLength]), AccountIDLength, nil
}

// AccountIDFromHexString parses an AccountID from its hex representation, with or without 0x prefix.
func AccountIDFromHexString(s string) (AccountID, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return EmptyAccountID, ierrors.Wrap(err, "invalid account ID hex encoding")
	}
	if len(decoded) != AccountIDLength {
		return EmptyAccountID, ierrors.Errorf("invalid account ID length: %d", len(decoded))
	}

	accountID, _, err := AccountIDFromBytes(decoded)
	if err != nil {
		return EmptyAccountID, err
	}

	return accountID, nil
}

// RandomAccountID returns a random AccountID.
func RandomAccountID() AccountID {
	var accountID AccountID
	//nolint:errcheck // crypto/rand.Read never returns an error
	rand.Read(accountID[:])

	return accountID
}

func (a AccountID) Bytes() ([]byte, error) {
	return a[:], nil
}

func (a AccountID) ToHex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a AccountID) String() string {
	return a.ToHex()
}
