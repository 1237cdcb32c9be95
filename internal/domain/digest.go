package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var digestEncMode cbor.EncMode

func init() {
	var err error
	if digestEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Errorf("initializing CBOR encoder mode: %w", err))
	}
}

// eventDigestView is the canonical, order-stable form of an event that goes into the digest.
// Sequence and Digest are assigned after hashing and are left out.
type eventDigestView struct {
	_         struct{} `cbor:",toarray"`
	EventID   string
	Type      string
	From      string
	To        string
	ParentID  string
	Registry  string
	AssetID   string
	Amount    string
	AssetIDs  []string
	Amounts   []string
	Timestamp int64
	Reverts   string
}

// ChainDigest returns sha256(prev || cbor(event)), linking each journal entry to its predecessor
func ChainDigest(prev []byte, event *LedgerEvent) ([]byte, error) {
	h := sha256.New()
	_, _ = h.Write(prev)

	view := eventDigestView{
		EventID:   event.EventID,
		Type:      string(event.Type),
		From:      event.From,
		To:        event.To,
		ParentID:  event.ParentID,
		Registry:  event.Registry,
		AssetID:   event.AssetID,
		Amount:    event.Amount,
		AssetIDs:  event.AssetIDs,
		Amounts:   event.Amounts,
		Timestamp: event.Timestamp.UnixNano(),
		Reverts:   event.Reverts,
	}
	if err := digestEncMode.NewEncoder(h).Encode(view); err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	return h.Sum(nil), nil
}

// VerifyDigestChain recomputes the digest of each event in order and compares it to the stored one.
// It returns the index of the first mismatch, or -1 when the chain is intact.
func VerifyDigestChain(prev []byte, events []*LedgerEvent) (int, error) {
	for i, event := range events {
		digest, err := ChainDigest(prev, event)
		if err != nil {
			return i, err
		}
		if hex.EncodeToString(digest) != event.Digest {
			return i, nil
		}
		prev = digest
	}
	return -1, nil
}
