package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ChildRegistry is the outbound transfer capability of an external child asset registry
//
//go:generate mockgen -source=registry.go -destination=../mocks/child_registry.go -package=mocks -mock_names=ChildRegistry=MockChildRegistry
type ChildRegistry interface {
	// Address returns the registry's own address, the reference the ledger indexes it by
	Address() common.Address
	// SafeTransferFrom moves amount of id from one holder to another
	SafeTransferFrom(ctx context.Context, operator, from, to common.Address, id, amount uint256.Int, data []byte) error
	// SafeBatchTransferFrom moves several ids at once, all or nothing
	SafeBatchTransferFrom(ctx context.Context, operator, from, to common.Address, ids, amounts []uint256.Int, data []byte) error
}
