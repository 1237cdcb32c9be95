package domain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/holiman/uint256"
)

var parentIDArguments abi.Arguments

func init() {
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(fmt.Errorf("initializing uint256 ABI type: %w", err))
	}
	parentIDArguments = abi.Arguments{{Name: "parentId", Type: uint256Type}}
}

// EncodeParentID encodes a parent token id as the auxiliary data of an inbound transfer
func EncodeParentID(id uint256.Int) []byte {
	data, err := parentIDArguments.Pack(id.ToBig())
	if err != nil {
		// a uint256 always packs into a single word
		panic(fmt.Errorf("packing parent id: %w", err))
	}
	return data
}

// DecodeParentID decodes the receiving parent token id from inbound auxiliary data.
// The data must be exactly one ABI-encoded uint256.
func DecodeParentID(data []byte) (uint256.Int, error) {
	var id uint256.Int
	if len(data) != PARENT_ID_DATA_LENGTH {
		return id, ErrMalformedData
	}

	values, err := parentIDArguments.Unpack(data)
	if err != nil || len(values) != 1 {
		return id, ErrMalformedData
	}

	b, ok := values[0].(*big.Int)
	if !ok {
		return id, ErrMalformedData
	}

	v, overflow := uint256.FromBig(b)
	if overflow {
		return id, ErrMalformedData
	}
	return *v, nil
}
