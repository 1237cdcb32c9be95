package dto

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/feral-file/ff-composable-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

const (
	aliceHex    = "0x0000000000000000000000000000000000000a11"
	registryHex = "0x00000000000000000000000000000000000000c1"
)

func TestTransferChildRequest_Validate(t *testing.T) {
	valid := TransferChildRequest{To: aliceHex, Registry: registryHex, AssetID: "0x07", Amount: "5", Data: "0xcafe"}

	in, err := valid.Validate()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(aliceHex), in.To)
	assert.Equal(t, *uint256.NewInt(7), in.AssetID)
	assert.Equal(t, *uint256.NewInt(5), in.Amount)
	assert.Equal(t, []byte{0xca, 0xfe}, in.Data)

	tests := []struct {
		name   string
		modify func(r *TransferChildRequest)
	}{
		{"missing to", func(r *TransferChildRequest) { r.To = "" }},
		{"short registry", func(r *TransferChildRequest) { r.Registry = "0xc1" }},
		{"asset id out of range", func(r *TransferChildRequest) { r.AssetID = "0x1" + strings.Repeat("0", 64) }},
		{"fractional amount", func(r *TransferChildRequest) { r.Amount = "1.5" }},
		{"odd hex data", func(r *TransferChildRequest) { r.Data = "0xabc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.modify(&req)
			_, err := req.Validate()
			assertValidationError(t, err)
		})
	}
}

func TestTransferChildrenRequest_Validate(t *testing.T) {
	req := TransferChildrenRequest{To: aliceHex, Registry: registryHex, AssetIDs: []string{"7", "8"}, Amounts: []string{"1"}}

	// the ledger owns the length check
	in, err := req.Validate()
	require.NoError(t, err)
	assert.Len(t, in.AssetIDs, 2)
	assert.Len(t, in.Amounts, 1)

	req.AssetIDs = nil
	_, err = req.Validate()
	assertValidationError(t, err)

	req.AssetIDs = make([]string, 101)
	for i := range req.AssetIDs {
		req.AssetIDs[i] = strconv.Itoa(i)
	}
	_, err = req.Validate()
	assertValidationError(t, err)
}

func TestMintChildRequest_Validate(t *testing.T) {
	req := MintChildRequest{To: aliceHex, AssetIDs: []string{"7", "8"}, Amounts: []string{"1", "2"}}

	in, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{*uint256.NewInt(1), *uint256.NewInt(2)}, in.Amounts)
	assert.Nil(t, in.Data)

	req.Amounts = []string{"1"}
	_, err = req.Validate()
	assertValidationError(t, err)
}

func TestRegistryTransferRequest_Validate(t *testing.T) {
	data := domain.EncodeParentID(*uint256.NewInt(1))
	req := RegistryTransferRequest{
		From:     aliceHex,
		To:       registryHex,
		AssetIDs: []string{"7"},
		Amounts:  []string{"5"},
		Data:     "0x" + common.Bytes2Hex(data),
	}

	in, err := req.Validate(false)
	require.NoError(t, err)
	assert.Equal(t, data, in.Data)

	req.AssetIDs = []string{"7", "8"}
	req.Amounts = []string{"5", "1"}
	_, err = req.Validate(false)
	assertValidationError(t, err)

	in, err = req.Validate(true)
	require.NoError(t, err)
	assert.Len(t, in.AssetIDs, 2)
}

func TestParentRequests_Validate(t *testing.T) {
	mint := MintParentRequest{To: aliceHex, TokenID: "1"}
	in, err := mint.Validate()
	require.NoError(t, err)
	assert.Equal(t, *uint256.NewInt(1), in.TokenID)

	mint.TokenID = ""
	_, err = mint.Validate()
	assertValidationError(t, err)

	_, err = (&ApproveParentRequest{To: "alice"}).Validate()
	assertValidationError(t, err)

	_, err = (&TransferParentRequest{From: aliceHex}).Validate()
	assertValidationError(t, err)

	op, err := (&SetOperatorRequest{Operator: registryHex, Approved: true}).Validate()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(registryHex), op)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErr.Code)
}
