package domain

import "errors"

var (
	// ErrMalformedData is returned when inbound auxiliary data does not decode as a single uint256
	ErrMalformedData = errors.New("data argument must contain the receiving parent token ID as uint256")

	// ErrUnknownParent is returned when a parent token does not exist in the parent registry
	ErrUnknownParent = errors.New("parent token does not exist")

	// ErrNotAuthorized is returned when the caller is neither the parent owner nor approved for it
	ErrNotAuthorized = errors.New("caller is not the parent token owner nor approved to transfer the child token")

	// ErrChildNotAttached is returned when a child asset has no balance under the parent
	ErrChildNotAttached = errors.New("the child token is not attached to the parent token")

	// ErrInsufficientOrZeroAmount is returned when the requested amount is zero or above the attached balance
	ErrInsufficientOrZeroAmount = errors.New("child token balance is below requested transfer amount or zero")

	// ErrArrayLengthMismatch is returned when batch ids and amounts differ in length
	ErrArrayLengthMismatch = errors.New("child token IDs and amounts length mismatch")

	// ErrBalanceOverflow is returned when a credit would exceed the uint256 range
	ErrBalanceOverflow = errors.New("child token balance overflow")

	// ErrUnknownRegistry is returned when a child registry reference cannot be resolved
	ErrUnknownRegistry = errors.New("child registry is not known")

	// ErrTokenAlreadyExists is returned when attempting to mint a token that already exists
	ErrTokenAlreadyExists = errors.New("token already exists")

	// ErrTokenNotFound is returned when a token is not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrInvalidRecipient is returned when tokens would be sent to the zero address
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrIncorrectOwner is returned when a parent transfer names a sender that does not own the token
	ErrIncorrectOwner = errors.New("transfer from incorrect owner")

	// ErrInvalidApproval is returned when an approval targets the current owner
	ErrInvalidApproval = errors.New("approval to current owner")

	// ErrTransferNotAllowed is returned when the operator may not move the sender's child tokens
	ErrTransferNotAllowed = errors.New("caller is not token owner or approved")

	// ErrInsufficientBalance is returned when a child registry holder has too few tokens
	ErrInsufficientBalance = errors.New("insufficient balance for transfer")
)

// ErrorKind is the stable, machine readable name of a failure
type ErrorKind string

const (
	ErrorKindMalformedData            ErrorKind = "malformed_data"
	ErrorKindUnknownParent            ErrorKind = "unknown_parent"
	ErrorKindNotAuthorized            ErrorKind = "not_authorized"
	ErrorKindChildNotAttached         ErrorKind = "child_not_attached"
	ErrorKindInsufficientOrZeroAmount ErrorKind = "insufficient_or_zero_amount"
	ErrorKindArrayLengthMismatch      ErrorKind = "array_length_mismatch"
	ErrorKindBalanceOverflow          ErrorKind = "balance_overflow"
	ErrorKindUnknownRegistry          ErrorKind = "unknown_registry"
	ErrorKindTokenAlreadyExists       ErrorKind = "token_already_exists"
	ErrorKindTokenNotFound            ErrorKind = "token_not_found"
	ErrorKindInvalidRecipient         ErrorKind = "invalid_recipient"
	ErrorKindIncorrectOwner           ErrorKind = "incorrect_owner"
	ErrorKindInvalidApproval          ErrorKind = "invalid_approval"
	ErrorKindTransferNotAllowed       ErrorKind = "transfer_not_allowed"
	ErrorKindInsufficientBalance      ErrorKind = "insufficient_balance"
	ErrorKindUnknown                  ErrorKind = "unknown"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrMalformedData, ErrorKindMalformedData},
	{ErrUnknownParent, ErrorKindUnknownParent},
	{ErrNotAuthorized, ErrorKindNotAuthorized},
	{ErrChildNotAttached, ErrorKindChildNotAttached},
	{ErrInsufficientOrZeroAmount, ErrorKindInsufficientOrZeroAmount},
	{ErrArrayLengthMismatch, ErrorKindArrayLengthMismatch},
	{ErrBalanceOverflow, ErrorKindBalanceOverflow},
	{ErrUnknownRegistry, ErrorKindUnknownRegistry},
	{ErrTokenAlreadyExists, ErrorKindTokenAlreadyExists},
	{ErrTokenNotFound, ErrorKindTokenNotFound},
	{ErrInvalidRecipient, ErrorKindInvalidRecipient},
	{ErrIncorrectOwner, ErrorKindIncorrectOwner},
	{ErrInvalidApproval, ErrorKindInvalidApproval},
	{ErrTransferNotAllowed, ErrorKindTransferNotAllowed},
	{ErrInsufficientBalance, ErrorKindInsufficientBalance},
}

// KindOf returns the kind of the first known sentinel wrapped by err
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ErrorKindUnknown
}
