package domain

const (
	// Address constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// PARENT_ID_DATA_LENGTH is the exact size of the auxiliary data carried by an inbound transfer:
	// one ABI-encoded uint256 naming the receiving parent token
	PARENT_ID_DATA_LENGTH = 32

	// Subject prefix for ledger notifications published to the message broker
	EVENT_SUBJECT_PREFIX = "ledger.events"
)
