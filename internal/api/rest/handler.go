package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/api/middleware"
	"github.com/feral-file/ff-composable-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-composable-ledger/internal/api/shared/dto"
	"github.com/feral-file/ff-composable-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// GetParent retrieves a parent token with owner, approval, token URI and attached registries
	// GET /api/v1/parents/:parent_id
	GetParent(c *gin.Context)

	// GetChildRegistries lists the registries with children attached to a parent
	// GET /api/v1/parents/:parent_id/children
	GetChildRegistries(c *gin.Context)

	// GetChildren lists the attached assets of one registry with balances
	// GET /api/v1/parents/:parent_id/children/:registry
	GetChildren(c *gin.Context)

	// GetChildBalance retrieves the attached balance of one asset
	// GET /api/v1/parents/:parent_id/children/:registry/:asset_id
	GetChildBalance(c *gin.Context)

	// TransferChild detaches one child token (requires JWT authentication)
	// POST /api/v1/parents/:parent_id/children/transfer
	TransferChild(c *gin.Context)

	// TransferChildren detaches several child tokens of one registry (requires JWT authentication)
	// POST /api/v1/parents/:parent_id/children/batch-transfer
	TransferChildren(c *gin.Context)

	// MintParent mints a parent token (requires API key authentication)
	// POST /api/v1/parents
	MintParent(c *gin.Context)

	// ApproveParent approves an address for a parent token (requires JWT authentication)
	// POST /api/v1/parents/:parent_id/approve
	ApproveParent(c *gin.Context)

	// TransferParent transfers a parent token (requires JWT authentication)
	// POST /api/v1/parents/:parent_id/transfer
	TransferParent(c *gin.Context)

	// SetOperator grants or revokes an operator for every parent token of the caller (requires JWT authentication)
	// POST /api/v1/operators
	SetOperator(c *gin.Context)

	// MintChild mints child tokens in a registry (requires API key authentication)
	// POST /api/v1/registries/:registry/mint
	MintChild(c *gin.Context)

	// TransferInRegistry moves one child token inside a registry (requires JWT authentication)
	// POST /api/v1/registries/:registry/transfer
	TransferInRegistry(c *gin.Context)

	// BatchTransferInRegistry moves several child tokens inside a registry (requires JWT authentication)
	// POST /api/v1/registries/:registry/batch-transfer
	BatchTransferInRegistry(c *gin.Context)

	// GetRegistryBalance retrieves a holder balance inside a registry
	// GET /api/v1/registries/:registry/balances/:owner/:asset_id
	GetRegistryBalance(c *gin.Context)

	// GetEvents lists journal entries
	// GET /api/v1/events?after=<sequence>&limit=<limit>&parent_id=<id>&type=<type1>,<type2>
	GetEvents(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// GetParent retrieves a parent token
func (h *handler) GetParent(c *gin.Context) {
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}

	parent, err := h.executor.GetParent(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, err, "Failed to get parent token")
		return
	}

	if parent == nil {
		respondNotFound(c, "Parent token not found")
		return
	}

	c.JSON(http.StatusOK, parent)
}

// GetChildRegistries lists attached registries
func (h *handler) GetChildRegistries(c *gin.Context) {
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}

	response, err := h.executor.GetChildRegistries(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, err, "Failed to get child registries")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChildren lists attached assets of one registry
func (h *handler) GetChildren(c *gin.Context) {
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}
	registry, ok := addressParam(c, "registry")
	if !ok {
		return
	}

	response, err := h.executor.GetChildren(c.Request.Context(), parentID, registry)
	if err != nil {
		respondError(c, err, "Failed to get children")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChildBalance retrieves one attached balance
func (h *handler) GetChildBalance(c *gin.Context) {
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}
	registry, ok := addressParam(c, "registry")
	if !ok {
		return
	}
	assetID, ok := tokenIDParam(c, "asset_id")
	if !ok {
		return
	}

	response, err := h.executor.GetChildBalance(c.Request.Context(), parentID, registry, assetID)
	if err != nil {
		respondError(c, err, "Failed to get child balance")
		return
	}

	c.JSON(http.StatusOK, response)
}

// TransferChild detaches one child token on behalf of the authenticated caller
func (h *handler) TransferChild(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}

	var req dto.TransferChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.TransferChild(c.Request.Context(), caller, parentID, *input)
	if err != nil {
		respondError(c, err, "Failed to transfer child token")
		return
	}

	c.JSON(http.StatusOK, response)
}

// TransferChildren detaches several child tokens on behalf of the authenticated caller
func (h *handler) TransferChildren(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}

	var req dto.TransferChildrenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.TransferChildren(c.Request.Context(), caller, parentID, *input)
	if err != nil {
		respondError(c, err, "Failed to transfer child tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}

// MintParent mints a parent token
func (h *handler) MintParent(c *gin.Context) {
	var req dto.MintParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.MintParent(c.Request.Context(), *input)
	if err != nil {
		respondError(c, err, "Failed to mint parent token")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ApproveParent approves an address for a parent token
func (h *handler) ApproveParent(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}

	var req dto.ApproveParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	to, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.ApproveParent(c.Request.Context(), caller, parentID, to)
	if err != nil {
		respondError(c, err, "Failed to approve parent token")
		return
	}

	c.JSON(http.StatusOK, response)
}

// TransferParent transfers a parent token
func (h *handler) TransferParent(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	parentID, ok := parentIDParam(c)
	if !ok {
		return
	}

	var req dto.TransferParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.TransferParent(c.Request.Context(), caller, parentID, *input)
	if err != nil {
		respondError(c, err, "Failed to transfer parent token")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SetOperator grants or revokes an operator
func (h *handler) SetOperator(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req dto.SetOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	operator, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.SetParentOperator(c.Request.Context(), caller, operator, req.Approved)
	if err != nil {
		respondError(c, err, "Failed to set operator")
		return
	}

	c.JSON(http.StatusOK, response)
}

// MintChild mints child tokens in a registry
func (h *handler) MintChild(c *gin.Context) {
	registry, ok := addressParam(c, "registry")
	if !ok {
		return
	}

	var req dto.MintChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.MintChild(c.Request.Context(), registry, *input)
	if err != nil {
		respondError(c, err, "Failed to mint child tokens")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// TransferInRegistry moves one child token inside a registry
func (h *handler) TransferInRegistry(c *gin.Context) {
	h.transferInRegistry(c, false)
}

// BatchTransferInRegistry moves several child tokens inside a registry
func (h *handler) BatchTransferInRegistry(c *gin.Context) {
	h.transferInRegistry(c, true)
}

func (h *handler) transferInRegistry(c *gin.Context, batch bool) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	registry, ok := addressParam(c, "registry")
	if !ok {
		return
	}

	var req dto.RegistryTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.Validate(batch)
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.TransferInRegistry(c.Request.Context(), caller, registry, *input, batch)
	if err != nil {
		respondError(c, err, "Failed to transfer child tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRegistryBalance retrieves a holder balance inside a registry
func (h *handler) GetRegistryBalance(c *gin.Context) {
	registry, ok := addressParam(c, "registry")
	if !ok {
		return
	}
	owner, ok := addressParam(c, "owner")
	if !ok {
		return
	}
	assetID, ok := tokenIDParam(c, "asset_id")
	if !ok {
		return
	}

	response, err := h.executor.GetRegistryBalance(c.Request.Context(), registry, owner, assetID)
	if err != nil {
		respondError(c, err, "Failed to get registry balance")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEvents lists journal entries
func (h *handler) GetEvents(c *gin.Context) {
	var after uint64
	if s := c.Query("after"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			respondValidationError(c, fmt.Sprintf("invalid after: %s", s))
			return
		}
		after = v
	}

	limit := constants.DEFAULT_EVENTS_LIMIT
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > constants.MAX_EVENTS_LIMIT {
			respondValidationError(c, fmt.Sprintf("limit must be between 1 and %d", constants.MAX_EVENTS_LIMIT))
			return
		}
		limit = v
	}

	var parentID *uint256.Int
	if s := c.Query("parent_id"); s != "" {
		id, err := domain.ParseTokenID(s)
		if err != nil {
			respondValidationError(c, fmt.Sprintf("invalid parent_id: %v", err))
			return
		}
		parentID = &id
	}

	var types []domain.EventType
	if s := c.Query("type"); s != "" {
		for _, t := range strings.Split(s, ",") {
			eventType := domain.EventType(strings.TrimSpace(t))
			if !domain.IsValidEventType(eventType) {
				respondValidationError(c, fmt.Sprintf("unsupported event type: %s", t))
				return
			}
			types = append(types, eventType)
		}
	}

	response, err := h.executor.GetEvents(c.Request.Context(), after, limit, parentID, types)
	if err != nil {
		respondError(c, err, "Failed to get events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "ff-composable-ledger-api",
	})
}

// parentIDParam parses the parent_id path parameter, responding on failure
func parentIDParam(c *gin.Context) (uint256.Int, bool) {
	return tokenIDParam(c, "parent_id")
}

func tokenIDParam(c *gin.Context, name string) (uint256.Int, bool) {
	id, err := domain.ParseTokenID(c.Param(name))
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid %s", name), err.Error())
		return uint256.Int{}, false
	}
	return id, true
}

func addressParam(c *gin.Context, name string) (common.Address, bool) {
	addr, err := domain.ParseAddress(c.Param(name))
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid %s", name), err.Error())
		return common.Address{}, false
	}
	return addr, true
}

func callerAddress(c *gin.Context) (common.Address, bool) {
	caller, err := middleware.CallerAddress(c)
	if err != nil {
		respondUnauthorized(c, "Caller address required", "token subject must be an address")
		return common.Address{}, false
	}
	return caller, true
}
