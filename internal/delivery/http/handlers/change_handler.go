package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	changeRequest "github.com/zyra-app/zyra-change-service/internal/delivery/http/dto/change/request"
	changeResponse "github.com/zyra-app/zyra-change-service/internal/delivery/http/dto/change/response"
	"github.com/zyra-app/zyra-change-service/internal/domain"
	changeuc "github.com/zyra-app/zyra-change-service/internal/usecase/change"
	changedto "github.com/zyra-app/zyra-change-service/internal/usecase/dto/change"
)

type ChangeHandler struct {
	ChangeUsecase changeuc.ChangeUsecase
}

func NewChangeHandler(changeUsecase changeuc.ChangeUsecase) *ChangeHandler {
	return &ChangeHandler{ChangeUsecase: changeUsecase}
}

// statusFor maps the domain error taxonomy onto HTTP codes: validation errors
// are 409, unknown ids 404, external mutation failures 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPreconditionFailed),
		errors.Is(err, domain.ErrNotRollbackable),
		errors.Is(err, domain.ErrPolicyDenied):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), changeResponse.ErrorResponse{Error: err.Error()})
}

func toCreateInput(req *changeRequest.CreateChangeRequest) *changedto.CreateChangeInput {
	return &changedto.CreateChangeInput{
		MerchantID:      req.MerchantID,
		ActionType:      req.ActionType,
		EntityType:      req.EntityType,
		EntityID:        req.EntityID,
		DecisionReason:  req.DecisionReason,
		Payload:         req.Payload,
		EstimatedImpact: req.EstimatedImpact,
		ExecutedBy:      req.ExecutedBy,
		DryRun:          req.DryRun,
		StartRunning:    req.StartRunning,
	}
}

// POST /api/autonomous-actions
func (h *ChangeHandler) Create(c *gin.Context) {
	var req changeRequest.CreateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, changeResponse.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.ChangeUsecase.CreateChange(c.Request.Context(), toCreateInput(&req))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, changeResponse.FromDomain(record))
}

// GET /api/autonomous-actions
func (h *ChangeHandler) List(c *gin.Context) {
	filter := domain.ChangeFilter{
		MerchantID: c.Query("merchant_id"),
		ActionType: domain.ActionType(c.Query("action_type")),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		ExecutedBy: domain.ExecutedBy(c.Query("executed_by")),
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.ChangeStatus{domain.ChangeStatus(status)}
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	records, total, err := h.ChangeUsecase.ListChanges(filter, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := changeResponse.ListChangesResponse{
		Changes: make([]changeResponse.ChangeResponse, len(records)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for i, record := range records {
		resp.Changes[i] = changeResponse.FromDomain(record)
	}

	c.JSON(http.StatusOK, resp)
}

// GET /api/autonomous-actions/summary
func (h *ChangeHandler) Summary(c *gin.Context) {
	summary, err := h.ChangeUsecase.Summary(c.Request.Context(), c.Query("merchant_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GET /api/autonomous-actions/:id
func (h *ChangeHandler) Get(c *gin.Context) {
	record, err := h.ChangeUsecase.GetChangeByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, changeResponse.FromDomain(record))
}

// POST /api/pending-approvals/:id/approve
func (h *ChangeHandler) Approve(c *gin.Context) {
	record, err := h.ChangeUsecase.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, changeResponse.FromDomain(record))
}

// POST /api/pending-approvals/:id/reject
func (h *ChangeHandler) Reject(c *gin.Context) {
	var req changeRequest.RejectChangeRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	record, err := h.ChangeUsecase.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, changeResponse.FromDomain(record))
}

// POST /api/autonomous-actions/:id/rollback
func (h *ChangeHandler) Rollback(c *gin.Context) {
	record, err := h.ChangeUsecase.Rollback(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, changeResponse.FromDomain(record))
}

// POST /api/autonomous-actions/rollback-all
func (h *ChangeHandler) RollbackAll(c *gin.Context) {
	output, err := h.ChangeUsecase.RollbackAll(c.Request.Context(), c.Query("merchant_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}
