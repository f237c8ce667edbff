package parking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkline/parkline/internal/application/parking/usecases"
	"github.com/parkline/parkline/internal/shared/logger"
	"github.com/parkline/parkline/internal/shared/utils"
)

// ParkingHandler serves the ticket lifecycle: entry, exit, lookup and
// free-hours grants.
type ParkingHandler struct {
	registerEntryUC  usecases.RegisterEntryExecutor
	processExitUC    usecases.ProcessExitExecutor
	getTicketUC      usecases.GetTicketExecutor
	grantFreeHoursUC usecases.GrantFreeHoursExecutor
	logger           logger.Interface
}

func NewParkingHandler(
	registerEntryUC usecases.RegisterEntryExecutor,
	processExitUC usecases.ProcessExitExecutor,
	getTicketUC usecases.GetTicketExecutor,
	grantFreeHoursUC usecases.GrantFreeHoursExecutor,
	log logger.Interface,
) *ParkingHandler {
	return &ParkingHandler{
		registerEntryUC:  registerEntryUC,
		processExitUC:    processExitUC,
		getTicketUC:      getTicketUC,
		grantFreeHoursUC: grantFreeHoursUC,
		logger:           log,
	}
}

// RegisterEntry handles POST /tickets
// @Summary Register a vehicle entry
// @Tags tickets
// @Accept json
// @Produce json
// @Param entry body RegisterEntryRequest true "Entry data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tickets [post]
func (h *ParkingHandler) RegisterEntry(c *gin.Context) {
	var req RegisterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register entry", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.registerEntryUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Entry registered")
}

// ProcessExit handles POST /tickets/:id/exit
// @Summary Close a ticket and bill it
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets/{id}/exit [post]
func (h *ParkingHandler) ProcessExit(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.processExitUC.Execute(c.Request.Context(), usecases.ProcessExitCommand{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Exit registered", result)
}

// GetTicket handles GET /tickets/:id
// @Summary Get a ticket with its charge
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *ParkingHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GrantFreeHours handles POST /tickets/:id/free-hours
// @Summary Grant free hours on an open ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param grant body GrantFreeHoursRequest true "Grant data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets/{id}/free-hours [post]
func (h *ParkingHandler) GrantFreeHours(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GrantFreeHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for grant free hours", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.grantFreeHoursUC.Execute(c.Request.Context(), req.ToCommand(ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Free hours granted")
}
