package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"github.com/ihlicid/rondo-mundi/internal/services"
)

// HTTPHandler holds the dependencies for the HTTP handlers, i.e. the lottery
// registry behind its interface.
type HTTPHandler struct {
	registry services.Registry
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(registry services.Registry) *HTTPHandler {
	return &HTTPHandler{registry: registry}
}

// CreateLotteryRequest is the body for POST /lottery.
type CreateLotteryRequest struct {
	Admin       string  `json:"admin"`
	TicketPrice uint64  `json:"ticket_price"`
	EndTime     *string `json:"end_time"`
}

// BuyTicketRequest is the body for POST /lottery/:id/buy.
type BuyTicketRequest struct {
	WalletAddress string `json:"wallet_address"`
	Tickets       uint32 `json:"tickets"`
}

// PickWinnerRequest is the body for POST /lottery/:id/pick_winner.
type PickWinnerRequest struct {
	Admin string `json:"admin"`
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.HealthCheck)
	router.GET("/health", h.HealthCheck)
	router.POST("/lottery", h.CreateLottery)
	router.GET("/lottery/:id", h.GetLottery)
	router.POST("/lottery/:id/buy", h.BuyTickets)
	router.POST("/lottery/:id/pick_winner", h.PickWinner)
	router.GET("/lotteries", h.ListLotteries)
}

// HealthCheck reports that the process is up.
func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, "Rondo Mundi backend is running!")
}

// CreateLottery opens a new lottery and returns it.
func (h *HTTPHandler) CreateLottery(c *gin.Context) {
	var req CreateLotteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Infof("Rejected create request: %v", err)
		c.JSON(http.StatusBadRequest, err.Error())
		return
	}

	lottery := h.registry.Create(req.Admin, req.TicketPrice, req.EndTime)
	c.JSON(http.StatusOK, lottery)
}

// GetLottery returns a snapshot of one lottery.
func (h *HTTPHandler) GetLottery(c *gin.Context) {
	lottery, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, lottery)
}

// ListLotteries returns a snapshot of every lottery.
func (h *HTTPHandler) ListLotteries(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// BuyTickets adds tickets to a wallet's stake in a lottery.
func (h *HTTPHandler) BuyTickets(c *gin.Context) {
	var req BuyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Infof("Rejected buy request: %v", err)
		c.JSON(http.StatusBadRequest, err.Error())
		return
	}

	lottery, err := h.registry.BuyTickets(c.Param("id"), req.WalletAddress, req.Tickets)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, lottery)
}

// PickWinner draws a winner and closes the lottery.
func (h *HTTPHandler) PickWinner(c *gin.Context) {
	var req PickWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Infof("Rejected pick_winner request: %v", err)
		c.JSON(http.StatusBadRequest, err.Error())
		return
	}

	lottery, err := h.registry.DrawWinner(c.Param("id"), req.Admin)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, lottery)
}

// renderError maps registry errors onto HTTP statuses. Error bodies are bare
// JSON strings.
func (h *HTTPHandler) renderError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Reason)
	case errors.Is(err, services.ErrLotteryNotFound):
		c.JSON(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAdmin):
		c.JSON(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrLotteryInactive),
		errors.Is(err, services.ErrLotteryEnded),
		errors.Is(err, services.ErrNoParticipants),
		errors.Is(err, services.ErrNoTicketsSold),
		errors.Is(err, services.ErrOverflow):
		c.JSON(http.StatusBadRequest, err.Error())
	default:
		logger.Errorf("Unexpected registry error: %v", err)
		c.JSON(http.StatusInternalServerError, "Internal error")
	}
}
