package board

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetAllBoards(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List boards
// @Description Boards that hold at least one thread, most recently bumped first
// @Tags Board
// @Produce json
// @Success 200 {object} BoardListResponse
// @Failure 500 {object} ErrorResponse
// @Router /boards [get]
func (h *handler) GetAllBoards(c *gin.Context) {
	boards, err := h.service.ListBoards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, BoardListResponse{Boards: boards})
}
