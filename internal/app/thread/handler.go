package thread

import (
	"errors"
	"net/http"
	"net/url"

	"messageboard/internal/app/board"
	"messageboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateThread(c *gin.Context)
	ListThreads(c *gin.Context)
	ReportThread(c *gin.Context)
	DeleteThread(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create a thread
// @Description Creates a thread on the board and redirects to the board page
// @Tags Thread
// @Accept json,x-www-form-urlencoded
// @Param board path string true "Board name"
// @Param request body CreateThreadRequest true "Thread text and delete password"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Router /threads/{board} [post]
func (h *handler) CreateThread(c *gin.Context) {
	boardName := c.Param("board")

	var req CreateThreadRequest
	if err := utils.BindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text and delete_password are required"})
		return
	}

	if _, err := h.service.CreateThread(c.Request.Context(), boardName, req.Text, req.DeletePassword); err != nil {
		if errors.Is(err, board.ErrEmptyText) || errors.Is(err, board.ErrEmptyPassword) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create thread"})
		return
	}

	c.Redirect(http.StatusFound, "/b/"+url.PathEscape(boardName)+"/")
}

// @Summary List threads
// @Description The most recently bumped threads of a board with their newest replies
// @Tags Thread
// @Produce json
// @Param board path string true "Board name"
// @Success 200 {array} board.ThreadView
// @Failure 500 {object} ErrorResponse
// @Router /threads/{board} [get]
func (h *handler) ListThreads(c *gin.Context) {
	threads, err := h.service.ListThreads(c.Request.Context(), c.Param("board"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get threads"})
		return
	}
	c.JSON(http.StatusOK, threads)
}

// @Summary Report a thread
// @Tags Thread
// @Accept json,x-www-form-urlencoded
// @Produce plain
// @Param board path string true "Board name"
// @Param request body ReportThreadRequest true "Thread id as report_id"
// @Success 200 {string} string "Reported"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {string} string "thread not found"
// @Router /threads/{board} [put]
func (h *handler) ReportThread(c *gin.Context) {
	var req ReportThreadRequest
	if err := utils.BindBody(c, &req); err != nil || req.ID() == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report_id"})
		return
	}

	if err := h.service.ReportThread(c.Request.Context(), c.Param("board"), req.ID()); err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			c.String(http.StatusNotFound, MsgThreadNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to report thread"})
		return
	}

	c.String(http.StatusOK, MsgReported)
}

// @Summary Delete a thread
// @Description Deletes the thread and its replies when delete_password matches
// @Tags Thread
// @Accept json,x-www-form-urlencoded
// @Produce plain
// @Param board path string true "Board name"
// @Param request body DeleteThreadRequest true "Thread id and delete password"
// @Success 200 {string} string "success or incorrect password"
// @Router /threads/{board} [delete]
func (h *handler) DeleteThread(c *gin.Context) {
	var req DeleteThreadRequest
	if err := utils.BindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.service.DeleteThread(c.Request.Context(), c.Param("board"), req.ThreadID, req.DeletePassword)
	switch {
	case err == nil:
		c.String(http.StatusOK, MsgSuccess)
	case errors.Is(err, board.ErrThreadNotFound), errors.Is(err, board.ErrIncorrectPassword):
		c.String(http.StatusOK, MsgIncorrectPassword)
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete thread"})
	}
}
