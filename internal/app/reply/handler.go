package reply

import (
	"errors"
	"net/http"
	"net/url"

	"messageboard/internal/app/board"
	"messageboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateReply(c *gin.Context)
	GetThread(c *gin.Context)
	ReportReply(c *gin.Context)
	DeleteReply(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Reply to a thread
// @Description Adds a reply, bumps the thread and redirects to the thread page
// @Tags Reply
// @Accept json,x-www-form-urlencoded
// @Param board path string true "Board name"
// @Param request body CreateReplyRequest true "Thread id, text and delete password"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Failure 404 {string} string "thread not found"
// @Router /replies/{board} [post]
func (h *handler) CreateReply(c *gin.Context) {
	boardName := c.Param("board")

	var req CreateReplyRequest
	if err := utils.BindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "thread_id, text and delete_password are required"})
		return
	}

	_, err := h.service.CreateReply(c.Request.Context(), boardName, req.ThreadID, req.Text, req.DeletePassword)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/b/"+url.PathEscape(boardName)+"/"+req.ThreadID)
	case errors.Is(err, board.ErrThreadNotFound):
		c.String(http.StatusNotFound, MsgThreadNotFound)
	case errors.Is(err, board.ErrEmptyText), errors.Is(err, board.ErrEmptyPassword):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create reply"})
	}
}

// @Summary Get a thread
// @Description A single thread with every reply, newest first
// @Tags Reply
// @Produce json
// @Param board path string true "Board name"
// @Param thread_id query string true "Thread id"
// @Success 200 {object} board.ThreadView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {string} string "thread not found"
// @Router /replies/{board} [get]
func (h *handler) GetThread(c *gin.Context) {
	var q GetThreadQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid thread_id"})
		return
	}

	thread, err := h.service.GetThread(c.Request.Context(), c.Param("board"), q.ThreadID)
	if err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			c.String(http.StatusNotFound, MsgThreadNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get thread"})
		return
	}
	c.JSON(http.StatusOK, thread)
}

// @Summary Report a reply
// @Tags Reply
// @Accept json,x-www-form-urlencoded
// @Produce plain
// @Param board path string true "Board name"
// @Param request body ReportReplyRequest true "Thread and reply ids"
// @Success 200 {string} string "Reported"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {string} string "reply not found"
// @Router /replies/{board} [put]
func (h *handler) ReportReply(c *gin.Context) {
	var req ReportReplyRequest
	if err := utils.BindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid thread_id or reply_id"})
		return
	}

	if err := h.service.ReportReply(c.Request.Context(), c.Param("board"), req.ThreadID, req.ReplyID); err != nil {
		if errors.Is(err, board.ErrReplyNotFound) {
			c.String(http.StatusNotFound, MsgReplyNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to report reply"})
		return
	}

	c.String(http.StatusOK, MsgReported)
}

// @Summary Delete a reply
// @Description Replaces the reply text with [deleted] when delete_password matches
// @Tags Reply
// @Accept json,x-www-form-urlencoded
// @Produce plain
// @Param board path string true "Board name"
// @Param request body DeleteReplyRequest true "Thread id, reply id and delete password"
// @Success 200 {string} string "success or no reply/ wrong pw"
// @Router /replies/{board} [delete]
func (h *handler) DeleteReply(c *gin.Context) {
	var req DeleteReplyRequest
	if err := utils.BindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.service.DeleteReply(c.Request.Context(), c.Param("board"), req.ThreadID, req.ReplyID, req.DeletePassword)
	switch {
	case err == nil:
		c.String(http.StatusOK, MsgSuccess)
	case errors.Is(err, board.ErrReplyNotFound), errors.Is(err, board.ErrIncorrectPassword):
		c.String(http.StatusOK, MsgDeleteFailed)
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete reply"})
	}
}
