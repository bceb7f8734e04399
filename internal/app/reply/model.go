package reply

const (
	MsgReported       = "Reported"
	MsgSuccess        = "success"
	MsgDeleteFailed   = "no reply/ wrong pw"
	MsgThreadNotFound = "thread not found"
	MsgReplyNotFound  = "reply not found"
)

type CreateReplyRequest struct {
	ThreadID       string `json:"thread_id" form:"thread_id" binding:"required,objectid"`
	Text           string `json:"text" form:"text" binding:"required"`
	DeletePassword string `json:"delete_password" form:"delete_password" binding:"required"`
}

type GetThreadQuery struct {
	ThreadID string `form:"thread_id" binding:"required,objectid"`
}

type ReportReplyRequest struct {
	ThreadID string `json:"thread_id" form:"thread_id" binding:"required,objectid"`
	ReplyID  string `json:"reply_id" form:"reply_id" binding:"required,objectid"`
}

// DeleteReplyRequest is validated by the service: any missing field ends up
// as the same failure answer as a wrong password.
type DeleteReplyRequest struct {
	ThreadID       string `json:"thread_id" form:"thread_id"`
	ReplyID        string `json:"reply_id" form:"reply_id"`
	DeletePassword string `json:"delete_password" form:"delete_password"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
