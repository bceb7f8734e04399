package thread

const (
	MsgReported          = "Reported"
	MsgSuccess           = "success"
	MsgIncorrectPassword = "incorrect password"
	MsgThreadNotFound    = "thread not found"
)

type CreateThreadRequest struct {
	Text           string `json:"text" form:"text" binding:"required"`
	DeletePassword string `json:"delete_password" form:"delete_password" binding:"required"`
}

// ReportThreadRequest accepts the thread id as report_id, or as thread_id for
// clients that reuse the delete form.
type ReportThreadRequest struct {
	ReportID string `json:"report_id" form:"report_id" binding:"omitempty,objectid"`
	ThreadID string `json:"thread_id" form:"thread_id" binding:"omitempty,objectid"`
}

func (r *ReportThreadRequest) ID() string {
	if r.ReportID != "" {
		return r.ReportID
	}
	return r.ThreadID
}

// DeleteThreadRequest has no required fields: a missing id or password is
// answered like a wrong one.
type DeleteThreadRequest struct {
	ThreadID       string `json:"thread_id" form:"thread_id"`
	DeletePassword string `json:"delete_password" form:"delete_password"`
}

type Limits struct {
	Threads        int
	RepliesPerView int
}

type ErrorResponse struct {
	Error string `json:"error"`
}
