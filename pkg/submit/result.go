package submit

// Messages shown to applicants when a submission does not succeed.
const (
	MsgUnexpected = "Something went wrong while submitting. Please try again."
	MsgRejected   = "Submission failed. Please try again."
)

// Result reports the outcome of one submission attempt. Err keeps the
// underlying cause for logs; Message is what applicants see.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Succeeded returns a successful result.
func Succeeded() Result {
	return Result{Success: true}
}

// Failed returns a failed result carrying the user-facing message and an
// optional cause.
func Failed(message string, err error) Result {
	return Result{Message: message, Err: err}
}
