package upload

import "github.com/dmitrijs2005/medreport/internal/common"

const (
	MsgConsentRequired = "You must consent to HIPAA terms before uploading."
	MsgPDFOnly         = "Please upload a PDF file only"
	MsgTooLarge        = "File size must be less than 10MB"
	MsgNoFile          = "Please select a file first"
	MsgUploaded        = "File uploaded successfully!"
	MsgUploadFailed    = "Failed to upload file. Please try again."
)

var (
	ErrAuthRequired = common.ErrAuthRequired
	ErrBusy         = common.ErrBusy
)

// ValidationError is a client-side rejection. Message is shown to the user
// as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) UserMessage() string { return e.Message }
