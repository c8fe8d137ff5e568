package errors

import "fmt"

var (
	ErrWorkerPanic            = fmt.Errorf("worker panic")
	ErrCorrespondenceNotFound = fmt.Errorf("correspondence not found")
	ErrPartyNotFound          = fmt.Errorf("party not found in the register")
	ErrDialogReferenceMissing = fmt.Errorf("no dialog reference on correspondence")
	ErrUnsupportedEventKind   = fmt.Errorf("unsupported event kind for this operation")
	ErrUnknownJobKind         = fmt.Errorf("unknown job kind")
)
