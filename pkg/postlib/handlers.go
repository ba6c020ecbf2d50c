package postlib

import "log"

type (
	// UploadStartHandlerFunc is called once per media upload after the
	// INIT phase succeeds, with the resolved file name and total size.
	UploadStartHandlerFunc func(fileName string, totalBytes int64)
	// UploadProgressHandlerFunc is called after every completed APPEND
	// with the number of bytes of the appended segment.
	UploadProgressHandlerFunc func(fileName string, nwritten int)
	// UploadCompleteHandlerFunc is called after FINALIZE succeeds.
	UploadCompleteHandlerFunc func(fileName string, mediaID MediaID)
	// ErrorHandlerFunc is called for errors surfaced by the publish path.
	ErrorHandlerFunc func(op string, err error)
	// PostCompleteHandlerFunc is called after a post has been created.
	PostCompleteHandlerFunc func(post *Post)
)

// Handlers carries the callbacks triggered during upload and publishing.
// Unset handlers are replaced with no-ops.
type Handlers struct {
	UploadStartHandler    UploadStartHandlerFunc
	UploadProgressHandler UploadProgressHandlerFunc
	UploadCompleteHandler UploadCompleteHandlerFunc
	ErrorHandler          ErrorHandlerFunc
	PostCompleteHandler   PostCompleteHandlerFunc
}

func (h *Handlers) setDefault(l *log.Logger) {
	if h.UploadStartHandler == nil {
		h.UploadStartHandler = func(fileName string, totalBytes int64) {}
	}
	if h.UploadProgressHandler == nil {
		h.UploadProgressHandler = func(fileName string, nwritten int) {}
	}
	if h.UploadCompleteHandler == nil {
		h.UploadCompleteHandler = func(fileName string, mediaID MediaID) {}
	}
	if h.PostCompleteHandler == nil {
		h.PostCompleteHandler = func(post *Post) {}
	}
	if h.ErrorHandler == nil {
		h.ErrorHandler = func(op string, err error) {
			l.Printf("%s: Error: %s", op, err.Error())
		}
	} else {
		errHandler := h.ErrorHandler
		h.ErrorHandler = func(op string, err error) {
			l.Printf("%s: Error: %s", op, err.Error())
			errHandler(op, err)
		}
	}
}
