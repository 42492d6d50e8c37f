package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// TagConfiguration marks a missing or blank required setting. These
	// errors are raised before any network call is attempted.
	TagConfiguration = goerr.NewTag("configuration")

	// TagNotFound marks a referenced incident (or related entity) that does
	// not exist.
	TagNotFound = goerr.NewTag("not_found")

	// TagValidation marks an entity rejected at the store boundary.
	TagValidation = goerr.NewTag("validation")

	// TagConflict marks a remote conflict response. Folder creation handles
	// 409 internally; anywhere else the tag propagates.
	TagConflict = goerr.NewTag("conflict")

	// TagRemoteRequest marks a non-2xx remote response. Status code and body
	// are preserved as error values.
	TagRemoteRequest = goerr.NewTag("remote_request")

	// TagIncompleteUpload marks a chunked upload session that consumed all
	// bytes without the remote API returning an item descriptor.
	TagIncompleteUpload = goerr.NewTag("incomplete_upload")

	// TagDatabase marks repository failures.
	TagDatabase = goerr.NewTag("database")
)
