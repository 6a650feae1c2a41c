package services

import "errors"

// ErrDocumentParse means the uploaded bytes are not a parseable PDF. It is
// a client error; callers do not retry.
var ErrDocumentParse = errors.New("services: document is not a parseable PDF")

// ErrUnsupportedFormat means the requested mind-map output format is not one
// of the supported variants. It is raised before any message is built or any
// outbound call is made.
var ErrUnsupportedFormat = errors.New("services: unsupported output format, choose 'mermaid' or 'json'")
