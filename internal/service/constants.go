package service

const (
	userLineTemplate      = "User: %s\n"
	assistantLineTemplate = "Assistant: %s\n"
)

const (
	contentTypePDF = "application/pdf"

	uploadStatusOK    = "ok"
	uploadStatusError = "error"
)
