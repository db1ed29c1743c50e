package agent

import "github.com/maxbolgarin/errm"

var (
	ErrMissingAPIKey = errm.New("AI service API key is required")
	errEmptyResponse = errm.New("empty response from API")
)
