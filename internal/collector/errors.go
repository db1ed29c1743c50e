package collector

import "github.com/maxbolgarin/errm"

var (
	errEmptyBranch  = errm.New("source and destination branches are required")
	errMalformedLog = errm.New("malformed git log record")
)
