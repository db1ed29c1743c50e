package notifier

import "github.com/maxbolgarin/errm"

var ErrNotConfigured = errm.New("smtp host or recipients are not configured")
