package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON writes the report data as indented JSON
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return errm.Wrap(err, "failed to encode report")
	}
	return nil
}
