package core

import (
	"encoding/json"
	"io"
)

// MarshalReport pretty-prints a change report as JSON for humans or pipelines.
func MarshalReport(w io.Writer, r *ChangeReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// UnmarshalReport decodes a change report, useful for ingestion tests.
func UnmarshalReport(r io.Reader) (*ChangeReport, error) {
	var out ChangeReport
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
