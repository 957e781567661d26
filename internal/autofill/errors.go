// Package autofill turns uploaded resume files into structured ResumeData,
// either through the external parsing endpoint or a local LLM extraction
// path, and never touches the in-progress document on failure.
package autofill

import "fmt"

// UpstreamError indicates the external parse endpoint or the LLM provider
// failed. The caller's document state is left untouched.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}
