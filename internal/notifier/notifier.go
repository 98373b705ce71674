// Package notifier implements the outbound reminder channels. Every channel
// is fire-and-forget: Send reports success or failure as a Result and never
// panics past its boundary.
package notifier

// Result is the outcome of a single channel dispatch attempt
type Result struct {
	Success bool   `json:"success"`
	Ref     string `json:"ref,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok builds a successful result with an optional provider reference
func Ok(ref string) Result {
	return Result{Success: true, Ref: ref}
}

// Fail builds a failed result from an error
func Fail(err error) Result {
	return Result{Success: false, Error: err.Error()}
}
