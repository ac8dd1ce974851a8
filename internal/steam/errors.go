package steam

import "fmt"

// RemoteError is returned for any non-2xx response from the Steam Web API.
// Body holds the raw response text and is the cause of the failure.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Reason     string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Reason, e.Endpoint)
}

// DecodeError is returned when a 2xx body cannot be decoded into the endpoint's
// schema, including bodies that are missing a required field.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func missingField(endpoint, field string) error {
	return &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("missing required field %q", field)}
}
