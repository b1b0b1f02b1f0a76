// Package dto defines the wire envelope of the API. Every mutating
// operation answers with a Status flag: business failures keep HTTP 200
// and carry the reason in Errors, authorization failures use HTTP 403
// with a single Error string.
package dto

// Envelope is the uniform response body
type Envelope map[string]any

// OK builds a success envelope, merging in operation counters or payload
func OK(extra map[string]any) Envelope {
	env := Envelope{"Status": true}
	for k, v := range extra {
		env[k] = v
	}
	return env
}

// Fail builds a soft-failure envelope
func Fail(errs any) Envelope {
	return Envelope{"Status": false, "Errors": errs}
}

// Forbidden builds the authorization-failure envelope
func Forbidden(message string) Envelope {
	return Envelope{"Status": false, "Error": message}
}
