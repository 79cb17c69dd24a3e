// Package sdkerr holds the closed catalogue of player errors surfaced to hosts.
package sdkerr

import "fmt"

// Domain groups related error descriptors.
type Domain string

// Error domains.
const (
	DomainGeneric      Domain = "generic"
	DomainConfig       Domain = "config"
	DomainEmbed        Domain = "embed"
	DomainStreamAccess Domain = "stream_access"
	DomainStreamData   Domain = "stream_data"
	DomainStream       Domain = "stream"
	DomainHeartbeat    Domain = "heartbeat"
	DomainChromecast   Domain = "chromecast"
)

// Error is an immutable descriptor for a failure the player can report.
// Catalogue entries are shared package-level values and must not be mutated.
type Error struct {
	Name         string `json:"name"`
	InternalCode int    `json:"internalCode"`
	ExternalCode int    `json:"externalCode"`
	Title        string `json:"errorTitle"`
	UserMessage  string `json:"userMessage"`
	Message      string `json:"errorMessage"`
	Domain       Domain `json:"domain"`

	flash bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Title, e.ExternalCode, e.Message)
}

// Is matches another *Error with the same internal and external codes, so
// errors.Is works against catalogue values and equivalent custom errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.InternalCode == t.InternalCode && e.ExternalCode == t.ExternalCode
}

// IsFlash reports whether the error belongs to the flash stream-error subgroup.
func (e *Error) IsFlash() bool {
	return e.flash
}

// ToJSON returns the error as a map for transport.
func (e *Error) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"internalCode": e.InternalCode,
		"externalCode": e.ExternalCode,
		"errorTitle":   e.Title,
		"userMessage":  e.UserMessage,
		"errorMessage": e.Message,
		"domain":       string(e.Domain),
	}
}

// Custom builds an ad-hoc error that is not part of the catalogue.
func Custom(internalCode, externalCode int, title, userMessage, message string) *Error {
	return &Error{
		Name:         "Custom",
		InternalCode: internalCode,
		ExternalCode: externalCode,
		Title:        title,
		UserMessage:  userMessage,
		Message:      message,
		Domain:       DomainGeneric,
	}
}

// ByExternalCode returns the first catalogue entry with the given external code.
func ByExternalCode(code int) (*Error, bool) {
	for _, e := range catalogue {
		if e.ExternalCode == code {
			return e, true
		}
	}
	return nil, false
}

// ByInternalCode returns the first catalogue entry with the given internal code.
func ByInternalCode(code int) (*Error, bool) {
	for _, e := range catalogue {
		if e.InternalCode == code {
			return e, true
		}
	}
	return nil, false
}

// All returns a copy of the catalogue in lookup order.
func All() []*Error {
	out := make([]*Error, len(catalogue))
	copy(out, catalogue)
	return out
}
