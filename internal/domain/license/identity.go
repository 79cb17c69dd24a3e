// Package license validates that the host application may use the player.
package license

import (
	"strings"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/infra/logging"
)

// Platform is the host operating system family.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

// Identity describes the host application. Only the fields that apply to the
// platform are kept: the bundle id on iOS, the application id and signing
// certificate fingerprint on Android.
type Identity struct {
	Platform               Platform
	BundleID               string
	ApplicationID          string
	CertificateFingerprint string
	Locale                 string
}

// Normalized drops the fields that do not apply to the platform and turns
// underscore locales ("en_US") into BCP 47 form ("en-US").
func (i Identity) Normalized() Identity {
	out := Identity{
		Platform: i.Platform,
		Locale:   strings.ReplaceAll(i.Locale, "_", "-"),
	}
	switch i.Platform {
	case Android:
		out.ApplicationID = i.ApplicationID
		out.CertificateFingerprint = i.CertificateFingerprint
	case IOS:
		out.BundleID = i.BundleID
	}
	return out
}

// AppIdentifier is the value sent for licensing: the certificate fingerprint
// on Android and the bundle id on iOS.
func (i Identity) AppIdentifier() string {
	if i.Platform == Android {
		return i.CertificateFingerprint
	}
	return i.BundleID
}

// ClientConfig is the host-supplied SDK configuration.
type ClientConfig struct {
	LicenseKey string
	AppKey     string
	ClientID   int
	Analytics  analytics.Provider
	Logging    logging.Config
}

// DefaultClientConfig returns a config with error-only logging and no analytics.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ClientID: -1,
		Logging:  logging.DefaultConfig(),
	}
}
