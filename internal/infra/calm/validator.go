package calm

import (
	"context"

	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
)

// Validator checks licenses through CALM. It implements license.RemoteValidator.
type Validator struct {
	client *Client
}

// NewValidator wraps a client.
func NewValidator(client *Client) *Validator {
	return &Validator{client: client}
}

// ParamFor returns the app identifier parameter name for a platform.
func ParamFor(p license.Platform) string {
	if p == license.Android {
		return ParamPackageName
	}
	return ParamBundleID
}

// Validate implements license.RemoteValidator.
func (v *Validator) Validate(ctx context.Context, clientID int, identity license.Identity, appKey string) (bool, error) {
	resp, err := v.client.ValidateClient(ctx, clientID, identity.AppIdentifier(), appKey)
	if err != nil {
		return false, err
	}
	return resp.Valid(), nil
}
