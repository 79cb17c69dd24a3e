package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	avplayer "github.com/edumarques81/avplayer-sdk"
	"github.com/edumarques81/avplayer-sdk/internal/config"
	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/infra/calm"
)

var errInvalidLicense = errors.New("license is not valid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured license",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initialize(cmd.Context(), settings, analytics.Logger{})
		if err != nil {
			return fail(cmd, err)
		}
		if !cfg.IsValid() {
			return fail(cmd, fmt.Errorf("%w for %s", errInvalidLicense, cfg.Identity().AppIdentifier()))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "license valid (%s, %s)\n", cfg.Mode(), cfg.Identity().AppIdentifier())
		return nil
	},
}

// initialize validates the license the way a host would. Tracked events go
// to sink.
func initialize(ctx context.Context, s config.Settings, sink analytics.Provider) (*avplayer.Configuration, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := s.Client()
	if err != nil {
		return nil, err
	}
	client.Analytics = sink

	var opts []avplayer.Option
	if s.License.Remote {
		opts = append(opts, avplayer.WithRemoteLicensing(calm.WithBaseURL(s.License.BaseURL)))
	}

	cfg, err := avplayer.Initialize(ctx, client, s.AppIdentity(), opts...)
	if err != nil {
		return nil, fmt.Errorf("validate license: %w", err)
	}
	return cfg, nil
}
