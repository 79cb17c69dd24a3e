package license_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
)

const demoFingerprint = "67:CD:BC:64:EE:BF:08:BC:0E:3F:C3:B9:E8:0D:9E:65:8A:01:B8:A9:5F:6A:33:65:6D:16:19:F3:98:BC:04:3D"

type fakeRemote struct {
	calls atomic.Int32
	valid bool
	err   error
	got   license.Identity
}

func (f *fakeRemote) Validate(ctx context.Context, clientID int, id license.Identity, appKey string) (bool, error) {
	f.calls.Add(1)
	f.got = id
	return f.valid, f.err
}

func TestIdentityNormalized(t *testing.T) {
	in := license.Identity{
		BundleID:               "com.example",
		ApplicationID:          "com.example.android",
		CertificateFingerprint: "AA:BB",
		Locale:                 "en_US",
	}

	tests := []struct {
		name     string
		platform license.Platform
		want     license.Identity
		appID    string
	}{
		{
			name:     "android",
			platform: license.Android,
			want: license.Identity{Platform: license.Android, ApplicationID: "com.example.android",
				CertificateFingerprint: "AA:BB", Locale: "en-US"},
			appID: "AA:BB",
		},
		{
			name:     "ios",
			platform: license.IOS,
			want:     license.Identity{Platform: license.IOS, BundleID: "com.example", Locale: "en-US"},
			appID:    "com.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := in
			id.Platform = tt.platform
			got := id.Normalized()
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if got.AppIdentifier() != tt.appID {
				t.Errorf("expected app identifier %q, got %q", tt.appID, got.AppIdentifier())
			}
		})
	}
}

func TestAllowListValidation(t *testing.T) {
	tests := []struct {
		name     string
		identity license.Identity
		want     bool
	}{
		{"demo bundle", license.Identity{Platform: license.IOS, BundleID: "ag.sportradar.SRAVPlayerDemo"}, true},
		{"other bundle", license.Identity{Platform: license.IOS, BundleID: "com.other"}, false},
		{"demo fingerprint", license.Identity{Platform: license.Android, CertificateFingerprint: demoFingerprint}, true},
		{"fingerprint wrong case", license.Identity{Platform: license.Android, CertificateFingerprint: strings.ToLower(demoFingerprint)}, false},
		{"bundle on android", license.Identity{Platform: license.Android, BundleID: "ag.sportradar.SRAVPlayerDemo"}, false},
		{"empty", license.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := license.New(license.DefaultClientConfig(), tt.identity)
			if cfg.Validity().Value() != license.Unknown {
				t.Fatal("expected unknown before validation")
			}
			got, err := cfg.Validate(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			want := license.Invalid
			if tt.want {
				want = license.Valid
			}
			if cfg.Validity().Value() != want {
				t.Errorf("expected validity %s, got %s", want, cfg.Validity().Value())
			}
		})
	}
}

func TestRemoteValidationRunsOnce(t *testing.T) {
	remote := &fakeRemote{valid: true}
	client := license.ClientConfig{AppKey: "key", ClientID: 42}
	cfg := license.New(client, license.Identity{Platform: license.IOS, BundleID: "com.x"},
		license.WithRemoteValidator(remote))

	for i := 0; i < 3; i++ {
		ok, err := cfg.Validate(context.Background())
		if !ok || err != nil {
			t.Fatalf("expected valid, got %v, %v", ok, err)
		}
	}
	if n := remote.calls.Load(); n != 1 {
		t.Errorf("expected one remote call, got %d", n)
	}
	if remote.got.BundleID != "com.x" {
		t.Errorf("expected identity to be forwarded, got %+v", remote.got)
	}
	if cfg.Mode() != license.ModeRemote {
		t.Errorf("expected remote mode, got %s", cfg.Mode())
	}
}

func TestRemoteValidationFailure(t *testing.T) {
	boom := errors.New("boom")
	remote := &fakeRemote{err: boom}
	cfg := license.New(license.ClientConfig{AppKey: "key", ClientID: 1}, license.Identity{Platform: license.IOS},
		license.WithRemoteValidator(remote))

	ok, err := cfg.Validate(context.Background())
	if ok || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v, %v", ok, err)
	}
	if cfg.Validity().Value() != license.Invalid {
		t.Error("expected invalid after remote failure")
	}
}

func TestRemoteValidationRequiresCredentials(t *testing.T) {
	remote := &fakeRemote{valid: true}
	cfg := license.New(license.ClientConfig{ClientID: -1}, license.Identity{Platform: license.IOS},
		license.WithRemoteValidator(remote))

	_, err := cfg.Validate(context.Background())
	if !errors.Is(err, license.ErrInvalidClientConfig) {
		t.Errorf("expected ErrInvalidClientConfig, got %v", err)
	}
	if remote.calls.Load() != 0 {
		t.Error("remote should not be called")
	}
}

func TestAnalyticsDefaultsToNop(t *testing.T) {
	cfg := license.New(license.DefaultClientConfig(), license.Identity{})
	if _, ok := cfg.Analytics().(analytics.Nop); !ok {
		t.Errorf("expected Nop provider, got %T", cfg.Analytics())
	}

	rec := &analytics.Recorder{}
	client := license.DefaultClientConfig()
	client.Analytics = rec
	cfg = license.New(client, license.Identity{})
	if cfg.Analytics() != rec {
		t.Error("expected host provider")
	}
}
