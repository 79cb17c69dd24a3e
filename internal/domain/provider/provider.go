// Package provider resolves host input into a playable asset.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
)

// Input is whatever a host passes to identify the media to play. Each Provider
// documents the input types it accepts.
type Input any

// Provider turns an Input into an Asset.
type Provider interface {
	Provide(ctx context.Context, input Input) (channel.Asset, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context, input Input) (channel.Asset, error)

func (f Func) Provide(ctx context.Context, input Input) (channel.Asset, error) {
	return f(ctx, input)
}

// Errors returned by Default.
var (
	ErrUnsupportedInput = errors.New("provider: unsupported input")
	ErrEmptyStreamURL   = errors.New("provider: empty stream url")
)

// DefaultInput carries a ready-to-play stream URL.
type DefaultInput struct {
	StreamURL string `json:"streamUrl"`
}

// Default passes a DefaultInput's stream URL through unchanged.
type Default struct{}

func (Default) Provide(ctx context.Context, input Input) (channel.Asset, error) {
	if err := ctx.Err(); err != nil {
		return channel.Asset{}, err
	}

	var in DefaultInput
	switch v := input.(type) {
	case DefaultInput:
		in = v
	case *DefaultInput:
		if v == nil {
			return channel.Asset{}, fmt.Errorf("%w: nil", ErrUnsupportedInput)
		}
		in = *v
	default:
		return channel.Asset{}, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}

	if strings.TrimSpace(in.StreamURL) == "" {
		return channel.Asset{}, ErrEmptyStreamURL
	}
	return channel.Asset{StreamURL: in.StreamURL}, nil
}
