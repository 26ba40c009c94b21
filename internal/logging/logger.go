// Package logging is the structured logger every server component receives.
// SlogLogger backs it in production and tests alike.
package logging

import "context"

// Logger takes a message plus alternating keys and values:
//
//	log.Info(ctx, "player registered", "player_name", name, "email", email)
//
// The context is passed through to the handler so request-scoped values can
// be picked up.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds attributes to every later record, e.g. a component name.
	With(args ...any) Logger
}
