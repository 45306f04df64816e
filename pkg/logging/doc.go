// Package logging configures the structured logger used by the gateway
// client.
//
// The client emits two debug lines per gateway call, one for the
// request and one for the response, both with card data masked. This
// package wraps log/slog so applications can pick a level and format
// once and hand the resulting logger to pagador.WithLogger:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	client := pagador.New(merchantID, pagador.WithLogger(logger))
//
// Use Nop for a logger that discards everything.
package logging
