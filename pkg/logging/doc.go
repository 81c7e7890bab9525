// Package logging configures structured logging for userdesk.
//
// It wraps log/slog so every component logs the same way:
//
//	log := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//	log.Info("users refreshed", "count", 3)
//
// Components accept a *slog.Logger through an option and fall back to
// logging.Nop() when none is given.
package logging
