package manager

import (
	"log/slog"

	"github.com/windfab/towerdesk/record"
)

// RenderFunc receives the complete current visible subset each time it
// changes (after a store mutation, a filter change, or a refresh) — never a
// delta. The presentation layer owns diffing and display reuse.
type RenderFunc func(visible []record.Record)

// Kind is the severity of a user-facing notification.
type Kind string

// Notification kinds.
const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notifier receives best-effort user notifications after mutations. A nil
// notifier is tolerated and its absence never affects a mutation's outcome.
type Notifier interface {
	Notify(kind Kind, message string)
}

// ActivityLogger receives best-effort activity records after successful
// mutations.
type ActivityLogger interface {
	LogActivity(category, action, details string)
}

// SlogNotifier emits notifications to a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n *SlogNotifier) Notify(kind Kind, message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch kind {
	case KindError:
		logger.Error(message, "kind", string(kind))
	case KindWarning:
		logger.Warn(message, "kind", string(kind))
	default:
		logger.Info(message, "kind", string(kind))
	}
}

// SlogActivity records activity entries to a structured logger.
type SlogActivity struct {
	Logger *slog.Logger
}

// LogActivity implements ActivityLogger.
func (a *SlogActivity) LogActivity(category, action, details string) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("activity",
		"category", category,
		"action", action,
		"details", details,
	)
}
