package watcher

import "log"

// Permission is the tri-state desktop notification capability. Alerting
// branches only on this state, never on platform feature detection.
type Permission int

const (
	// PermissionNotAsked means the user was never prompted.
	PermissionNotAsked Permission = iota
	// PermissionGranted means desktop notifications may be shown.
	PermissionGranted
	// PermissionDenied means the user refused desktop notifications.
	PermissionDenied
)

// Desktop is a system-level notification sink. Push may fail; the watcher
// treats failures as best-effort and falls back to the in-app sink.
type Desktop interface {
	Permission() Permission
	Push(title, body string) error
}

// InApp is the always-available in-app message sink.
type InApp interface {
	Show(message string)
}

// ConsoleDesktop writes notifications to a logger. It stands in for a real
// desktop sink when the watcher runs as a headless agent.
type ConsoleDesktop struct {
	Logger *log.Logger
}

// Permission always reports granted for the console sink.
func (c *ConsoleDesktop) Permission() Permission { return PermissionGranted }

// Push logs the notification.
func (c *ConsoleDesktop) Push(title, body string) error {
	c.Logger.Printf("notification: %s: %s", title, body)
	return nil
}

// ConsoleInApp logs in-app messages.
type ConsoleInApp struct {
	Logger *log.Logger
}

// Show logs the message.
func (c *ConsoleInApp) Show(message string) {
	c.Logger.Printf("alert: %s", message)
}
