package notify

import (
	"os/exec"

	"github.com/leonardotrapani/whisptube/internal/logging"
)

const appName = "Whisptube"

// Notifier reports the outcome of a run to the user.
type Notifier interface {
	Notify(title, message string)
	Error(msg string)
}

// notifySend is the desktop notification binary.
var notifySend = "notify-send"

type Desktop struct {
	Log logging.Logger
}

func (d Desktop) Notify(title, message string) {
	cmd := exec.Command(notifySend, "-a", appName, title, message)
	if err := cmd.Run(); err != nil {
		logging.OrDiscard(d.Log).Warnf("Failed to send notification: %v", err)
	}
}

func (d Desktop) Error(msg string) {
	cmd := exec.Command(notifySend, "-a", appName, "-u", "critical", appName+" Error", msg)
	if err := cmd.Run(); err != nil {
		logging.OrDiscard(d.Log).Warnf("Failed to send error notification: %v", err)
	}
}

// Log writes notifications to the run log instead of the desktop.
type Log struct {
	Log logging.Logger
}

func (l Log) Notify(title, message string) {
	logging.OrDiscard(l.Log).Infof("%s: %s", title, message)
}

func (l Log) Error(msg string) {
	logging.OrDiscard(l.Log).Errorf("%s Error: %s", appName, msg)
}

// Nop is a Notifier that does absolutely nothing.
type Nop struct{}

func (Nop) Notify(title, message string) {}
func (Nop) Error(msg string)             {}

// New picks the notifier for a notifications.type value.
func New(enabled bool, kind string, log logging.Logger) Notifier {
	if !enabled {
		return Nop{}
	}
	switch kind {
	case "desktop":
		return Desktop{Log: log}
	case "log":
		return Log{Log: log}
	default:
		return Nop{}
	}
}
