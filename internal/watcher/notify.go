package watcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Notify sends a desktop notification for the given alert. On macOS it uses
// osascript, on Linux it tries notify-send. Otherwise it prints to stderr.
func Notify(alert Alert) error {
	switch runtime.GOOS {
	case "darwin":
		return notifyMacOS(alert)
	case "linux":
		return notifyLinux(alert)
	default:
		return notifyFallback(alert)
	}
}

// notifyMacOS sends a notification via osascript on macOS.
func notifyMacOS(alert Alert) error {
	script := fmt.Sprintf(
		`display notification %q with title "sentimeter" subtitle %q`,
		alert.Message, alert.Title,
	)
	cmd := exec.Command("osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		// Fall back to stderr if osascript fails.
		return notifyFallback(alert)
	}
	return nil
}

// notifyLinux sends a notification via notify-send on Linux.
func notifyLinux(alert Alert) error {
	_, err := exec.LookPath("notify-send")
	if err != nil {
		return notifyFallback(alert)
	}

	title := fmt.Sprintf("sentimeter: %s", alert.Title)
	args := []string{title, alert.Message}
	if alert.Level == "critical" {
		args = append([]string{"--urgency=critical"}, args...)
	}
	cmd := exec.Command("notify-send", args...)
	if err := cmd.Run(); err != nil {
		return notifyFallback(alert)
	}
	return nil
}

// notifyFallback prints the alert to stderr.
func notifyFallback(alert Alert) error {
	return WriteAlert(os.Stderr, alert)
}

// WriteAlert prints one alert line to w.
func WriteAlert(w io.Writer, alert Alert) error {
	_, err := fmt.Fprintf(w, "[%s] %s %s: %s\n",
		alert.Time.Format("15:04:05"), alert.Level, alert.Title, alert.Message)
	return err
}
