//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// osascriptNotifier posts macOS notifications through AppleScript.
type osascriptNotifier struct{}

func newPlatformNotifier() Notifier {
	return &osascriptNotifier{}
}

func (n *osascriptNotifier) Send(title, message string) error {
	return n.post(title, message, false)
}

func (n *osascriptNotifier) SendWithSound(title, message string) error {
	return n.post(title, message, true)
}

func (n *osascriptNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *osascriptNotifier) post(title, message string, sound bool) error {
	script := fmt.Sprintf("display notification %q with title %q",
		escapeAppleScript(message), escapeAppleScript(title))
	if sound {
		script += ` sound name "default"`
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// escapeAppleScript guards against quotes breaking out of the script string.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
