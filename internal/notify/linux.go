//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// notifySendNotifier posts Linux desktop notifications via notify-send.
type notifySendNotifier struct{}

func newPlatformNotifier() Notifier {
	return &notifySendNotifier{}
}

func (n *notifySendNotifier) Send(title, message string) error {
	return n.post(title, message, false)
}

// SendWithSound raises the urgency hint; whether that actually plays a
// sound depends on the notification daemon.
func (n *notifySendNotifier) SendWithSound(title, message string) error {
	return n.post(title, message, true)
}

func (n *notifySendNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *notifySendNotifier) post(title, message string, sound bool) error {
	args := []string{"--app-name=studydesk"}
	if sound {
		args = append(args, "--urgency=normal")
	}
	args = append(args, title, message)

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
