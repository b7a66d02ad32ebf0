//go:build !darwin && !linux

package notify

// Platforms without a known notification mechanism fall back to the
// shared no-op notifier.
func newPlatformNotifier() Notifier {
	return &noopNotifier{}
}
