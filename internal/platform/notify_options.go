package platform

import "time"

// AppName identifies the application to the notification service.
const AppName = "Glassboard"

// DefaultTimeout is how long a notification stays visible when Options
// does not say otherwise.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where supported.
	IconPath string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
