package page

import "context"

// Event is a user action delivered to Controller.Run.
type Event interface {
	apply(ctx context.Context, c *Controller)
}

// SubmitEvent submits the shorten form.
type SubmitEvent struct {
	Form Form
}

func (e SubmitEvent) apply(ctx context.Context, c *Controller) {
	c.Submit(ctx, e.Form)
}

// CopyEvent copies the short URL to the clipboard.
type CopyEvent struct{}

func (CopyEvent) apply(_ context.Context, c *Controller) {
	c.Copy()
}

// RefreshStatsEvent reloads the stats of the current link.
type RefreshStatsEvent struct{}

func (RefreshStatsEvent) apply(ctx context.Context, c *Controller) {
	c.RefreshStats(ctx)
}

// DownloadQREvent saves the current QR code.
type DownloadQREvent struct{}

func (DownloadQREvent) apply(_ context.Context, c *Controller) {
	c.DownloadQR()
}

// FuncEvent runs an arbitrary function on the event loop, after every event sent before it.
type FuncEvent func()

func (f FuncEvent) apply(_ context.Context, _ *Controller) {
	f()
}
