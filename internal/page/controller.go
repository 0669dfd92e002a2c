// Package page drives the link shortener page: it submits links, renders the result and its
// QR code, and keeps the service counters fresh.
package page

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/client"
	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/qrcode"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPollInterval = 10 * time.Second

	QRFileName = "qrcode.png"

	copiedLabel  = "✅ Copied!"
	updatedLabel = "✅ Updated!"

	errorPrefix         = "❌ "
	shortenFallbackText = "Error shortening the link"
	connectionErrorText = "Error connecting to server"
)

// API is the part of the link shortener backend the page uses.
type API interface {
	SystemStats(ctx context.Context) (model.SystemStats, error)
	Shorten(ctx context.Context, req model.CreateLinkRequest) (client.Link, error)
	LinkStats(ctx context.Context, code string) (client.Link, error)
}

// Clipboard receives the short URL on copy.
type Clipboard interface {
	WriteAll(text string) error
}

// Downloader stores a downloaded file under name.
type Downloader interface {
	Save(name string, data []byte) error
}

// Config holds the page timings. Zero values take the defaults.
type Config struct {
	PollInterval      time.Duration
	AnimationDuration time.Duration
	AnimationFrame    time.Duration
	FlashDuration     time.Duration
	Location          *time.Location
}

// Form is a submission of the shorten form.
type Form struct {
	URL        string
	Expiration string
}

// Controller handles page events and renders their outcome into a View.
type Controller struct {
	api        API
	view       View
	clipboard  Clipboard
	downloader Downloader
	generateQR func(content string) (*qrcode.Code, error)

	session  *Session
	animator *Animator
	flasher  *flasher

	pollInterval time.Duration
	location     *time.Location
}

// NewController returns a Controller rendering into view, with defaults filled into cfg.
func NewController(api API, view View, clip Clipboard, downloader Downloader, cfg Config) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Controller{
		api:          api,
		view:         view,
		clipboard:    clip,
		downloader:   downloader,
		generateQR:   qrcode.Generate,
		session:      &Session{},
		animator:     NewAnimator(view, cfg.AnimationDuration, cfg.AnimationFrame),
		flasher:      newFlasher(view, cfg.FlashDuration),
		pollInterval: cfg.PollInterval,
		location:     cfg.Location,
	}
}

// Session returns the state of the current link.
func (c *Controller) Session() *Session {
	return c.session
}

// Run loads the counters, keeps polling them and handles events one at a time in arrival
// order. It returns when ctx is done or events is closed.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.poll(ctx)
	}()

	defer func() {
		cancel()
		wg.Wait()
		c.animator.Stop()
		c.flasher.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			ev.apply(ctx, c)
		}
	}
}

func (c *Controller) poll(ctx context.Context) {
	c.LoadStats(ctx)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.LoadStats(ctx)
		}
	}
}

// LoadStats fetches the service counters and animates them to the new values. Failures leave
// the counters as they are.
func (c *Controller) LoadStats(ctx context.Context) {
	stats, err := c.api.SystemStats(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Error loading stats")
		}
		return
	}

	c.animateCounter(TotalLinks, stats.TotalLinks)
	c.animateCounter(TotalClicks, stats.TotalClicks)
	c.animateCounter(ActiveLinks, stats.ActiveLinks)
}

func (c *Controller) animateCounter(id string, target int64) {
	from, _ := parseLeadingInt(c.view.Text(id))
	c.animator.Animate(id, from, target)
}

// Submit shortens form.URL and renders the outcome.
func (c *Controller) Submit(ctx context.Context, form Form) {
	c.view.Hide(ResultPanel)
	c.view.Hide(ErrorPanel)
	c.view.Show(Loading)

	hours := ParseExpirationHours(form.Expiration)

	link, err := c.api.Shorten(ctx, model.CreateLinkRequest{
		URL:             form.URL,
		ExpirationHours: &hours,
	})

	c.view.Hide(Loading)

	if err != nil {
		c.showError(err)
		return
	}

	c.view.SetText(OriginalURL, link.OriginalURL)
	c.view.SetText(ShortCode, link.ShortCode)
	c.view.SetValue(ShortURL, link.ShortURL)
	c.view.SetText(ExpiresAt, formatExpiry(link.ExpiresAt, c.location))
	c.view.SetText(ClickCount, strconv.FormatInt(link.ClickCount, 10))

	qr := c.renderQRCode(link.ShortURL)
	c.session.Replace(link, qr)

	c.view.Show(ResultPanel)

	c.LoadStats(ctx)
}

func (c *Controller) showError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = shortenFallbackText
		}
		c.view.SetText(ErrorPanel, errorPrefix+message)
	} else {
		log.Error().Err(err).Msg("Error shortening link")
		c.view.SetText(ErrorPanel, errorPrefix+connectionErrorText)
	}

	c.view.Show(ErrorPanel)
}

// renderQRCode clears the QR surface and draws content into it. On failure the surface stays
// empty and nil is returned.
func (c *Controller) renderQRCode(content string) *qrcode.Code {
	c.view.Clear(QRCodeSurface)

	qr, err := c.generateQR(content)
	if err != nil {
		log.Error().Err(err).Str("content", content).Msg("Error generating QR code")
		return nil
	}

	c.view.SetImage(QRCodeSurface, qr.PNG)
	c.view.SetText(QRCodeSurface, qr.Art)
	return qr
}

// Copy puts the short URL on the clipboard.
func (c *Controller) Copy() {
	if err := c.clipboard.WriteAll(c.view.Value(ShortURL)); err != nil {
		log.Error().Err(err).Msg("Error copying short URL")
		return
	}

	c.flasher.Flash(CopyButton, copiedLabel)
}

// RefreshStats reloads the click count and expiry of the current link.
func (c *Controller) RefreshStats(ctx context.Context) {
	code := c.session.ShortCode()
	if code == "" {
		return
	}

	stats, err := c.api.LinkStats(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("shortCode", code).Msg("Error refreshing stats")
		return
	}

	c.session.UpdateStats(code, stats)
	c.view.SetText(ClickCount, strconv.FormatInt(stats.ClickCount, 10))
	c.view.SetText(ExpiresAt, formatExpiry(stats.ExpiresAt, c.location))

	c.flasher.Flash(StatsButton, updatedLabel)
}

// DownloadQR saves the current QR code as QRFileName.
func (c *Controller) DownloadQR() {
	qr := c.session.QRCode()
	if qr == nil {
		return
	}

	if err := c.downloader.Save(QRFileName, qr.PNG); err != nil {
		log.Error().Err(err).Msg("Error downloading QR code")
	}
}
