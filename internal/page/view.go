package page

import "sync"

// Element IDs of the link page.
const (
	TotalLinks      = "totalLinks"
	TotalClicks     = "totalClicks"
	ActiveLinks     = "activeLinks"
	URLInput        = "urlInput"
	ExpirationInput = "expirationInput"
	ResultPanel     = "result"
	ErrorPanel      = "error"
	Loading         = "loading"
	ShortURL        = "shortUrl"
	OriginalURL     = "originalUrl"
	ShortCode       = "shortCode"
	ExpiresAt       = "expiresAt"
	ClickCount      = "clickCount"
	CopyButton      = "copyBtn"
	StatsButton     = "statsBtn"
	DownloadButton  = "downloadQR"
	QRCodeSurface   = "qrcode"
)

// View is the page surface the controller renders into. Unknown IDs read as empty and
// writes to them are dropped.
type View interface {
	Text(id string) string
	SetText(id, text string)
	Value(id string) string
	SetValue(id, value string)
	Show(id string)
	Hide(id string)
	Visible(id string) bool
	SetImage(id string, png []byte)
	Image(id string) []byte
	Clear(id string)
}

type element struct {
	text    string
	value   string
	visible bool
	image   []byte
}

// Document is an in-memory View safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*element
}

// NewDocument returns the link page in its initial state: counters at 0, panels hidden and
// the action buttons carrying their default labels.
func NewDocument() *Document {
	d := &Document{elements: make(map[string]*element)}

	for _, id := range []string{
		TotalLinks, TotalClicks, ActiveLinks, URLInput, ExpirationInput, ResultPanel, ErrorPanel,
		Loading, ShortURL, OriginalURL, ShortCode, ExpiresAt, ClickCount, CopyButton, StatsButton,
		DownloadButton, QRCodeSurface,
	} {
		d.elements[id] = &element{visible: true}
	}

	for _, id := range []string{TotalLinks, TotalClicks, ActiveLinks} {
		d.elements[id].text = "0"
	}
	for _, id := range []string{ResultPanel, ErrorPanel, Loading} {
		d.elements[id].visible = false
	}

	d.elements[CopyButton].text = "📋 Copy"
	d.elements[StatsButton].text = "📊 Refresh stats"
	d.elements[DownloadButton].text = "⬇️ Download QR"

	return d
}

func (d *Document) Text(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if el, ok := d.elements[id]; ok {
		return el.text
	}
	return ""
}

func (d *Document) SetText(id, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		el.text = text
	}
}

func (d *Document) Value(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if el, ok := d.elements[id]; ok {
		return el.value
	}
	return ""
}

func (d *Document) SetValue(id, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		el.value = value
	}
}

func (d *Document) Show(id string) {
	d.setVisible(id, true)
}

func (d *Document) Hide(id string) {
	d.setVisible(id, false)
}

func (d *Document) setVisible(id string, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		el.visible = visible
	}
}

func (d *Document) Visible(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if el, ok := d.elements[id]; ok {
		return el.visible
	}
	return false
}

func (d *Document) SetImage(id string, png []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		el.image = png
	}
}

func (d *Document) Image(id string) []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if el, ok := d.elements[id]; ok {
		return el.image
	}
	return nil
}

// Clear empties the element's text, value and image.
func (d *Document) Clear(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		el.text = ""
		el.value = ""
		el.image = nil
	}
}
