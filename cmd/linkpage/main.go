// Command linkpage is a terminal front end for the link shortener.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MikhailRaia/link-shortener/internal/client"
	"github.com/MikhailRaia/link-shortener/internal/clipboard"
	"github.com/MikhailRaia/link-shortener/internal/config"
	"github.com/MikhailRaia/link-shortener/internal/logger"
	"github.com/MikhailRaia/link-shortener/internal/page"
	"github.com/rs/zerolog/log"
)

const help = `commands:
  shorten <url> [hours]  create a short link
  copy                   copy the short link to the clipboard
  stats                  refresh the click count of the short link
  qr                     save the QR code as qrcode.png
  show                   print the page
  quit                   exit`

func main() {
	cfg, err := config.LoadPage(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	logger.InitConsole(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc := page.NewDocument()
	controller := page.NewController(
		client.New(cfg.APIBase, cfg.RequestTimeout),
		doc,
		clipboard.New(),
		page.DirDownloader{Dir: cfg.DownloadDir},
		page.Config{PollInterval: cfg.PollInterval},
	)

	events := make(chan page.Event)
	go readCommands(ctx, os.Stdin, os.Stdout, doc, events)

	fmt.Fprintln(os.Stdout, help)

	if err := controller.Run(ctx, events); err != nil {
		log.Fatal().Err(err).Msg("Link page stopped")
	}
}

func readCommands(ctx context.Context, in io.Reader, out io.Writer, doc *page.Document, events chan<- page.Event) {
	defer close(events)

	send := func(ev page.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var ev page.Event
		switch fields[0] {
		case "shorten":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: shorten <url> [hours]")
				continue
			}
			form := page.Form{URL: fields[1]}
			if len(fields) > 2 {
				form.Expiration = fields[2]
			}
			ev = page.SubmitEvent{Form: form}
		case "copy":
			ev = page.CopyEvent{}
		case "stats":
			ev = page.RefreshStatsEvent{}
		case "qr":
			ev = page.DownloadQREvent{}
		case "show":
			ev = page.FuncEvent(func() { render(out, doc, true) })
		case "quit", "exit":
			return
		default:
			fmt.Fprintln(out, help)
			continue
		}

		if !send(ev) {
			return
		}
		if fields[0] != "show" {
			if !send(page.FuncEvent(func() { render(out, doc, false) })) {
				return
			}
		}
	}
}

func render(out io.Writer, doc *page.Document, withQR bool) {
	fmt.Fprintf(out, "links: %s  clicks: %s  active: %s\n",
		doc.Text(page.TotalLinks), doc.Text(page.TotalClicks), doc.Text(page.ActiveLinks))

	if doc.Visible(page.ErrorPanel) {
		fmt.Fprintln(out, doc.Text(page.ErrorPanel))
	}

	if doc.Visible(page.ResultPanel) {
		fmt.Fprintf(out, "short:    %s  [%s]\n", doc.Value(page.ShortURL), doc.Text(page.CopyButton))
		fmt.Fprintf(out, "original: %s\n", doc.Text(page.OriginalURL))
		fmt.Fprintf(out, "code:     %s\n", doc.Text(page.ShortCode))
		fmt.Fprintf(out, "expires:  %s\n", doc.Text(page.ExpiresAt))
		fmt.Fprintf(out, "clicks:   %s  [%s]\n", doc.Text(page.ClickCount), doc.Text(page.StatsButton))
		if withQR {
			fmt.Fprint(out, doc.Text(page.QRCodeSurface))
		}
	}
}
