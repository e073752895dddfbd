// Package batch replays an mbox archive of voicemail notifications through
// the same per-message conversion pipeline the stdin mode uses. Failures of
// individual messages are counted, logged and skipped; an archive replay
// should not die on its worst message.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/pterm/pterm"

	"github.com/dhcgn/voicemail-to-mp3/dispatcher"
	"github.com/dhcgn/voicemail-to-mp3/stats"
)

// Options configures one archive run.
type Options struct {
	MboxPath      string
	IncludeHeader []string
	ExcludeHeader []string

	// ShowProgress enables the terminal progress bar. Only sensible when
	// the sink is not stdout.
	ShowProgress bool
}

// Run streams the archive and converts every selected message.
func Run(ctx context.Context, opts Options, d *dispatcher.Dispatcher, logger *slog.Logger) (stats.Summary, error) {
	m, err := newMatcher(opts.IncludeHeader, opts.ExcludeHeader)
	if err != nil {
		return stats.Summary{}, err
	}

	total, err := countMessages(opts.MboxPath)
	if err != nil {
		return stats.Summary{}, err
	}

	var bar *pterm.ProgressbarPrinter
	if opts.ShowProgress {
		bar, _ = pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Converting voicemail messages").
			Start()
	}

	file, err := os.Open(opts.MboxPath)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	collector := stats.NewCollector()
	reader := mboxlib.NewReader(file)

	for idx := 0; ; idx++ {
		if err := ctx.Err(); err != nil {
			return collector.Snapshot(), err
		}

		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return collector.Snapshot(), fmt.Errorf("message %d: %w", idx, err)
		}

		raw, err := io.ReadAll(msgReader)
		if err != nil {
			return collector.Snapshot(), fmt.Errorf("message %d read: %w", idx, err)
		}

		if !m.allows(raw) {
			collector.Record(stats.OutcomeSkipped, nil)
			advance(bar)
			continue
		}

		converted, err := d.RunMessage(ctx, raw)
		switch {
		case err != nil:
			logger.Error("message conversion failed", "index", idx, "err", err)
			collector.Record(stats.OutcomeFailed, err)
		case converted:
			collector.Record(stats.OutcomeConverted, nil)
		default:
			collector.Record(stats.OutcomePassthrough, nil)
		}
		advance(bar)
	}

	if bar != nil {
		_, _ = bar.Stop()
	}

	summary := collector.Snapshot()
	logger.Info("batch summary", summary.LogAttrs()...)
	return summary, nil
}

func advance(bar *pterm.ProgressbarPrinter) {
	if bar != nil {
		bar.Increment()
	}
}

// countMessages walks the archive once so the progress bar has a total.
func countMessages(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	reader := mboxlib.NewReader(file)
	count := 0
	for {
		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return 0, err
		}
		if _, err := io.Copy(io.Discard, msgReader); err != nil {
			// Count it anyway; the conversion pass will report the error.
			count++
			continue
		}
		count++
	}
}
