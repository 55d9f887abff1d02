// Package batch decodes many independent transmissions concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/danmuck/pktdecode/internal/protocol/packet"
	"github.com/danmuck/pktdecode/internal/report"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// maxLineBytes bounds one input line; it covers DefaultLimits().MaxInputDigits.
const maxLineBytes = 2 << 20

// Item is one transmission and the 1-based line it came from.
type Item struct {
	Line int
	Hex  string
}

type Options struct {
	Workers  int
	FailFast bool
	Mode     report.Mode
	Limits   packet.Limits
	// Logger is shared by all workers, so its writer must be safe for
	// concurrent use (see zerolog.SyncWriter). Nil uses the global logger.
	Logger *zerolog.Logger
}

// ReadItems splits r into one item per non-blank line.
func ReadItems(r io.Reader) ([]Item, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var items []Item
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		items = append(items, Item{Line: line, Hex: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input line %d: %w", line+1, err)
	}
	return items, nil
}

// Run answers every item and returns results in item order. Without
// FailFast a failing item only sets Err on its result. With FailFast the
// first failure cancels outstanding work and is returned. Items that never
// ran carry the context error in Err, and the returned error is only
// a context error when at least one item was skipped.
func Run(ctx context.Context, items []Item, opts Options) ([]report.Result, error) {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	dec := packet.NewDecoder(opts.Limits)
	results := make([]report.Result, len(items))
	ran := make([]bool, len(items))
	var failed atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		i, item := i, item // per-iteration copies (go.mod targets go 1.21)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := report.Decode(dec, item.Line, item.Hex, opts.Mode)
			results[i] = res
			ran[i] = true
			if res.Err == nil {
				logger.Debug().Int("line", item.Line).Uint64("answer", res.Answer).Msg("decoded")
				return nil
			}
			failed.Add(1)
			logger.Warn().Int("line", item.Line).Err(res.Err).Msg("decode failed")
			if opts.FailFast {
				return fmt.Errorf("line %d: %w", item.Line, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()

	skipped := 0
	for i, item := range items {
		if ran[i] {
			continue
		}
		skipped++
		results[i] = report.Result{
			Line:  item.Line,
			Input: strings.TrimSpace(item.Hex),
			Mode:  opts.Mode,
			Err:   fmt.Errorf("skipped: %w", gctx.Err()),
		}
	}
	if err == nil && skipped > 0 {
		err = ctx.Err()
	}

	logger.Info().
		Int("items", len(items)).
		Int64("failed", failed.Load()).
		Int("skipped", skipped).
		Int("workers", workers).
		Str("mode", string(opts.Mode)).
		Dur("duration", time.Since(start)).
		Msg("batch complete")
	return results, err
}
