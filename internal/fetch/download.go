package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-toolcards/internal/fileutil"
	"github.com/alnah/go-toolcards/internal/logging"
)

// Worker bounds for concurrent downloads.
const (
	MinWorkers = 1
	MaxWorkers = 8
)

// Outcome of a single asset download.
type Outcome int

const (
	Downloaded Outcome = iota
	Skipped // file already on disk
	Failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Downloaded:
		return "downloaded"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the outcome of one asset download.
type Result struct {
	Asset   Asset
	Outcome Outcome
	Bytes   int
	Err     error
}

// Report holds per-asset results in input order.
type Report struct {
	Results []Result
}

// Count returns how many results have outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Err combines every failure, or returns nil when all assets succeeded.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Outcome == Failed {
			err = multierr.Append(err, fmt.Errorf("%s: %w", res.Asset.Name, res.Err))
		}
	}
	return err
}

// DownloaderOptions configures a Downloader.
type DownloaderOptions struct {
	ClientOptions
	Workers int // zero picks a value from GOMAXPROCS
}

// Downloader saves remote icons to disk. A failed asset never stops the
// batch: it is logged, recorded and the next asset proceeds.
type Downloader struct {
	client  *resty.Client
	workers int
	logger  *zap.Logger
}

// NewDownloader creates a Downloader.
func NewDownloader(opts DownloaderOptions) *Downloader {
	return &Downloader{
		client:  newClient(opts.ClientOptions),
		workers: ResolveWorkers(opts.Workers),
		logger:  logging.OrNop(opts.Logger),
	}
}

// ResolveWorkers determines the download concurrency.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for containers).
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}

// Download fetches every asset whose target file does not exist yet.
// Target directories are created as needed.
func (d *Downloader) Download(ctx context.Context, assets []Asset) *Report {
	report := &Report{Results: make([]Result, len(assets))}
	if len(assets) == 0 {
		return report
	}

	concurrency := min(d.workers, len(assets))
	jobs := make(chan int, len(assets))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					report.Results[idx] = Result{Asset: assets[idx], Outcome: Failed, Err: err}
					continue
				}
				report.Results[idx] = d.fetchOne(ctx, assets[idx])
			}
		}()
	}

	for i := range assets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return report
}

func (d *Downloader) fetchOne(ctx context.Context, a Asset) Result {
	log := d.logger.With(zap.String("tool", a.Name), zap.String("file", a.Path))

	if fileutil.FileExists(a.Path) {
		log.Debug("icon exists, skipping")
		return Result{Asset: a, Outcome: Skipped}
	}

	data, err := d.get(ctx, a.URL)
	if err == nil {
		err = checkImage(data)
	}
	if err == nil {
		err = save(a.Path, data)
	}
	if err != nil {
		log.Warn("icon download failed", zap.String("url", a.URL), zap.Error(err))
		return Result{Asset: a, Outcome: Failed, Err: err}
	}

	log.Info("icon downloaded", zap.Int("bytes", len(data)))
	return Result{Asset: a, Outcome: Downloaded, Bytes: len(data)}
}

func (d *Downloader) get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	res, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, res.Status())
	}
	return res.Body(), nil
}

// checkImage accepts any payload filetype recognizes as an image, plus SVG
// documents, which have no magic number.
func checkImage(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyPayload
	}
	if filetype.IsImage(data) || isSVG(data) {
		return nil
	}
	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		return fmt.Errorf("%w: unknown type", ErrNotImage)
	}
	return fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
}

func isSVG(data []byte) bool {
	head := data[:min(len(data), 512)]
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

func save(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	// #nosec G306 -- icons are served by the web page
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
