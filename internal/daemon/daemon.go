package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coinsage/coinsage/internal/model"
)

// dateLayout keys the once-per-day gate. Comparing formatted dates
// instead of timestamps makes the day boundary an exact UTC midnight.
const dateLayout = "2006-01-02"

// CredentialSource lists stored exchange credentials to sweep.
type CredentialSource interface {
	ListByType(ctx context.Context, exchange model.ExchangeType) ([]model.Credential, error)
}

// ImportFunc runs one import session for one credential over [start, end].
type ImportFunc func(ctx context.Context, cred model.Credential, start, end time.Time) error

// Config holds daemon configuration.
type Config struct {
	Interval   time.Duration // Wake interval between gate checks (default: 10s)
	WindowDays int           // Lookback window per sweep in days (default: 1)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:   10 * time.Second,
		WindowDays: 1,
	}
}

// Daemon runs a daily import sweep over all stored credentials.
type Daemon struct {
	cfg      Config
	creds    CredentialSource
	importFn ImportFunc
	logger   *slog.Logger
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	lastRun string
}

// New creates a new Daemon.
func New(cfg Config, creds CredentialSource, importFn ImportFunc, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultConfig().WindowDays
	}
	return &Daemon{
		cfg:      cfg,
		creds:    creds,
		importFn: importFn,
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins the scheduling loop.
func (d *Daemon) Start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)

	d.wg.Add(1)
	go d.run()

	d.logger.Info("import daemon started",
		"interval", d.cfg.Interval,
		"window_days", d.cfg.WindowDays,
	)

	return nil
}

// Stop gracefully shuts down the daemon. A sweep in flight finishes
// its current credential before the loop exits.
func (d *Daemon) Stop(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("import daemon stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastRun reports the UTC date of the last completed sweep, empty if
// none has completed yet.
func (d *Daemon) LastRun() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastRun
}

// run is the main scheduling loop.
func (d *Daemon) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	// Check the gate immediately on start.
	d.tick()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.tick()
		}
	}
}

// tick runs a sweep unless one already completed today (UTC). The gate
// only advances after a sweep finishes, so a crash mid-sweep means the
// whole sweep reruns on the next start; the per-portfolio external-id
// dedup makes the rerun safe.
func (d *Daemon) tick() {
	today := d.now().UTC().Format(dateLayout)

	d.mu.Lock()
	done := d.lastRun == today
	d.mu.Unlock()
	if done {
		return
	}

	if !d.sweep() {
		return
	}

	d.mu.Lock()
	d.lastRun = today
	d.mu.Unlock()
}

// sweep imports the lookback window for every stored credential. A
// failing credential is logged and skipped. Returns false only when the
// credential list itself could not be loaded, so the gate stays open
// and the next tick retries.
func (d *Daemon) sweep() bool {
	start := time.Now()

	creds, err := d.creds.ListByType(d.ctx, model.ExchangeBinance)
	if err != nil {
		d.logger.Error("failed to list credentials", "err", err)
		return false
	}

	end := d.now().UTC()
	windowStart := end.AddDate(0, 0, -d.cfg.WindowDays)

	var imported, failed int
	for _, cred := range creds {
		select {
		case <-d.ctx.Done():
			return false
		default:
		}

		if err := d.importFn(d.ctx, cred, windowStart, end); err != nil {
			d.logger.Warn("import failed for credential",
				"credential_id", cred.ID,
				"portfolio_id", cred.PortfolioID,
				"err", err,
			)
			failed++
			continue
		}
		imported++
	}

	d.logger.Info("import sweep complete",
		"credentials", len(creds),
		"imported", imported,
		"failed", failed,
		"duration", time.Since(start),
	)

	return true
}
