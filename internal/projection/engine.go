package projection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/construction-projection/internal/ledger"
	"go.uber.org/zap"
)

// Engine runs projections against a ledger store. Runs on the same Engine
// are serialized.
type Engine struct {
	logger   *zap.Logger
	store    ledger.Store
	programs []string
	metrics  *Metrics
	recorder ledger.RunRecorder
	now      func() time.Time
	newID    func() string

	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrograms overrides the program code allow-list used for cost aggregation.
func WithPrograms(programs []string) Option {
	return func(e *Engine) {
		e.programs = append([]string(nil), programs...)
	}
}

// WithMetrics records run outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRunRecorder persists a history row after every run.
func WithRunRecorder(r ledger.RunRecorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a projection engine over store.
func NewEngine(logger *zap.Logger, store ledger.Store, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:   logger,
		store:    store,
		programs: ledger.DefaultPrograms(),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run clears and rebuilds every PROJECTED source entry in one transaction.
// On failure the transaction is rolled back and the error is carried in the
// returned Outcome.
func (e *Engine) Run(ctx context.Context) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	outcome := Outcome{RunID: e.newID(), StartedAt: e.now()}
	logger := e.logger.With(zap.String("run_id", outcome.RunID))
	logger.Info("projection run started",
		zap.String("op", "projection.Run"),
	)

	var written int
	err := e.store.WithinTransaction(ctx, func(tx ledger.Tx) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("projection panicked: %v", p)
			}
		}()
		written, err = e.project(ctx, logger, tx)
		return err
	})

	outcome.Duration = e.now().Sub(outcome.StartedAt)
	if err != nil {
		outcome.Err = err
		logger.Error("projection run failed",
			zap.String("op", "projection.Run"),
			zap.Duration("duration", outcome.Duration),
			zap.Error(err),
		)
	} else {
		outcome.Entries = written
		logger.Info("projection run finished",
			zap.String("op", "projection.Run"),
			zap.Int("entries", written),
			zap.Duration("duration", outcome.Duration),
		)
	}

	e.metrics.observe(outcome)
	e.record(ctx, logger, outcome)
	return outcome
}

func (e *Engine) project(ctx context.Context, logger *zap.Logger, tx ledger.Tx) (int, error) {
	settings, err := LoadSettings(ctx, tx)
	if err != nil {
		return 0, err
	}
	logger.Debug("projection settings loaded",
		zap.String("op", "projection.project"),
		zap.Int("prior_year", settings.PriorYear),
		zap.Float64("interest_rate", settings.InterestRate),
	)

	deleted, err := tx.DeleteSourceEntries(ctx, ledger.FlowSourceProjected)
	if err != nil {
		return 0, err
	}
	logger.Debug("cleared projected entries",
		zap.String("op", "projection.project"),
		zap.Int64("deleted", deleted),
	)

	static, err := tx.ListStaticRows(ctx)
	if err != nil {
		return 0, err
	}
	seed := make([]ledger.SourceEntry, 0, len(static))
	for _, row := range static {
		seed = append(seed, row.Entry())
	}
	if err := tx.InsertSourceEntries(ctx, seed); err != nil {
		return 0, err
	}

	totals, err := tx.QueryBudgetTotals(ctx, settings.PriorYear, e.programs)
	if err != nil {
		return 0, err
	}
	costs := AggregateCosts(totals)
	if err := tx.InsertSourceEntries(ctx, costs); err != nil {
		return 0, err
	}
	written := len(seed) + len(costs)

	years := ListYears(totals, static)
	resources := ListResources(totals, static)
	logger.Debug("projection universe",
		zap.String("op", "projection.project"),
		zap.Strings("years", years),
		zap.Strings("resources", resources),
		zap.Int("costs", len(costs)),
	)

	for _, resource := range resources {
		for _, year := range years {
			if err := ctx.Err(); err != nil {
				return 0, err
			}

			interest, err := CalcInterest(ctx, tx, year, resource, settings.InterestRate)
			if err != nil {
				return 0, fmt.Errorf("calculating interest for %s/%s: %w", resource, year, err)
			}
			if interest > 0 {
				written++
			}

			beg, end, err := CalcBalance(ctx, tx, year, resource)
			if err != nil {
				return 0, fmt.Errorf("calculating balance for %s/%s: %w", resource, year, err)
			}
			written += 2

			logger.Debug("projected year",
				zap.String("op", "projection.project"),
				zap.String("resource", resource),
				zap.String("fiscal_year", year),
				zap.Float64("beg_equity", beg),
				zap.Float64("interest", interest),
				zap.Float64("end_equity", end),
			)
		}
	}
	return written, nil
}

func (e *Engine) record(ctx context.Context, logger *zap.Logger, o Outcome) {
	if e.recorder == nil {
		return
	}
	run := ledger.RunRecord{
		ID:         o.RunID,
		StartedAt:  o.StartedAt,
		FinishedAt: o.StartedAt.Add(o.Duration),
		Status:     o.Status(),
		Entries:    o.Entries,
	}
	if o.Err != nil {
		run.Message = o.Err.Error()
	}
	// A cancelled run is still recorded.
	if err := e.recorder.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("failed to record projection run",
			zap.String("op", "projection.record"),
			zap.Error(err),
		)
	}
}
