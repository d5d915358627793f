package collision

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Config controls the hardened collision pass.
type Config struct {
	// Hardened enables live validation, circuit breakers and error budgets.
	Hardened bool
	// BreakerThreshold is the number of consecutive callback failures that
	// opens a collidable's breaker.
	BreakerThreshold int
	// BreakerCooldown is how long after its last failure an open breaker
	// stays open.
	BreakerCooldown time.Duration
	// FrameErrorBudget caps callback failures per pass; 0 disables the cap.
	FrameErrorBudget int
	// ObjectErrorBudget caps lifetime failures per collidable before it is
	// evicted; 0 disables the cap.
	ObjectErrorBudget int
}

// DefaultConfig returns the hardened defaults.
func DefaultConfig() Config {
	return Config{
		Hardened:          true,
		BreakerThreshold:  5,
		BreakerCooldown:   2 * time.Second,
		FrameErrorBudget:  10,
		ObjectErrorBudget: 0,
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock replaces the time source used for breaker cooldowns and frame
// timing.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// removal is a queued deferred removal.
type removal struct {
	c       Collidable
	evicted bool
}

// Registry holds collidables and runs the pairwise collision pass.
// It is not safe for concurrent use.
type Registry struct {
	cfg      Config
	objects  []Collidable
	breakers map[Collidable]*breaker
	pending  []removal
	checking bool
	metrics  Metrics
	now      func() time.Time
	logger   *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config, opts ...Option) *Registry {
	r := &Registry{
		cfg:      cfg,
		breakers: make(map[Collidable]*breaker),
		now:      time.Now,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the registry configuration.
func (r *Registry) Config() Config {
	return r.cfg
}

// Add registers a collidable. In hardened mode its geometry and type are
// validated first.
func (r *Registry) Add(c Collidable) error {
	if c == nil {
		return ErrNilCollidable
	}
	if !identifiable(c) {
		return fmt.Errorf("%w: %T cannot be compared by identity", ErrInvalidType, c)
	}
	if slices.Contains(r.objects, c) {
		return ErrDuplicate
	}
	if r.cfg.Hardened {
		if err := validate(c); err != nil {
			return fmt.Errorf("add %s: %w", describe(c), err)
		}
	}
	r.objects = append(r.objects, c)
	return nil
}

// Remove unregisters a collidable. During a pass the removal is deferred to
// the end of the pass and the collidable takes part in no further pairs.
// Reports whether c was registered.
func (r *Registry) Remove(c Collidable) bool {
	if !slices.Contains(r.objects, c) {
		return false
	}
	if r.checking {
		r.queue(c, false)
		return true
	}
	r.drop(c)
	return true
}

// Contains reports whether c is registered and not pending removal.
func (r *Registry) Contains(c Collidable) bool {
	return slices.Contains(r.objects, c) && !r.isPending(c)
}

// Len returns the number of registered collidables.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Objects returns a snapshot of the registered collidables.
func (r *Registry) Objects() []Collidable {
	return slices.Clone(r.objects)
}

// Clear unregisters every collidable and forgets breaker state.
func (r *Registry) Clear() {
	if r.checking {
		for _, c := range r.objects {
			r.queue(c, false)
		}
		return
	}
	r.objects = nil
	r.pending = nil
	clear(r.breakers)
}

// Checking reports whether a pass is in progress.
func (r *Registry) Checking() bool {
	return r.checking
}

// Metrics returns a copy of the accumulated statistics.
func (r *Registry) Metrics() Metrics {
	return r.metrics
}

// ResetMetrics zeroes the statistics.
func (r *Registry) ResetMetrics() {
	r.metrics = Metrics{OpenBreakers: r.metrics.OpenBreakers}
}

// BreakerOpen reports whether c's circuit breaker is currently open.
func (r *Registry) BreakerOpen(c Collidable) bool {
	if c == nil || !identifiable(c) {
		return false
	}
	b, ok := r.breakers[c]
	return ok && b.open
}

// Check runs one collision pass over a snapshot of the registered
// collidables, visiting every unordered pair once in registration order.
// For each overlapping pair both sides are told about the collision, each
// from its own point of view; a side only hears about it if its type
// triggers events. Callback errors and panics are contained per side.
func (r *Registry) Check() {
	start := r.now()
	r.checking = true
	defer func() {
		r.checking = false
		r.flush()
	}()

	if r.cfg.Hardened {
		r.refreshBreakers(start)
	}

	snapshot := slices.Clone(r.objects)
	collisions, errs := 0, 0

outer:
	for i := 0; i < len(snapshot); i++ {
		for j := i + 1; j < len(snapshot); j++ {
			if r.overBudget(errs) {
				r.metrics.BudgetAborts++
				r.logger.Warn("collision error budget exhausted, skipping rest of pass",
					"errors", errs, "budget", r.cfg.FrameErrorBudget)
				break outer
			}

			a, b := snapshot[i], snapshot[j]
			if !r.eligible(a) || !r.eligible(b) {
				continue
			}
			if r.cfg.Hardened && (r.BreakerOpen(a) || r.BreakerOpen(b)) {
				r.metrics.SkippedPairs++
				continue
			}

			hit, failed := r.visit(a, b)
			if hit {
				collisions++
			}
			errs += failed
		}
	}

	r.metrics.Collisions += uint64(collisions)
	r.metrics.Errors += uint64(errs)
	r.metrics.recordFrame(r.now().Sub(start), collisions, errs)
}

// visit tests one pair and dispatches to both sides. It returns whether the
// pair collided and how many callbacks failed.
func (r *Registry) visit(a, b Collidable) (hit bool, failed int) {
	overlap, err := r.detect(a, b)
	if err != nil {
		r.logger.Error("collision detection failed", "a", describe(a), "b", describe(b), "error", err)
		return false, 1
	}
	if !overlap {
		return false, 0
	}

	ra, rb := r.resolve(a, b)
	if !r.dispatch(a, ra) {
		failed++
	}
	if !r.dispatch(b, rb) {
		failed++
	}
	return true, failed
}

func (r *Registry) detect(a, b Collidable) (overlap bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return Detect(a, b), nil
}

func (r *Registry) resolve(a, b Collidable) (Result, Result) {
	ba, bb := a.Bounds(), b.Bounds()
	ox, oy, dirA := resolveRects(ba, bb)
	_, _, dirB := resolveRects(bb, ba)
	return Result{Other: b, OverlapX: ox, OverlapY: oy, Direction: dirA},
		Result{Other: a, OverlapX: ox, OverlapY: oy, Direction: dirB}
}

// dispatch invokes c's callback if its type triggers events. It returns
// false when the callback failed.
func (r *Registry) dispatch(c Collidable, res Result) bool {
	triggered, err := safeCall(c, res)
	if !triggered && err == nil {
		return true
	}
	if err == nil {
		if b, ok := r.breakers[c]; ok {
			b.succeed()
		}
		return true
	}

	r.logger.Warn("collision callback failed",
		"self", describe(c), "other", describe(res.Other), "direction", res.Direction, "error", err)
	if !r.cfg.Hardened {
		return false
	}

	b := r.breaker(c)
	if b.fail(r.now(), r.cfg.BreakerThreshold) {
		r.logger.Warn("circuit breaker opened", "collidable", describe(c), "failures", b.consecutive)
	}
	if r.cfg.ObjectErrorBudget > 0 && b.total >= r.cfg.ObjectErrorBudget && !r.isPending(c) {
		r.logger.Warn("collidable exhausted its error budget, evicting",
			"collidable", describe(c), "failures", b.total)
		r.queue(c, true)
	}
	return false
}

func safeCall(c Collidable, res Result) (triggered bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	if !c.Type().TriggersEvent {
		return false, nil
	}
	return true, c.OnCollision(res)
}

// eligible reports whether c may take part in a pair. Invalid collidables
// are queued for eviction the first time they are seen.
func (r *Registry) eligible(c Collidable) bool {
	if c == nil || r.isPending(c) {
		return false
	}
	if !r.cfg.Hardened {
		return true
	}
	if err := validate(c); err != nil {
		r.logger.Warn("invalid collidable, evicting", "collidable", describe(c), "error", err)
		r.queue(c, true)
		return false
	}
	return true
}

func (r *Registry) overBudget(errs int) bool {
	return r.cfg.Hardened && r.cfg.FrameErrorBudget > 0 && errs >= r.cfg.FrameErrorBudget
}

func (r *Registry) refreshBreakers(now time.Time) {
	for c, b := range r.breakers {
		if b.tryClose(now, r.cfg.BreakerCooldown) {
			r.logger.Info("circuit breaker closed", "collidable", describe(c))
		}
	}
}

// identifiable reports whether c can be used as a map key and matched by ==.
func identifiable(c Collidable) bool {
	return reflect.ValueOf(c).Comparable()
}

func (r *Registry) breaker(c Collidable) *breaker {
	b, ok := r.breakers[c]
	if !ok {
		b = &breaker{}
		r.breakers[c] = b
	}
	return b
}

func (r *Registry) isPending(c Collidable) bool {
	return slices.ContainsFunc(r.pending, func(p removal) bool { return p.c == c })
}

func (r *Registry) queue(c Collidable, evicted bool) {
	if r.isPending(c) {
		return
	}
	r.pending = append(r.pending, removal{c: c, evicted: evicted})
}

func (r *Registry) drop(c Collidable) {
	if i := slices.Index(r.objects, c); i >= 0 {
		r.objects = slices.Delete(r.objects, i, i+1)
	}
	delete(r.breakers, c)
}

// flush applies deferred removals and refreshes the open breaker count.
func (r *Registry) flush() {
	for _, p := range r.pending {
		r.drop(p.c)
		if p.evicted {
			r.metrics.Evicted++
		}
	}
	r.pending = r.pending[:0]

	open := 0
	for _, b := range r.breakers {
		if b.open {
			open++
		}
	}
	r.metrics.OpenBreakers = open
}
