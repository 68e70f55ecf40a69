package agent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/models"
)

// ReadinessState is the lifecycle state of the AI backends
type ReadinessState int32

const (
	StateUninitialized ReadinessState = iota
	StateInitializing
	StateReady
	StateDegraded
)

func (s ReadinessState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("ReadinessState(%d)", int32(s))
	}
}

// JitterFunc returns the integer offset added to keyword fallback scores
type JitterFunc func() int

// DefaultJitter draws uniformly from [-5, 15]
func DefaultJitter() int {
	return rand.IntN(21) - 5
}

const defaultCallTimeout = 30 * time.Second

// Service owns the AI backends and decides per call whether the AI path or
// the fallback path runs. Public operations always return a usable result.
type Service struct {
	newGenerator GeneratorFactory
	newEmbedder  EmbedderFactory

	state    atomic.Int32
	backends atomic.Pointer[backends]

	// serializes Initialize and Cleanup
	lifecycleMu sync.Mutex

	description *DescriptionGenerator
	matcher     *MatchScorer
	logger      *zap.Logger
}

type options struct {
	timeout time.Duration
	params  GenerationParams
	jitter  JitterFunc
	logger  *zap.Logger
}

// Option configures a Service
type Option func(*options)

// WithTimeout bounds every individual backend call
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithGenerationParams overrides the sampling parameters
func WithGenerationParams(p GenerationParams) Option {
	return func(o *options) { o.params = p }
}

// WithJitter replaces the fallback score jitter source
func WithJitter(j JitterFunc) Option {
	return func(o *options) {
		if j != nil {
			o.jitter = j
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewService creates a Service in the Uninitialized state. Either factory may be
// nil, in which case Initialize ends in Degraded.
func NewService(newGenerator GeneratorFactory, newEmbedder EmbedderFactory, opts ...Option) *Service {
	o := options{
		timeout: defaultCallTimeout,
		params:  DefaultGenerationParams(),
		jitter:  DefaultJitter,
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.OrNop(o.logger).Named("agent")

	return &Service{
		newGenerator: newGenerator,
		newEmbedder:  newEmbedder,
		description:  NewDescriptionGenerator(o.params, o.timeout, log),
		matcher:      NewMatchScorer(o.params, o.timeout, o.jitter, log),
		logger:       log,
	}
}

// Initialize acquires both backends. Failure to acquire either leaves the
// service Degraded; the error is logged and never returned. Calling it again
// while Ready does nothing.
func (s *Service) Initialize(ctx context.Context) {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.State() == StateReady {
		return
	}
	s.setState(StateInitializing)

	b, err := s.acquire(ctx)
	if err != nil {
		s.logger.Warn("AI backends unavailable, using fallback mode", zap.Error(err))
		s.setState(StateDegraded)
		return
	}

	s.backends.Store(b)
	s.setState(StateReady)
	s.logger.Info("AI backends ready")
}

func (s *Service) acquire(ctx context.Context) (*backends, error) {
	if s.newGenerator == nil {
		return nil, fmt.Errorf("text generator: %w", ErrBackendUnavailable)
	}
	if s.newEmbedder == nil {
		return nil, fmt.Errorf("embedder: %w", ErrBackendUnavailable)
	}

	gen, err := s.newGenerator(ctx)
	if err != nil {
		return nil, fmt.Errorf("text generator: %w", err)
	}
	if gen == nil {
		return nil, fmt.Errorf("text generator: %w", ErrBackendUnavailable)
	}

	emb, err := s.newEmbedder(ctx)
	if err == nil && emb == nil {
		err = ErrBackendUnavailable
	}
	if err != nil {
		if cerr := closeBackend(gen); cerr != nil {
			s.logger.Warn("Failed to close text generator", zap.Error(cerr))
		}
		return nil, fmt.Errorf("embedder: %w", err)
	}

	return &backends{generator: gen, embedder: emb}, nil
}

// Cleanup returns the service to Uninitialized and closes the backends. Safe to call repeatedly.
func (s *Service) Cleanup() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	s.setState(StateUninitialized)

	b := s.backends.Swap(nil)
	if b == nil {
		return
	}
	if err := closeBackend(b.generator); err != nil {
		s.logger.Warn("Failed to close text generator", zap.Error(err))
	}
	if err := closeBackend(b.embedder); err != nil {
		s.logger.Warn("Failed to close embedder", zap.Error(err))
	}
	s.logger.Info("AI service cleaned up")
}

// IsReady reports whether the AI path is in use
func (s *Service) IsReady() bool {
	return s.State() == StateReady
}

// State returns the current readiness state
func (s *Service) State() ReadinessState {
	return ReadinessState(s.state.Load())
}

func (s *Service) setState(st ReadinessState) {
	s.state.Store(int32(st))
}

// active returns the backends when the service is Ready, nil otherwise
func (s *Service) active() *backends {
	if !s.IsReady() {
		return nil
	}
	return s.backends.Load()
}

// GenerateJobDescription expands raw job fields into a full posting
func (s *Service) GenerateJobDescription(ctx context.Context, fields models.JobFields) models.GenerationResult {
	var gen TextGenerator
	if b := s.active(); b != nil {
		gen = b.generator
	}
	return s.description.Generate(ctx, gen, fields)
}

// ScoreMatch scores a candidate profile against a job's requirements text
func (s *Service) ScoreMatch(ctx context.Context, jobRequirements string, profile models.CandidateProfile) models.MatchResult {
	var (
		emb Embedder
		gen TextGenerator
	)
	if b := s.active(); b != nil {
		emb, gen = b.embedder, b.generator
	}
	return s.matcher.Score(ctx, emb, gen, jobRequirements, profile)
}
