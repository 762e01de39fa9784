package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

const nextSteps = "For high-quality Nigerian voices, contact info@naijavoice.com"

// Outcome labels reported to the Observer.
const (
	OutcomeSuccess = "success"
)

// Request is a transport-neutral inbound call.
type Request struct {
	Method string
	Body   []byte
}

// Response is a transport-neutral reply. A nil Body means no body at all.
type Response struct {
	Status int
	Body   any
}

// Result is the body of a successful synthesis call.
type Result struct {
	Success   bool        `json:"success"`
	Audio     Audio       `json:"audio"`
	Order     OrderRecord `json:"order"`
	Demo      bool        `json:"demo"`
	NextSteps string      `json:"nextSteps"`
}

// Dispatcher hands an accepted order to whoever fulfils it.
type Dispatcher interface {
	Dispatch(ctx context.Context, order OrderRecord) error
}

// NopDispatcher drops orders. It is the default, which keeps the service stateless.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, OrderRecord) error { return nil }

// Observer receives one call per synthesis attempt that passed the method gate.
type Observer interface {
	ObserveSynthesis(outcome string, textChars int)
}

type nopObserver struct{}

func (nopObserver) ObserveSynthesis(string, int) {}

type Options struct {
	IDs        IDGenerator
	Provider   Provider
	Dispatcher Dispatcher
	Observer   Observer
	Logger     *slog.Logger
	Now        func() time.Time
}

type Service struct {
	ids        IDGenerator
	provider   Provider
	dispatcher Dispatcher
	observer   Observer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService fills any zero option with its default: clock ids, the demo
// provider, no dispatch, no observation and slog.Default().
func NewService(opts Options) *Service {
	s := &Service{
		ids:        opts.IDs,
		provider:   opts.Provider,
		dispatcher: opts.Dispatcher,
		observer:   opts.Observer,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ids == nil {
		s.ids = NewClockIDs(s.now)
	}
	if s.provider == nil {
		s.provider = DemoProvider{}
	}
	if s.dispatcher == nil {
		s.dispatcher = NopDispatcher{}
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handle runs one call end to end. Anything that escapes the pipeline,
// including a panic, becomes an internal error response.
func (s *Service) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			err := internalError(fmt.Errorf("panic: %v", r))
			s.logger.ErrorContext(ctx, "synthesis handler panicked", "error", err)
			s.observer.ObserveSynthesis(KindInternal.String(), 0)
			resp = errorResponse(err)
		}
	}()

	switch req.Method {
	case http.MethodOptions:
		return Response{Status: http.StatusOK}
	case http.MethodPost:
	default:
		return errorResponse(ErrMethodNotAllowed)
	}

	in, err := DecodeRequest(req.Body)
	if err != nil {
		err = internalError(err)
		s.logger.ErrorContext(ctx, "synthesis request failed", "error", err)
		s.observer.ObserveSynthesis(KindInternal.String(), 0)
		return errorResponse(err)
	}

	result, err := s.Synthesize(ctx, in)
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: result}
}

// Synthesize validates a decoded request and builds the demo result.
// Returned errors are always *Error.
func (s *Service) Synthesize(ctx context.Context, req SynthesisRequest) (*Result, error) {
	p, err := req.Validate()
	if err != nil {
		chars := 0
		if req.Text != nil {
			chars = utf8.RuneCountInString(*req.Text)
		}
		s.observer.ObserveSynthesis(KindOf(err).String(), chars)
		return nil, err
	}

	chars := utf8.RuneCountInString(p.Text)
	s.logger.InfoContext(ctx, "TTS request",
		"text_length", chars,
		"voice", p.Voice,
		"speed", p.Speed,
		"timestamp", s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	)

	order := NewOrder(s.ids.NextID(), p)

	audio, err := s.provider.Synthesize(ctx, p)
	if err != nil {
		ierr := internalError(fmt.Errorf("%s provider: %w", s.provider.Name(), err))
		s.logger.ErrorContext(ctx, "synthesis request failed", "error", ierr, "order_id", order.ID)
		s.observer.ObserveSynthesis(KindInternal.String(), chars)
		return nil, ierr
	}

	if err := s.dispatcher.Dispatch(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "order dispatch failed", "error", err, "order_id", order.ID)
	}

	s.observer.ObserveSynthesis(OutcomeSuccess, chars)

	return &Result{
		Success:   true,
		Audio:     *audio,
		Order:     order,
		Demo:      true,
		NextSteps: nextSteps,
	}, nil
}

func errorResponse(err error) Response {
	return Response{Status: KindOf(err).Status(), Body: BodyFor(err)}
}
