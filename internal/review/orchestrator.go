package review

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/lgtm/internal/providers"
	"github.com/dshills/lgtm/internal/steps"
)

// Navigation describes the decision point offered after a completed step.
// Next is the title of the following step, empty after the last one.
type Navigation struct {
	Finished string
	Ordinal  int
	Total    int
	Next     string
	CanSkip  bool
}

// Navigator blocks for one navigation decision.
type Navigator interface {
	Navigate(ctx context.Context, nav Navigation) (Action, error)
}

// LineReader reads one line of free text.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Presenter renders session progress to the user.
type Presenter interface {
	Header(title string)
	Info(msg string)
	Error(msg string)
	Markdown(text string)
	// Busy shows a progress indicator until the returned func is called.
	Busy(label string) (stop func())
}

// Options are the fixed inputs of a session. Input is shared by every step;
// its History is filled in per step from the last HistoryWindow results.
type Options struct {
	Steps         []steps.Step
	Input         steps.Input
	HistoryWindow int
	FailureDelay  time.Duration
}

// Orchestrator sequences the review steps and owns navigation.
type Orchestrator struct {
	opts   Options
	client providers.Client
	nav    Navigator
	out    Presenter
	qa     *QA
	log    zerolog.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewOrchestrator returns an Orchestrator. Follow-up questions are read
// from lines.
func NewOrchestrator(client providers.Client, nav Navigator, lines LineReader, out Presenter, opts Options, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		opts:   opts,
		client: client,
		nav:    nav,
		out:    out,
		qa:     NewQA(client, lines, out, opts.Input.Context, log),
		log:    log,
		sleep:  sleepContext,
	}
}

// Run drives the session from the first step to a terminal state. The
// returned error is non-nil only when ctx is cancelled or navigation input
// fails; provider failures are recovered inside the session.
func (o *Orchestrator) Run(ctx context.Context) (*Session, error) {
	total := len(o.opts.Steps)
	s := &Session{State: StateRunning, Total: total}
	if total == 0 {
		s.State = StateCompleted
		return s, nil
	}

	for {
		o.log.Debug().Ctx(ctx).
			Str("state", s.State.String()).
			Int("index", s.Index).
			Msg("session transition")

		switch s.State {
		case StateRunning:
			if err := ctx.Err(); err != nil {
				return s, err
			}
			if err := o.runStep(ctx, s); err != nil {
				return s, err
			}

		case StateAwaitingNavigation:
			if err := o.navigate(ctx, s); err != nil {
				return s, err
			}

		case StateInQA:
			last, _ := s.Last()
			if err := o.qa.Run(ctx, last.Title, last.Response); err != nil {
				return s, err
			}
			s.State = StateAwaitingNavigation

		case StateStopped:
			o.out.Header("Review Stopped")
			o.out.Info(fmt.Sprintf("Completed %d of %d steps.", len(s.Completed), total))
			return s, nil

		case StateCompleted:
			o.out.Header("Review Complete")
			o.out.Info("All steps completed!")
			return s, nil
		}
	}
}

func (o *Orchestrator) runStep(ctx context.Context, s *Session) error {
	step := o.opts.Steps[s.Index]
	o.out.Header(fmt.Sprintf("Step %d/%d: %s", s.Index+1, s.Total, step.Title))

	in := o.opts.Input
	in.History = s.recent(o.opts.HistoryWindow)
	prompt := step.Build(in)

	o.log.Info().Ctx(ctx).
		Str("step", step.Title).
		Int("prompt_tokens", steps.EstimateTokens(prompt)).
		Int("history", len(in.History)).
		Msg("running step")

	start := time.Now()
	stop := o.out.Busy(fmt.Sprintf("Running %s analysis...", step.Title))
	response, err := o.client.Call(ctx, prompt)
	stop()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		o.fail(ctx, s, step, err)
		o.out.Info("Continuing to next step...")
		if err := o.sleep(ctx, o.opts.FailureDelay); err != nil {
			return err
		}
		o.advance(s, s.Index+1)
		return nil
	}

	s.Completed = append(s.Completed, StepResult{
		Title:     step.Title,
		Ordinal:   step.Ordinal,
		Prompt:    prompt,
		Response:  response,
		ElapsedMs: time.Since(start).Milliseconds(),
	})
	o.out.Markdown(response)
	s.State = StateAwaitingNavigation
	return nil
}

func (o *Orchestrator) fail(ctx context.Context, s *Session, step steps.Step, err error) {
	kind := providers.Classify(err)
	o.log.Error().Ctx(ctx).Err(err).
		Str("step", step.Title).
		Str("kind", kind.String()).
		Msg("step failed")

	o.out.Error(fmt.Sprintf("Error in %s: %v", step.Title, err))
	switch kind {
	case providers.KindAuth:
		o.out.Error("Authentication error. Please check your API key.")
	case providers.KindRateLimit:
		o.out.Error("Rate limit exceeded. Please try again later.")
	}

	s.Failed = append(s.Failed, StepFailure{
		Title:   step.Title,
		Ordinal: step.Ordinal,
		Kind:    kind.String(),
		Message: err.Error(),
	})
}

func (o *Orchestrator) navigate(ctx context.Context, s *Session) error {
	i, total := s.Index, s.Total
	nav := Navigation{
		Finished: o.opts.Steps[i].Title,
		Ordinal:  i + 1,
		Total:    total,
		CanSkip:  i+1 < total-1,
	}
	if i+1 < total {
		nav.Next = o.opts.Steps[i+1].Title
	}

	action, err := o.nav.Navigate(ctx, nav)
	if err != nil {
		return err
	}
	o.log.Debug().Ctx(ctx).Str("action", action.String()).Int("index", i).Msg("navigation")

	switch action {
	case ActionContinue:
		o.advance(s, i+1)
	case ActionAsk:
		s.State = StateInQA
	case ActionSkip:
		if !nav.CanSkip {
			// Not offered; ask again.
			return nil
		}
		o.out.Info(fmt.Sprintf("Skipping %s...", nav.Next))
		s.Skipped = append(s.Skipped, nav.Next)
		o.advance(s, i+2)
	case ActionQuit:
		s.State = StateStopped
	default:
		return fmt.Errorf("unknown navigation action %d", action)
	}
	return nil
}

// advance moves to step next, or completes the session past the last step.
func (o *Orchestrator) advance(s *Session, next int) {
	if next < s.Total {
		s.Index = next
		s.State = StateRunning
		return
	}
	s.State = StateCompleted
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
