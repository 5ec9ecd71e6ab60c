// Package tutor runs the per-turn decision pipeline: verify the student's
// message, classify it, consult the scaffolding decider when a breakdown
// is active, commit the turn to the session, and hand the response
// generator everything it needs. The pipeline decides; the injected
// generator speaks.
package tutor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/socra/internal/classify"
	"github.com/abhisek/socra/internal/errpattern"
	"github.com/abhisek/socra/internal/scaffold"
	"github.com/abhisek/socra/internal/session"
	"github.com/abhisek/socra/internal/verify"
)

// TurnInput is one student message entering the pipeline.
type TurnInput struct {
	StudentID string
	SessionID string
	Message   string

	// IsAnswer marks the message as an answer attempt rather than chat.
	// The transport decides this; the pipeline never guesses.
	IsAnswer bool

	LatencyMs int64
}

// Kind is the pipeline's reading of a turn.
type Kind string

const (
	// KindChat is a non-answer message.
	KindChat Kind = "chat"
	// KindAnswer is a verified answer attempt.
	KindAnswer Kind = "answer"
	// KindUnparseable is an answer attempt the verifier could not read.
	// Not a quality category: the generator asks the student to restate.
	KindUnparseable Kind = "unparseable"
	// KindTeachBack is the student's own explanation after a correct
	// answer, closing the teach-back loop.
	KindTeachBack Kind = "teach_back"
)

// GeneratorInput is the structured context handed to the response
// generator. The pipeline fills it; pedagogy and prompt text live on the
// generator's side.
type GeneratorInput struct {
	Kind     Kind
	Category string

	ProblemText   string
	CorrectAnswer string

	AttemptCount      int
	EscalationLevel   session.Level
	ScaffoldingActive bool
	TeachBackActive   bool

	// SynthesisAction and SynthesisHint are set only when the scaffold
	// decider ran this turn.
	SynthesisAction string
	SynthesisHint   string

	// Pattern is the matched misconception for wrong answers, when the
	// registry recognized one.
	Pattern *errpattern.Candidate

	NextAction  string
	Tone        string
	ChatHistory string
}

// TurnResult is what the pipeline returns to the transport.
type TurnResult struct {
	Response string
	Kind     Kind
	Category string

	Verification   *verify.Result
	Classification *classify.Classification
	Decision       *scaffold.Decision

	Escalation session.Level
	TurnNumber int
	SessionID  string
}

// ResponseGenerator produces the tutor's reply from the pipeline's
// structured context.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, in GeneratorInput) (string, error)
}

// ProblemSource issues the next problem for a student.
type ProblemSource interface {
	NextProblem(ctx context.Context, studentID string) (session.Problem, error)
}

// SessionStore persists session aggregates between turns. Load errors
// (missing or expired) make the pipeline start a fresh session.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
}

// ClassifierFunc derives the quality classification for a parsed
// verification. Swappable so hosts can extend the category set; whatever
// category it returns flows through the pipeline verbatim.
type ClassifierFunc func(verify.Result) (*classify.Classification, error)

// Service is the assembled pipeline.
type Service struct {
	sessions  SessionStore
	problems  ProblemSource
	generator ResponseGenerator
	decider   *scaffold.Decider
	patterns  *errpattern.Registry
	classify  ClassifierFunc
}

// NewService assembles the pipeline with the default classifier and
// error-pattern registry.
func NewService(sessions SessionStore, problems ProblemSource, generator ResponseGenerator, decider *scaffold.Decider) *Service {
	return &Service{
		sessions:  sessions,
		problems:  problems,
		generator: generator,
		decider:   decider,
		patterns:  errpattern.DefaultRegistry(),
		classify:  classify.Classify,
	}
}

// WithClassifier swaps the classifier. For hosts extending the category
// set; call before serving turns.
func (s *Service) WithClassifier(fn ClassifierFunc) *Service {
	s.classify = fn
	return s
}

// WithRegistry swaps the error-pattern registry.
func (s *Service) WithRegistry(r *errpattern.Registry) *Service {
	s.patterns = r
	return s
}

// HandleTurn runs one student message through the pipeline. The turn is
// committed to the session only after the response generator succeeds, so
// a failed turn leaves the session exactly as it was.
func (s *Service) HandleTurn(ctx context.Context, in TurnInput) (*TurnResult, error) {
	sess, err := s.loadOrCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	problem := sess.CurrentProblem.Problem
	kind := KindChat
	category := ""

	var (
		vres *verify.Result
		cls  *classify.Classification
		dec  *scaffold.Decision
	)

	switch {
	case in.IsAnswer:
		r := verify.Verify(in.Message, problem.CorrectAnswer)
		vres = &r
		if !r.Parsed() {
			kind = KindUnparseable
			break
		}

		kind = KindAnswer
		cls, err = s.classify(r)
		if err != nil {
			return nil, fmt.Errorf("classify turn: %w", err)
		}
		category = string(cls.Category)

		if cls.Category == classify.CategoryWrongOperation {
			// Enrichment is advisory. ErrNoDetector (word problems,
			// unregistered subjects) just means no misconception tag.
			if cands, derr := s.patterns.DetectForProblem(errpattern.SubjectMathArithmetic, problem.Text); derr == nil {
				classify.Enrich(cls, cands, r.StudentValue)
			}
		}

		if sess.ScaffoldingActive && cls.Category != classify.CategoryCorrect {
			dec = s.decide(ctx, sess, in.Message)
		}

	case sess.TeachBackActive:
		kind = KindTeachBack
	}

	s.applyTransitions(ctx, sess, &problem, in, kind, cls, dec)

	gin := s.buildGeneratorInput(sess, problem, kind, category, cls, dec)

	response, err := s.generator.GenerateResponse(ctx, gin)
	if err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}

	if err := sess.RecordTurn(session.Turn{
		StudentInput:  in.Message,
		IsAnswer:      in.IsAnswer,
		Category:      category,
		Verification:  vres,
		TutorResponse: response,
		LatencyMs:     in.LatencyMs,
	}, problem); err != nil {
		return nil, fmt.Errorf("record turn: %w", err)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session %s: %w", sess.SessionID, err)
	}

	return &TurnResult{
		Response:       response,
		Kind:           kind,
		Category:       category,
		Verification:   vres,
		Classification: cls,
		Decision:       dec,
		Escalation:     sess.EscalationLevel(),
		TurnNumber:     sess.Stats.TotalTurns,
		SessionID:      sess.SessionID,
	}, nil
}

// decide runs the scaffold decider for the latest sub-answer. A failed
// reasoning call degrades to the explicit continue fallback; scaffolding
// never crashes a turn.
func (s *Service) decide(ctx context.Context, sess *session.Session, message string) *scaffold.Decision {
	dec, err := s.decider.Decide(ctx, scaffold.Input{
		ProblemText:    sess.CurrentProblem.Text,
		CorrectAnswer:  sess.CurrentProblem.CorrectAnswer,
		StudentMessage: message,
		SubAnswers:     sess.SubAnswers,
		ChatHistory:    sess.FormatHistory(),
	})
	if err != nil {
		collected := append(append([]string{}, sess.SubAnswers...), message)
		return scaffold.ContinueFallback(collected)
	}
	return dec
}

// applyTransitions mutates the session's scaffolding and teach-back state
// for this turn, and advances the problem when a teach-back completes.
// Runs before RecordTurn so the state rides along in the atomic swap.
func (s *Service) applyTransitions(ctx context.Context, sess *session.Session, problem *session.Problem, in TurnInput, kind Kind, cls *classify.Classification, dec *scaffold.Decision) {
	if cls != nil {
		switch cls.Category {
		case classify.CategoryCorrect:
			sess.ScaffoldingActive = false
			sess.SubAnswers = nil
			sess.TeachBackActive = true
		case classify.CategoryWrongOperation:
			sess.ScaffoldingActive = true
		}
	}

	if dec != nil {
		sess.SubAnswers = dec.SubAnswers
	}

	if kind == KindTeachBack {
		sess.AddTaughtConcept(conceptFor(problem.Text))
		sess.TeachBackActive = false
		// Problem source failure is non-fatal: stay on the current
		// problem and try again next turn.
		if next, err := s.problems.NextProblem(ctx, in.StudentID); err == nil {
			*problem = next
		}
	}
}

func (s *Service) buildGeneratorInput(sess *session.Session, problem session.Problem, kind Kind, category string, cls *classify.Classification, dec *scaffold.Decision) GeneratorInput {
	// Project the attempt count RecordTurn will commit, so escalation
	// reflects this turn's attempt.
	attempts := sess.CurrentProblem.AttemptCount
	if problem.ID != sess.CurrentProblem.ID {
		attempts = 0
	}
	if kind == KindAnswer || kind == KindUnparseable {
		attempts++
	}

	gin := GeneratorInput{
		Kind:              kind,
		Category:          category,
		ProblemText:       problem.Text,
		CorrectAnswer:     problem.CorrectAnswer,
		AttemptCount:      attempts,
		EscalationLevel:   session.EscalationFor(attempts),
		ScaffoldingActive: sess.ScaffoldingActive,
		TeachBackActive:   sess.TeachBackActive,
		ChatHistory:       sess.FormatHistory(),
	}
	if cls != nil {
		gin.NextAction = cls.NextAction
		gin.Tone = cls.Tone
		gin.Pattern = cls.Pattern
	}
	if dec != nil {
		gin.SynthesisAction = string(dec.Action)
		gin.SynthesisHint = dec.SynthesisHint
	}
	return gin
}

// loadOrCreate fetches the session or starts a fresh one when it is
// missing or expired, pulling the opening problem from the source.
func (s *Service) loadOrCreate(ctx context.Context, in TurnInput) (*session.Session, error) {
	if in.SessionID != "" {
		if sess, err := s.sessions.Load(ctx, in.SessionID); err == nil {
			return sess, nil
		}
	}

	problem, err := s.problems.NextProblem(ctx, in.StudentID)
	if err != nil {
		return nil, fmt.Errorf("open session for %s: %w", in.StudentID, err)
	}

	id := in.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	return session.Initialize(in.StudentID, id, problem), nil
}

// conceptFor names the concept a completed teach-back taught, derived
// from the problem's operation.
func conceptFor(problemText string) string {
	if _, _, op, ok := errpattern.ExtractArithmetic(problemText); ok {
		return string(op)
	}
	return "problem_solving"
}
