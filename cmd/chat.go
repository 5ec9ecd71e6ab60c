package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/socra/internal/config"
	"github.com/abhisek/socra/internal/llm"
	"github.com/abhisek/socra/internal/scaffold"
	"github.com/abhisek/socra/internal/session"
	"github.com/abhisek/socra/internal/store"
	"github.com/abhisek/socra/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a tutoring session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func init() {
	chatCmd.Flags().String("student", "student", "Student identifier")
	chatCmd.Flags().String("session", "", "Resume an existing session by id")
	chatCmd.Flags().String("age-group", config.DefaultAgeGroup, "Age group for response style (grades_3-5, grades_6-8, grades_9-12)")
	chatCmd.Flags().String("registries", "", "Path to a registry override YAML file")
}

func runChat(cmd *cobra.Command) error {
	ctx := context.Background()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	registriesPath, _ := cmd.Flags().GetString("registries")
	registries, err := config.Load(registriesPath)
	if err != nil {
		return err
	}

	provider, err := buildProvider(ctx, s)
	if err != nil {
		return err
	}

	ageGroup, _ := cmd.Flags().GetString("age-group")
	gen := &templateGenerator{age: registries.AgeGroupFor(ageGroup)}

	svc := tutor.NewService(s.Sessions(), builtinProblems(), gen, scaffold.NewDecider(provider))

	studentID, _ := cmd.Flags().GetString("student")
	sessionID, _ := cmd.Flags().GetString("session")

	fmt.Println("Socra math tutor. Type your answers, or 'quit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		res, err := svc.HandleTurn(ctx, tutor.TurnInput{
			StudentID: studentID,
			SessionID: sessionID,
			Message:   line,
			IsAnswer:  looksLikeAnswer(line),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		sessionID = res.SessionID
		fmt.Println(res.Response)
	}
	return scanner.Err()
}

// buildProvider resolves the reasoning backend: explicit SOCRA_* config
// first, then standard vendor keys, then the mock for offline use.
func buildProvider(ctx context.Context, s *store.Store) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		} else {
			fmt.Fprintln(os.Stderr, "note: no reasoning API key found; scaffolding decisions fall back to continue")
			cfg.Provider = "mock"
		}
	}
	return llm.NewProvider(ctx, cfg, s.LLMAudit())
}

// answerRe spots digits, number words, and fraction shapes. The transport
// flags answer attempts; the verifier does the real parsing.
var answerRe = regexp.MustCompile(`(?i)\d|\b(zero|one|two|three|four|five|six|seven|eight|nine|ten|negative|minus)\b`)

func looksLikeAnswer(line string) bool {
	return answerRe.MatchString(line)
}

// builtinProblems is the demo problem sequence. A real deployment plugs
// its own tutor.ProblemSource.
func builtinProblems() *listSource {
	return &listSource{problems: []session.Problem{
		{ID: "nl-1", Text: "What is -3 + 5?", CorrectAnswer: "2"},
		{ID: "fr-1", Text: "What is 1/4 + 1/2?", CorrectAnswer: "3/4"},
		{ID: "nl-2", Text: "What is -7 - 4?", CorrectAnswer: "-11"},
		{ID: "mu-1", Text: "What is -3 * 5?", CorrectAnswer: "-15"},
		{ID: "wd-1", Text: "Ava has 8 marbles and gives away 3. How many are left?", CorrectAnswer: "5"},
	}}
}

type listSource struct {
	problems []session.Problem
	next     int
}

func (l *listSource) NextProblem(_ context.Context, _ string) (session.Problem, error) {
	p := l.problems[l.next%len(l.problems)]
	l.next++
	return p, nil
}

// templateGenerator renders deterministic replies from the pipeline's
// structured output, styled by the age-group registry. It stands in for
// a full dialogue generator, which is out of scope for the core.
type templateGenerator struct {
	age config.AgeGroup
}

func (g *templateGenerator) GenerateResponse(_ context.Context, in tutor.GeneratorInput) (string, error) {
	switch in.Kind {
	case tutor.KindUnparseable:
		return fmt.Sprintf("I couldn't read that as a number. Try again with just the value - the problem is: %s", in.ProblemText), nil

	case tutor.KindTeachBack:
		return fmt.Sprintf("Great explanation! Here's your next one: %s", in.ProblemText), nil

	case tutor.KindAnswer:
		return g.answerReply(in), nil

	default:
		return fmt.Sprintf("Let's stay with the problem: %s", in.ProblemText), nil
	}
}

// encourage prepends the concrete framing younger bands need; older
// bands get the reply as-is.
func (g *templateGenerator) encourage(reply string) string {
	if g.age.ScaffoldingDepth == "high" {
		return reply + " Picture it on a number line if that helps!"
	}
	return reply
}

func (g *templateGenerator) answerReply(in tutor.GeneratorInput) string {
	if in.SynthesisAction == string(scaffold.ActionSynthesize) && in.SynthesisHint != "" {
		return in.SynthesisHint
	}

	switch in.Category {
	case "correct":
		return "That's right! Now teach it back to me: how did you get it?"
	case "close":
		return "So close! Check your arithmetic one more time."
	}

	// Wrong answer: escalate by attempts, lean on the matched
	// misconception when we have one.
	switch in.EscalationLevel {
	case session.LevelProbe:
		if in.Pattern != nil {
			return fmt.Sprintf("Not quite. %s", in.Pattern.Hint)
		}
		return fmt.Sprintf("Not quite. What operation does this problem ask for? %s", in.ProblemText)
	case session.LevelHint:
		return g.encourage(fmt.Sprintf("Let's slow down. Break it into steps: %s", in.ProblemText))
	default:
		return fmt.Sprintf("Let me walk you through it. The answer is %s - let's see why, step by step.", in.CorrectAnswer)
	}
}
