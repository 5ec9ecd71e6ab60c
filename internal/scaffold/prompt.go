package scaffold

import (
	"fmt"
	"strings"
)

const deciderSystemPrompt = `You are a scaffolding progress analyzer for a math tutor. A problem has been broken into sub-questions the student answers one at a time. Decide whether the collected sub-answers should now be combined into the final answer (synthesize) or whether more intermediate steps are needed (continue).

Synthesize when the student has correctly answered two or more related sub-questions that combine into the final answer, or when the conversation is looping: the tutor asked the same question again in different words, or the student gave the same answer twice.

Continue when only one sub-answer is collected, or the latest sub-answer does not connect to the previous ones.`

// buildDeciderUserMessage assembles the context for one progress check.
func buildDeciderUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Main problem: %s\n", in.ProblemText)
	fmt.Fprintf(&b, "Correct answer: %s\n", in.CorrectAnswer)
	fmt.Fprintf(&b, "Latest response (validated correct): %q\n", in.StudentMessage)

	b.WriteString("\nSub-answers collected so far:\n")
	if len(in.SubAnswers) == 0 {
		b.WriteString("None\n")
	} else {
		for _, a := range in.SubAnswers {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	b.WriteString("\nRecent conversation:\n")
	if in.ChatHistory == "" {
		b.WriteString("None\n")
	} else {
		b.WriteString(in.ChatHistory)
		b.WriteString("\n")
	}

	b.WriteString(`
Instructions:
1. Extract the sub-answers from the conversation, including the latest response.
2. Check for loops: the same question asked twice with different wording, or the same answer given twice.
3. Judge whether the sub-answers combine to reach the final answer.
4. If synthesizing, write a short question that recombines the named sub-answers (e.g. "You moved 3 steps, then 5 more. Where do you end up?"). Otherwise leave synthesis_hint empty.`)

	return b.String()
}
