package genai

import (
	"context"
	"fmt"
)

// playbookSystemPrompt frames the model as an incident responder
const playbookSystemPrompt = "You are a senior SOC incident responder. " +
	"Given short, structured findings from a DGA detection model, output a concise, prescriptive response plan."

// playbookUserPrompt builds the findings-specific prompt. The constraints pin
// the structure so the output stays actionable.
func playbookUserPrompt(findings string) string {
	return "Create a prescriptive incident response playbook for a suspected DGA domain.\n\n" +
		"Constraints:\n" +
		"- Keep to 6-10 concrete steps grouped under phases: Immediate Containment, Investigation, Eradication/Recovery, and Follow-Up.\n" +
		"- Each step should be actionable (with commands, queries, or owners when relevant).\n" +
		"- Tailor recommendations to the provided model explanation and observed features.\n" +
		"- Avoid generic boilerplate; be specific to DGA/command-and-control risk.\n\n" +
		"Findings:\n" + findings + "\n"
}

// Playbook is the degrade boundary for playbook generation: a missing
// credential, transport failure, bad status, or empty response all become a
// descriptive error string in the result, never an error to the caller.
func Playbook(ctx context.Context, apiKey, findings string, opts ...Option) string {
	client, err := New(apiKey, opts...)
	if err != nil {
		return fmt.Sprintf("[genai error] %v. Set GOOGLE_API_KEY or pass --api-key.", err)
	}

	text, err := client.GeneratePlaybook(ctx, findings)
	if err != nil {
		return fmt.Sprintf("[genai error] %v", err)
	}

	return text
}
