package docimage

import (
	"fmt"
	"strings"
)

func readerSystemPrompt(d DocType) string {
	p := readerProfiles[d]
	var b strings.Builder
	b.WriteString("You are a medical document transcriptionist. You are shown photographs of a ")
	b.WriteString(strings.ReplaceAll(string(d), "_", " "))
	b.WriteString(".\n\nExtract ")
	b.WriteString(p.focus)
	b.WriteString(".\n\nTranscribe exactly what is printed or written. Do not infer values that are ")
	b.WriteString("illegible; use null for anything you cannot read. Do not interpret the findings.\n\n")
	b.WriteString("Respond with a single JSON object, no markdown fences, shaped like:\n")
	b.WriteString(p.shape)
	b.WriteString("\n")
	return b.String()
}

func readerUserPrompt(n int) string {
	if n == 1 {
		return "Extract the structured content of this document image."
	}
	return fmt.Sprintf("Extract the structured content across these %d images of the same document.", n)
}

func interpreterSystemPrompt(mode string, profileText string, ignoreRules []string) string {
	var b strings.Builder
	b.WriteString("You are a clinician summarizing extracted document data for a colleague.\n\n")

	switch mode {
	case ModeRounding:
		b.WriteString("Write a ward-round brief: two or three sentences a doctor could read aloud at the bedside. Lead with the headline finding.\n")
	case ModeSignificant:
		b.WriteString("Report only abnormal or clinically significant findings. If everything is within normal limits, say exactly that in one sentence.\n")
	default:
		b.WriteString("Write a concise clinical interpretation: what the document shows, which findings matter, and what they suggest. Plain prose, no preamble.\n")
	}

	if profileText != "" {
		b.WriteString("\nAbout the reader of your summary:\n")
		b.WriteString(profileText)
		b.WriteString("\n")
	}
	if len(ignoreRules) > 0 {
		b.WriteString("\nDo not comment on any of the following:\n")
		for _, r := range ignoreRules {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	b.WriteString("\nRespond with the interpretation text only, no JSON, no headings.\n")
	return b.String()
}

func interpreterUserPrompt(d DocType, extracted string) string {
	return fmt.Sprintf("Data extracted from a %s:\n\n%s",
		strings.ReplaceAll(string(d), "_", " "), extracted)
}
