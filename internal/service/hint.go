package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"promptquest/internal/llm"
	"promptquest/internal/model"
	"promptquest/internal/similarity"
)

const maxHintWords = 6

const hintInstruction = `You write clues for a prompt-guessing game. The player is trying to reproduce a hidden system prompt.
Reply with ONE cryptic clue of at most six words that nudges the player closer.
Never quote the hidden prompt, never repeat its key phrases, never describe its structure.
Reply with the clue only: no quotes, no preamble, no punctuation beyond the clue itself.`

// HintGenerator asks the model for a short, non-revealing clue
type HintGenerator struct {
	completer   llm.Completer
	model       string
	temperature float32
}

func NewHintGenerator(completer llm.Completer, model string, temperature float32) *HintGenerator {
	return &HintGenerator{completer: completer, model: model, temperature: temperature}
}

// Generate never fails: any problem yields model.FallbackHint and ok=false.
func (g *HintGenerator) Generate(ctx context.Context, referenceText, candidateText string) (hint string, ok bool) {
	user := fmt.Sprintf("Hidden prompt:\n%s\n\nPlayer's attempt:\n%s", referenceText, candidateText)
	out, err := g.completer.Complete(ctx, llm.ChatRequest{
		Model:       g.model,
		System:      hintInstruction,
		User:        user,
		Temperature: llm.Float32(g.temperature),
	})
	if err != nil {
		log.Printf("hint generator: %v (using fallback)", err)
		return model.FallbackHint, false
	}

	hint = sanitizeHint(out)
	if hint == "" || revealsReference(hint, referenceText) {
		log.Printf("hint generator: unusable hint %q (using fallback)", out)
		return model.FallbackHint, false
	}
	return hint, true
}

// sanitizeHint keeps the first line, drops wrapping quotes and caps the word count
func sanitizeHint(raw string) string {
	text := llm.CleanText(raw)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.Trim(strings.TrimSpace(text), "\"'`“”‘’")
	text = strings.TrimPrefix(text, "Clue:")
	text = strings.TrimPrefix(text, "Hint:")

	words := strings.Fields(text)
	if len(words) > maxHintWords {
		words = words[:maxHintWords]
	}
	return strings.Join(words, " ")
}

// revealNgram is how many consecutive reference words a hint may not repeat
const revealNgram = 4

// revealsReference reports whether the hint repeats a run of reference words.
// References shorter than the run must not appear whole.
func revealsReference(hint, reference string) bool {
	ref := similarity.Tokens(reference)
	if len(ref) == 0 {
		return false
	}
	n := min(revealNgram, len(ref))
	padded := " " + strings.Join(similarity.Tokens(hint), " ") + " "
	for i := 0; i+n <= len(ref); i++ {
		if strings.Contains(padded, " "+strings.Join(ref[i:i+n], " ")+" ") {
			return true
		}
	}
	return false
}
