package spaced_repetition

import "fmt"

// ActivityKind identifies the kind of study activity that produced an outcome.
type ActivityKind string

const (
	// ActivityFlashcard is a plain flashcard flip (remembered / forgot)
	ActivityFlashcard ActivityKind = "flashcard"
	// ActivityQuiz is a multiple-choice translation quiz
	ActivityQuiz ActivityKind = "quiz"
	// ActivityListening is a listen-and-choose round with optional audio replays
	ActivityListening ActivityKind = "listening"
	// ActivityHangman is a hangman round counting wrong letter guesses
	ActivityHangman ActivityKind = "hangman"
	// ActivityMatching is a word-pair matching round
	ActivityMatching ActivityKind = "matching"
	// ActivitySpelling is a type-the-word round counting wrong attempts
	ActivitySpelling ActivityKind = "spelling"
	// ActivityVocabBlinder is a binary recognize-or-not round
	ActivityVocabBlinder ActivityKind = "vocab_blinder"
)

// Outcome carries the raw result of one activity round. Each activity kind
// reads only the fields that apply to it.
type Outcome struct {
	Correct      bool
	Attempts     int  // flashcard: attempts before the correct recall (1 = immediate)
	Replays      int  // listening: times the audio was replayed
	WrongGuesses int  // hangman, spelling: wrong guesses before completion
	FirstTry     bool // matching: matched without any mismatch
}

type qualityFunc func(Outcome) float64

// qualityTable maps every activity kind to its own quality heuristic. All
// mappings saturate into the shared [0,5] scale, so the SM-2 engine never
// knows which activity produced the signal.
var qualityTable = map[ActivityKind]qualityFunc{
	ActivityFlashcard:    flashcardQuality,
	ActivityQuiz:         binaryQuality(4, 1),
	ActivityListening:    listeningQuality,
	ActivityHangman:      guessQuality,
	ActivityMatching:     matchingQuality,
	ActivitySpelling:     guessQuality,
	ActivityVocabBlinder: binaryQuality(4, 1),
}

// NormalizeQuality maps an activity outcome onto the canonical 0-5 quality
// scale. Unknown activity kinds are rejected.
func NormalizeQuality(kind ActivityKind, outcome Outcome) (float64, error) {
	fn, ok := qualityTable[kind]
	if !ok {
		return 0, fmt.Errorf("unknown activity kind: %q", kind)
	}
	return clampQuality(fn(outcome)), nil
}

func flashcardQuality(o Outcome) float64 {
	if !o.Correct {
		return 1
	}
	// Immediate recall is perfect; every extra attempt costs a full point.
	q := 5 - float64(o.Attempts-1)
	if q < 3 {
		q = 3
	}
	return q
}

func listeningQuality(o Outcome) float64 {
	if !o.Correct {
		return 1
	}
	q := 5 - float64(o.Replays)
	if q < 3 {
		q = 3
	}
	return q
}

func guessQuality(o Outcome) float64 {
	if !o.Correct {
		return 1
	}
	q := 5 - 0.75*float64(o.WrongGuesses)
	if q < 2 {
		q = 2
	}
	return q
}

func matchingQuality(o Outcome) float64 {
	switch {
	case o.Correct && o.FirstTry:
		return 5
	case o.Correct:
		return 3
	default:
		return 1
	}
}

// binaryQuality builds the mapping for activities that only report
// correct/incorrect.
func binaryQuality(pass, fail float64) qualityFunc {
	return func(o Outcome) float64 {
		if o.Correct {
			return pass
		}
		return fail
	}
}

func clampQuality(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 5 {
		return 5
	}
	return q
}
