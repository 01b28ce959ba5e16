package spaced_repetition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuality(t *testing.T) {
	tests := []struct {
		name    string
		kind    ActivityKind
		outcome Outcome
		want    float64
	}{
		{"flashcard immediate recall", ActivityFlashcard, Outcome{Correct: true, Attempts: 1}, 5},
		{"flashcard second attempt", ActivityFlashcard, Outcome{Correct: true, Attempts: 2}, 4},
		{"flashcard many attempts floors", ActivityFlashcard, Outcome{Correct: true, Attempts: 7}, 3},
		{"flashcard forgot", ActivityFlashcard, Outcome{Correct: false}, 1},

		{"quiz correct", ActivityQuiz, Outcome{Correct: true}, 4},
		{"quiz incorrect", ActivityQuiz, Outcome{Correct: false}, 1},
		{"vocab blinder correct", ActivityVocabBlinder, Outcome{Correct: true}, 4},
		{"vocab blinder incorrect", ActivityVocabBlinder, Outcome{Correct: false}, 1},

		{"listening no replays", ActivityListening, Outcome{Correct: true, Replays: 0}, 5},
		{"listening one replay", ActivityListening, Outcome{Correct: true, Replays: 1}, 4},
		{"listening many replays floors", ActivityListening, Outcome{Correct: true, Replays: 5}, 3},
		{"listening wrong", ActivityListening, Outcome{Correct: false, Replays: 2}, 1},

		{"hangman clean win", ActivityHangman, Outcome{Correct: true, WrongGuesses: 0}, 5},
		{"hangman two misses", ActivityHangman, Outcome{Correct: true, WrongGuesses: 2}, 3.5},
		{"hangman many misses floors", ActivityHangman, Outcome{Correct: true, WrongGuesses: 9}, 2},
		{"hangman lost", ActivityHangman, Outcome{Correct: false, WrongGuesses: 6}, 1},

		{"spelling clean", ActivitySpelling, Outcome{Correct: true, WrongGuesses: 0}, 5},
		{"spelling typo", ActivitySpelling, Outcome{Correct: true, WrongGuesses: 1}, 4.25},

		{"matching first try", ActivityMatching, Outcome{Correct: true, FirstTry: true}, 5},
		{"matching with retry", ActivityMatching, Outcome{Correct: true, FirstTry: false}, 3},
		{"matching failed", ActivityMatching, Outcome{Correct: false}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeQuality(tt.kind, tt.outcome)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeQualityUnknownKind(t *testing.T) {
	_, err := NormalizeQuality(ActivityKind("karaoke"), Outcome{Correct: true})
	require.Error(t, err)
}

func TestNormalizeQualityStaysInRange(t *testing.T) {
	kinds := []ActivityKind{
		ActivityFlashcard, ActivityQuiz, ActivityListening,
		ActivityHangman, ActivityMatching, ActivitySpelling, ActivityVocabBlinder,
	}
	for _, kind := range kinds {
		for attempts := 0; attempts < 20; attempts++ {
			for _, correct := range []bool{true, false} {
				outcome := Outcome{
					Correct:      correct,
					Attempts:     attempts,
					Replays:      attempts,
					WrongGuesses: attempts,
					FirstTry:     attempts == 0,
				}
				q, err := NormalizeQuality(kind, outcome)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, q, 0.0, "kind %s outcome %+v", kind, outcome)
				assert.LessOrEqual(t, q, 5.0, "kind %s outcome %+v", kind, outcome)
			}
		}
	}
}
