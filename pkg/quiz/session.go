package quiz

import (
	"math/rand"
	"sort"
)

// Session is the state of one drill: the kana table and the score of every
// kana not yet mastered.
type Session struct {
	kana        map[string]string
	scores      map[string]int
	romaji      []string
	targetScore int
	optionCount int
}

// NewSession starts a drill over kana (kana → romaji). Every kana starts at
// score 0 and is removed once it reaches targetScore.
func NewSession(kana map[string]string, targetScore, optionCount int) *Session {
	if targetScore < 1 {
		targetScore = 1
	}
	if optionCount < 1 {
		optionCount = 1
	}
	s := &Session{
		kana:        kana,
		scores:      make(map[string]int, len(kana)),
		targetScore: targetScore,
		optionCount: optionCount,
	}
	seen := make(map[string]bool)
	for k, r := range kana {
		s.scores[k] = 0
		if !seen[r] {
			seen[r] = true
			s.romaji = append(s.romaji, r)
		}
	}
	sort.Strings(s.romaji)
	return s
}

// TargetScore returns the score at which a kana is retired.
func (s *Session) TargetScore() int { return s.targetScore }

// Remaining returns the number of active kana.
func (s *Session) Remaining() int { return len(s.scores) }

// Done reports whether every kana reached the target.
func (s *Session) Done() bool { return len(s.scores) == 0 }

// Score returns the current score of kana.
func (s *Session) Score(kana string) int { return s.scores[kana] }

// Romaji returns the expected answer for kana.
func (s *Session) Romaji(kana string) string { return s.kana[kana] }

// Next picks a random active kana. It returns false when the session is done.
func (s *Session) Next(rng *rand.Rand) (string, bool) {
	if s.Done() {
		return "", false
	}
	active := make([]string, 0, len(s.scores))
	for k := range s.scores {
		active = append(active, k)
	}
	sort.Strings(active)
	return active[rng.Intn(len(active))], true
}

// Options returns the correct romaji of kana plus up to optionCount-1
// distinct distractors drawn from the whole table, in random order.
func (s *Session) Options(kana string, rng *rand.Rand) []string {
	correct := s.kana[kana]
	pool := make([]string, 0, len(s.romaji))
	for _, r := range s.romaji {
		if r != correct {
			pool = append(pool, r)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := min(s.optionCount-1, len(pool))
	options := append([]string{correct}, pool[:n]...)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

// Answer scores one attempt: correct adds one, wrong subtracts one but
// never below zero. It returns the new score and whether the kana was
// retired. Unknown or retired kana are ignored.
func (s *Session) Answer(kana string, correct bool) (score int, retired bool) {
	score, ok := s.scores[kana]
	if !ok {
		return 0, false
	}
	if correct {
		score++
	} else {
		score = max(0, score-1)
	}
	if score >= s.targetScore {
		delete(s.scores, kana)
		return score, true
	}
	s.scores[kana] = score
	return score, false
}
