package sentiment

// Keyword lists used by Score. The two sets are disjoint.
var positiveWords = newWordSet(
	"happy", "joy", "excited", "great", "wonderful", "amazing", "fantastic", "excellent",
	"good", "positive", "love", "like", "enjoy", "pleased", "satisfied", "content",
	"peaceful", "calm", "relaxed", "grateful", "blessed", "lucky", "fortunate",
	"success", "achievement", "progress", "improvement", "growth", "learning",
	"smile", "laugh", "fun", "enjoyable", "beautiful", "perfect", "awesome",
)

var negativeWords = newWordSet(
	"sad", "depressed", "angry", "frustrated", "anxious", "worried", "scared", "afraid",
	"terrible", "awful", "horrible", "bad", "negative", "hate", "dislike", "upset",
	"disappointed", "hurt", "pain", "suffering", "struggle", "difficult", "hard",
	"stress", "pressure", "overwhelmed", "exhausted", "tired", "lonely", "alone",
	"hopeless", "helpless", "worthless", "useless", "failure", "defeat", "loss",
	"cry", "tears", "sadness", "grief", "sorrow", "misery", "despair",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

func (s wordSet) list() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	return out
}
