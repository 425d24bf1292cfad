package models

// Difficulty tags how hard a question is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Choices are the three labelled answers shown with a question
type Choices struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
	C string `json:"c" yaml:"c"`
}

// Question represents one trivia prompt from the static corpus
type Question struct {
	ID         string     `json:"id" yaml:"id"`
	Question   string     `json:"question" yaml:"question"`
	Choices    Choices    `json:"choices" yaml:"choices"`
	Answer     string     `json:"answer" yaml:"answer"`
	FunFact    string     `json:"fun_fact,omitempty" yaml:"fun_fact,omitempty"`
	Category   string     `json:"category,omitempty" yaml:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// HasCategory reports whether the question is tagged with a category.
// Uncategorized questions pass every category filter.
func (q Question) HasCategory() bool {
	return q.Category != ""
}

// CorrectVote returns the ballot that matches the answer letter, falling back to A
func (q Question) CorrectVote() Vote {
	v, ok := ParseVote(q.Answer)
	if !ok || v == VoteSnake {
		return VoteA
	}
	return v
}

// Choice returns the text for an answer letter
func (q Question) Choice(v Vote) string {
	switch v {
	case VoteA:
		return q.Choices.A
	case VoteB:
		return q.Choices.B
	case VoteC:
		return q.Choices.C
	}
	return ""
}
