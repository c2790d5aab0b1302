package generation

import "strings"

// DefaultRecentWindowSize is how many prior questions are fed back to the model.
const DefaultRecentWindowSize = 6

// RecentQuestions is a FIFO of the most recently accepted questions, used only
// as prompt context to steer the model away from duplicates. It never holds
// more than its size; the oldest entry is evicted first.
type RecentQuestions struct {
	size  int
	items []string
}

// NewRecentQuestions creates an empty window holding at most size questions.
// A non-positive size falls back to DefaultRecentWindowSize.
func NewRecentQuestions(size int) *RecentQuestions {
	if size <= 0 {
		size = DefaultRecentWindowSize
	}
	return &RecentQuestions{
		size:  size,
		items: make([]string, 0, size+1),
	}
}

// Push appends question and evicts the oldest entry when the window overflows.
func (w *RecentQuestions) Push(question string) {
	w.items = append(w.items, question)
	if len(w.items) > w.size {
		copy(w.items, w.items[1:])
		w.items = w.items[:w.size]
	}
}

// Len returns the number of questions currently held.
func (w *RecentQuestions) Len() int {
	return len(w.items)
}

// Items returns the held questions, oldest first.
func (w *RecentQuestions) Items() []string {
	out := make([]string, len(w.items))
	copy(out, w.items)
	return out
}

// Joined renders the window as newline-separated questions for the prompt.
func (w *RecentQuestions) Joined() string {
	return strings.Join(w.items, "\n")
}
