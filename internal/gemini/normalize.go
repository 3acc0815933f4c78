package gemini

import (
	"errors"
	"strings"
)

// generatedTaskCount is a product decision: five suggestions, always.
const generatedTaskCount = 5

var (
	// ErrGenerationFailed covers every provider-side failure: transport,
	// non-2xx responses, and responses with no usable text.
	ErrGenerationFailed = errors.New("failed to generate tasks")

	// ErrNotEnoughTasks is returned when the model produced fewer than
	// five usable lines.
	ErrNotEnoughTasks = errors.New("failed to generate enough tasks")
)

// GeneratedTask is a single suggested task title.
type GeneratedTask struct {
	Title string `json:"title"`
}

// ParseTitles turns raw model output into exactly five title candidates.
// Lines are trimmed and blank lines dropped; no bullet or numbering parsing
// happens, so any numbering the model emits stays part of the title. Fewer
// than five surviving lines is a hard failure; surplus lines are discarded.
func ParseTitles(raw string) ([]GeneratedTask, error) {
	lines := strings.Split(raw, "\n")

	tasks := make([]GeneratedTask, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tasks = append(tasks, GeneratedTask{Title: line})
	}

	if len(tasks) < generatedTaskCount {
		return nil, ErrNotEnoughTasks
	}
	return tasks[:generatedTaskCount], nil
}
