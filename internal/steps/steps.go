// Package steps sequences an operator through the book-processing wizard.
// Navigation is open: the operator may jump to any stage at any time, and no
// stage requires the previous ones to be complete.
package steps

import (
	"fmt"
	"sync"
)

// Stage is one step of the book-processing wizard.
type Stage string

const (
	StageOCR             Stage = "ocr"
	StageChapterFootnote Stage = "chapter-footnote"
	StageNER             Stage = "ner"
	StageDiacritics      Stage = "diacritics"
	// StageReview is terminal: reaching it hands the operator off to the
	// full-screen review view instead of a wizard panel.
	StageReview Stage = "review"
)

// Stages returns the wizard stages in processing order.
func Stages() []Stage {
	return []Stage{StageOCR, StageChapterFootnote, StageNER, StageDiacritics, StageReview}
}

// ParseStage validates a stage name.
func ParseStage(s string) (Stage, error) {
	for _, stage := range Stages() {
		if string(stage) == s {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown processing stage: %q", s)
}

// Controller tracks the active and completed stages for one book. State is
// ephemeral, it is not persisted across restarts.
type Controller struct {
	mu        sync.Mutex
	active    Stage
	completed map[Stage]struct{}
}

// NewController creates a controller positioned at the first stage.
func NewController() *Controller {
	return &Controller{
		active:    Stages()[0],
		completed: make(map[Stage]struct{}),
	}
}

// Active returns the currently active stage.
func (c *Controller) Active() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Select unconditionally activates the given stage. There is no check that
// prior stages are complete.
func (c *Controller) Select(stage Stage) error {
	if _, err := ParseStage(string(stage)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = stage
	return nil
}

// GoBackFromReview activates the second-to-last configured stage. The target
// is fixed, not the last stage the operator visited, and the transition is
// applied no matter which stage is currently active.
func (c *Controller) GoBackFromReview() {
	stages := Stages()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = stages[len(stages)-2]
}

// MarkCompleted records a stage as done.
func (c *Controller) MarkCompleted(stage Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed[stage] = struct{}{}
}

// Completed returns the completed stages in processing order.
func (c *Controller) Completed() []Stage {
	c.mu.Lock()
	defer c.mu.Unlock()

	var done []Stage
	for _, stage := range Stages() {
		if _, ok := c.completed[stage]; ok {
			done = append(done, stage)
		}
	}
	return done
}

// InReview reports whether the controller has reached the terminal stage.
func (c *Controller) InReview() bool {
	return c.Active() == StageReview
}
