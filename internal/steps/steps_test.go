package steps

import "testing"

func TestNewControllerStartsAtOCR(t *testing.T) {
	c := NewController()
	if c.Active() != StageOCR {
		t.Errorf("Expected initial stage ocr, got %s", c.Active())
	}
}

func TestSelectIsUnconditional(t *testing.T) {
	c := NewController()

	// Jump straight to a late stage with nothing completed.
	if err := c.Select(StageDiacritics); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if c.Active() != StageDiacritics {
		t.Errorf("Expected diacritics, got %s", c.Active())
	}

	// And back to an early one.
	if err := c.Select(StageOCR); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if c.Active() != StageOCR {
		t.Errorf("Expected ocr, got %s", c.Active())
	}
}

func TestSelectRejectsUnknownStage(t *testing.T) {
	c := NewController()
	if err := c.Select(Stage("typesetting")); err == nil {
		t.Error("Expected error for unknown stage")
	}
	if c.Active() != StageOCR {
		t.Errorf("Failed select must not change the active stage, got %s", c.Active())
	}
}

func TestGoBackFromReview(t *testing.T) {
	tests := []struct {
		name string
		from Stage
	}{
		{name: "from review", from: StageReview},
		{name: "from diacritics", from: StageDiacritics},
		// The transition is not context-sensitive: even from OCR it
		// forces diacritics.
		{name: "from ocr", from: StageOCR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			if err := c.Select(tt.from); err != nil {
				t.Fatalf("Select failed: %v", err)
			}

			c.GoBackFromReview()

			if c.Active() != StageDiacritics {
				t.Errorf("Expected diacritics after GoBackFromReview, got %s", c.Active())
			}
		})
	}
}

func TestReviewIsTerminal(t *testing.T) {
	c := NewController()
	if c.InReview() {
		t.Error("Fresh controller must not be in review")
	}
	if err := c.Select(StageReview); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if !c.InReview() {
		t.Error("Expected controller in review")
	}
}

func TestCompletedStagesOrdered(t *testing.T) {
	c := NewController()
	c.MarkCompleted(StageNER)
	c.MarkCompleted(StageOCR)
	c.MarkCompleted(StageNER) // Marking twice is fine.

	done := c.Completed()
	if len(done) != 2 {
		t.Fatalf("Expected 2 completed stages, got %d", len(done))
	}
	if done[0] != StageOCR || done[1] != StageNER {
		t.Errorf("Expected [ocr ner], got %v", done)
	}
}

func TestParseStage(t *testing.T) {
	for _, stage := range Stages() {
		parsed, err := ParseStage(string(stage))
		if err != nil {
			t.Errorf("ParseStage(%s) failed: %v", stage, err)
		}
		if parsed != stage {
			t.Errorf("ParseStage(%s) = %s", stage, parsed)
		}
	}

	if _, err := ParseStage("binding"); err == nil {
		t.Error("Expected error for unknown stage name")
	}
}
