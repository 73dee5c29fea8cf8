package domain

import (
	"fmt"
	"strings"
	"time"
)

// FeedbackMode selects which feedback slot a submission fills
type FeedbackMode string

const (
	// FeedbackOptional is the first-feedback slot, open once resolved
	FeedbackOptional FeedbackMode = "optional"
	// FeedbackMandatory is required from the citizen once closed
	FeedbackMandatory FeedbackMode = "mandatory"
)

// checkFeedback validates rating and comment for the given mode
func checkFeedback(mode FeedbackMode, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if mode == FeedbackMandatory && strings.TrimSpace(comment) == "" {
		return fmt.Errorf("%w: comment is required", ErrValidation)
	}
	return nil
}

// acceptsFeedback reports whether the complaint's status opens the slot
func (c *Complaint) acceptsFeedback(mode FeedbackMode) bool {
	switch mode {
	case FeedbackOptional:
		return c.Status == StatusResolved || c.Status == StatusClosed
	case FeedbackMandatory:
		return c.Status == StatusClosed
	}
	return false
}

// SubmitFeedback stores feedback in the slot selected by mode. A second
// submission to the same slot overwrites the first.
func (c *Complaint) SubmitFeedback(mode FeedbackMode, rating int, comment string, now time.Time) error {
	if mode != FeedbackOptional && mode != FeedbackMandatory {
		return fmt.Errorf("%w: unknown feedback mode %q", ErrValidation, mode)
	}
	if err := checkFeedback(mode, rating, comment); err != nil {
		return err
	}
	if !c.acceptsFeedback(mode) {
		return fmt.Errorf("%w: %s feedback is not accepted while complaint is %s", ErrInvalidState, mode, c.Status)
	}

	fb := &Feedback{Rating: rating, Comment: comment, SubmittedAt: now}
	if mode == FeedbackMandatory {
		c.MandatoryFeedback = fb
	} else {
		c.Feedback = fb
	}
	return nil
}
