package draughts

import "fmt"

// Rules holds the configurable parts of the rule set.
type Rules struct {
	// HalfmoveLimit is the number of consecutive half-moves without a
	// capture or promotion after which the game is drawn.
	HalfmoveLimit int `json:"halfmoveLimit"`
	// RepetitionLimit is how many times the same position with the same
	// side to move must occur for a draw.
	RepetitionLimit int `json:"repetitionLimit"`
	// PromoteMidCapture lets a man that lands on the promotion row during a
	// multi-capture continue the same capture as a king. When false it
	// continues as a man and is crowned only if the capture ends there.
	PromoteMidCapture bool `json:"promoteMidCapture"`
	// CapturedPiecesBlock keeps jumped pieces on the board as obstacles
	// until the capture is complete. When false they only cannot be jumped
	// a second time.
	CapturedPiecesBlock bool  `json:"capturedPiecesBlock"`
	FirstMover          Color `json:"firstMover"`
}

func DefaultRules() Rules {
	return Rules{
		HalfmoveLimit:   50,
		RepetitionLimit: 3,
		FirstMover:      Light,
	}
}

func (r Rules) Validate() error {
	if r.HalfmoveLimit <= 0 {
		return fmt.Errorf("%w: halfmove limit must be positive, got %d", ErrInvalidRules, r.HalfmoveLimit)
	}
	if r.RepetitionLimit <= 1 {
		return fmt.Errorf("%w: repetition limit must be at least 2, got %d", ErrInvalidRules, r.RepetitionLimit)
	}
	if r.FirstMover != Light && r.FirstMover != Dark {
		return fmt.Errorf("%w: unknown first mover %v", ErrInvalidRules, r.FirstMover)
	}
	return nil
}
