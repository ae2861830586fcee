package game

import "errors"

// Rejection reasons returned by Engine.Dispatch. A rejected action leaves the
// match untouched.
var (
	ErrInsufficientMana = errors.New("insufficient mana")
	ErrNoSuchCard       = errors.New("card not in hand")
	ErrNoSuchUnit       = errors.New("no such unit")
	ErrNoSuchTarget     = errors.New("no such target")
	ErrExhausted        = errors.New("unit is exhausted")
	ErrTaunt            = errors.New("must attack a Taunt unit")
	ErrWrongPhase       = errors.New("action not allowed in this phase")
	ErrInvalidBid       = errors.New("invalid bid")
	ErrMatchOver        = errors.New("match is over")
	ErrUnknownAction    = errors.New("unknown action")
)

var rejections = []error{
	ErrInsufficientMana,
	ErrNoSuchCard,
	ErrNoSuchUnit,
	ErrNoSuchTarget,
	ErrExhausted,
	ErrTaunt,
	ErrWrongPhase,
	ErrInvalidBid,
	ErrMatchOver,
	ErrUnknownAction,
}

// IsRejection reports whether err is one of the engine's rejection reasons,
// as opposed to a failure outside the rules.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
