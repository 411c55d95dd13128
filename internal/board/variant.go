package board

import "fmt"

// Variant selects the rule set a Position plays under. It is fixed at
// construction time and never changes for the lifetime of the Position.
type Variant uint8

const (
	Standard Variant = iota
	Antichess
	Atomic
	Crazyhouse
	ThreeCheck
	KingOfTheHill
	numVariants
)

// String returns the canonical variant name.
func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Antichess:
		return "antichess"
	case Atomic:
		return "atomic"
	case Crazyhouse:
		return "crazyhouse"
	case ThreeCheck:
		return "3check"
	case KingOfTheHill:
		return "kingofthehill"
	default:
		return "unknown"
	}
}

// ParseVariant parses a variant name.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "standard", "chess", "":
		return Standard, nil
	case "antichess", "giveaway", "suicide":
		return Antichess, nil
	case "atomic":
		return Atomic, nil
	case "crazyhouse":
		return Crazyhouse, nil
	case "3check", "threecheck":
		return ThreeCheck, nil
	case "kingofthehill", "koth":
		return KingOfTheHill, nil
	}
	return Standard, fmt.Errorf("unknown variant: %s", name)
}

// Outcome is the result of a finished game from the side to move's
// point of view. NoOutcome means the game is still running.
type Outcome int8

const (
	Loss      Outcome = -1
	NoOutcome Outcome = 0
	Win       Outcome = 1
)

// Rules is the per-variant policy object. Every variant-dependent decision
// point in move execution, legality, SEE and draw detection goes through
// this interface; the core never switches on the variant tag at call sites.
// A Rules value is stateless and resolved once when a Position is built.
type Rules interface {
	Variant() Variant

	// RoyalKing reports whether the king is subject to check and mate.
	// When false (antichess) there is no check concept at all: the king
	// moves, is captured, and promotes like any other piece.
	RoyalKing() bool

	// CountsChecks reports whether delivered checks accumulate toward a
	// win condition (three-check).
	CountsChecks() bool

	// MustCapture reports whether capturing is compulsory when a capture
	// is available (antichess).
	MustCapture() bool

	// BlastOnCapture reports whether captures explode: the captured piece,
	// the capturer, and every non-pawn piece adjacent to the destination
	// are removed (atomic).
	BlastOnCapture() bool

	// AllowsDrops reports whether captured pieces join the capturer's
	// reserve and may be dropped back on empty squares (crazyhouse).
	AllowsDrops() bool

	// HasCastling reports whether castling exists in this variant.
	HasCastling() bool

	// MaxPromotion is the highest piece type a pawn may promote to.
	// Queen for most variants, King for antichess.
	MaxPromotion() PieceType

	// ExchangeValue gives the piece value used by SEE attacker ordering.
	// Variants where the king is just another piece value it cheaply.
	ExchangeValue(pt PieceType) int

	// Checkers computes the set of enemy pieces checking c's king under
	// this variant's check semantics.
	Checkers(p *Position, c Color) Bitboard

	// EndsGame reports a variant-specific terminal condition (exploded
	// king, third check, king on the hill, all pieces given away).
	// Checkmate and stalemate are the caller's concern.
	EndsGame(p *Position) (Outcome, bool)
}

// RulesFor resolves the policy object for a variant tag.
func RulesFor(v Variant) Rules {
	return allRules[v]
}

var allRules = [numVariants]Rules{
	Standard:      standardRules{},
	Antichess:     antichessRules{},
	Atomic:        atomicRules{},
	Crazyhouse:    crazyhouseRules{},
	ThreeCheck:    threeCheckRules{},
	KingOfTheHill: kothRules{},
}

var exchangeValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Antichess values the king like a minor piece since it enjoys no
// protection and captures against it are compulsory anyway.
var antiExchangeValue = [7]int{100, 320, 330, 500, 900, 300, 0}

// standardRules is ordinary chess and the embedding base for all variants.
type standardRules struct{}

func (standardRules) Variant() Variant            { return Standard }
func (standardRules) RoyalKing() bool             { return true }
func (standardRules) CountsChecks() bool          { return false }
func (standardRules) MustCapture() bool           { return false }
func (standardRules) BlastOnCapture() bool        { return false }
func (standardRules) AllowsDrops() bool           { return false }
func (standardRules) HasCastling() bool           { return true }
func (standardRules) MaxPromotion() PieceType     { return Queen }
func (standardRules) ExchangeValue(pt PieceType) int { return exchangeValue[pt] }

func (standardRules) Checkers(p *Position, c Color) Bitboard {
	return p.AttackersTo(p.KingSquare(c), p.AllOccupied) & p.Occupied[c.Other()]
}

func (standardRules) EndsGame(p *Position) (Outcome, bool) {
	return NoOutcome, false
}

type antichessRules struct{ standardRules }

func (antichessRules) Variant() Variant        { return Antichess }
func (antichessRules) RoyalKing() bool         { return false }
func (antichessRules) MustCapture() bool       { return true }
func (antichessRules) HasCastling() bool       { return false }
func (antichessRules) MaxPromotion() PieceType { return King }

func (antichessRules) ExchangeValue(pt PieceType) int { return antiExchangeValue[pt] }

func (antichessRules) Checkers(p *Position, c Color) Bitboard {
	return Empty
}

func (antichessRules) EndsGame(p *Position) (Outcome, bool) {
	// Giving away every piece wins.
	if p.Occupied[p.SideToMove] == Empty {
		return Win, true
	}
	if p.Occupied[p.SideToMove.Other()] == Empty {
		return Loss, true
	}
	return NoOutcome, false
}

type atomicRules struct{ standardRules }

func (atomicRules) Variant() Variant     { return Atomic }
func (atomicRules) BlastOnCapture() bool { return true }

func (atomicRules) Checkers(p *Position, c Color) Bitboard {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return Empty
	}
	// Adjacent kings shield each other: capturing the enemy king would
	// explode one's own, so no check can be delivered.
	esq := p.KingSquare(c.Other())
	if esq != NoSquare && kingAttacks[ksq]&SquareBB(esq) != 0 {
		return Empty
	}
	return p.AttackersTo(ksq, p.AllOccupied) & p.Occupied[c.Other()]
}

func (atomicRules) EndsGame(p *Position) (Outcome, bool) {
	if p.KingSquare(p.SideToMove) == NoSquare {
		return Loss, true
	}
	if p.KingSquare(p.SideToMove.Other()) == NoSquare {
		return Win, true
	}
	return NoOutcome, false
}

type crazyhouseRules struct{ standardRules }

func (crazyhouseRules) Variant() Variant  { return Crazyhouse }
func (crazyhouseRules) AllowsDrops() bool { return true }

type threeCheckRules struct{ standardRules }

func (threeCheckRules) Variant() Variant   { return ThreeCheck }
func (threeCheckRules) CountsChecks() bool { return true }

func (threeCheckRules) EndsGame(p *Position) (Outcome, bool) {
	if p.ChecksGiven(p.SideToMove.Other()) >= 3 {
		return Loss, true
	}
	if p.ChecksGiven(p.SideToMove) >= 3 {
		return Win, true
	}
	return NoOutcome, false
}

type kothRules struct{ standardRules }

func (kothRules) Variant() Variant { return KingOfTheHill }

func (kothRules) EndsGame(p *Position) (Outcome, bool) {
	if SquareBB(p.KingSquare(p.SideToMove.Other()))&Center != 0 {
		return Loss, true
	}
	if SquareBB(p.KingSquare(p.SideToMove))&Center != 0 {
		return Win, true
	}
	return NoOutcome, false
}
