package domain

const (
	MinMeldSize     = 3
	MaxSetSize      = 4
	MaxSequenceSize = 13

	// HandSize is the number of cards dealt to each player.
	HandSize = 13

	// MaxRoundPoints caps a single round's penalty in Points and Deals games.
	MaxRoundPoints = 80
	// PoolInvalidDeclarationPenalty is the fixed penalty for a wrong show in Pool.
	PoolInvalidDeclarationPenalty = 80

	DefaultPoolLimit         = 101
	DefaultNumberOfDeals     = 2
	DefaultPointValue        = 1
	DefaultFirstDropPenalty  = 25
	DefaultMiddleDropPenalty = 50
)
