package transactions

// FeeStrategy selects which transacting party bears the protocol-level
// flat fee. The numeric values are part of the wire format.
type FeeStrategy uint8

const (
	FeeStrategyRecipient          FeeStrategy = 1
	FeeStrategySender             FeeStrategy = 2
	FeeStrategyRecipientAndSender FeeStrategy = 3
	FeeStrategyIntermediary       FeeStrategy = 4
)

// FeeStrategyFromWire converts a wire byte into a FeeStrategy, rejecting
// unknown values.
func FeeStrategyFromWire(b uint8) (FeeStrategy, bool) {
	s := FeeStrategy(b)
	switch s {
	case FeeStrategyRecipient, FeeStrategySender, FeeStrategyRecipientAndSender, FeeStrategyIntermediary:
		return s, true
	default:
		return 0, false
	}
}

// ValidFor reports whether the strategy is legal for a transaction that
// does or does not carry an intermediary.
func (s FeeStrategy) ValidFor(hasIntermediary bool) bool {
	if s == FeeStrategyIntermediary {
		return hasIntermediary
	}
	switch s {
	case FeeStrategyRecipient, FeeStrategySender, FeeStrategyRecipientAndSender:
		return true
	default:
		return false
	}
}

func (s FeeStrategy) String() string {
	switch s {
	case FeeStrategyRecipient:
		return "recipient"
	case FeeStrategySender:
		return "sender"
	case FeeStrategyRecipientAndSender:
		return "recipient_and_sender"
	case FeeStrategyIntermediary:
		return "intermediary"
	default:
		return "unknown"
	}
}

// SplitFee divides a fee between two paying parties so the parts always
// sum to the original fee. The first-named party carries the odd
// remainder.
func SplitFee(fee uint64) (first, second uint64) {
	second = fee / 2
	return fee - second, second
}
