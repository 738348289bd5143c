package models

// Trading signal labels produced by label derivation (training) or by the
// regression-to-label mapping (inference). Downstream code treats them as
// opaque tags; action/strength mapping lives in the recommendation builder.
const (
	SignalStrongUptrend  = "STRONG_UPTREND"
	SignalUptrendStart   = "UPTREND_START"
	SignalUptrend        = "UPTREND"
	SignalUptrendEnd     = "UPTREND_END"
	SignalStrongReversal = "STRONG_REVERSAL"
	SignalReversal       = "REVERSAL"
	SignalConsolidation  = "CONSOLIDATION"
	SignalChoppy         = "CHOPPY"
	SignalNeutral        = "NEUTRAL"
	SignalMomentumUp     = "MOMENTUM_UP"
	SignalMomentumDown   = "MOMENTUM_DOWN"
	SignalBreakout       = "BREAKOUT"
	SignalBreakdown      = "BREAKDOWN"
	SignalProfitUp1      = "PROFIT_UP_1"
	SignalProfitUp3      = "PROFIT_UP_3"
	SignalProfitDown1    = "PROFIT_DOWN_1"
	SignalProfitDown3    = "PROFIT_DOWN_3"
)

// Recommendation actions
const (
	ActionBuy   = "BUY"
	ActionSell  = "SELL"
	ActionHold  = "HOLD"
	ActionAvoid = "AVOID"
)

// Recommendation strengths
const (
	StrengthStrong  = "STRONG"
	StrengthMedium  = "MEDIUM"
	StrengthLow     = "LOW"
	StrengthNeutral = "NEUTRAL"
)

// Qualitative confidence levels
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// AllSignals lists every signal label in a stable order.
var AllSignals = []string{
	SignalStrongUptrend,
	SignalUptrendStart,
	SignalUptrend,
	SignalUptrendEnd,
	SignalStrongReversal,
	SignalReversal,
	SignalConsolidation,
	SignalChoppy,
	SignalNeutral,
	SignalMomentumUp,
	SignalMomentumDown,
	SignalBreakout,
	SignalBreakdown,
	SignalProfitUp1,
	SignalProfitUp3,
	SignalProfitDown1,
	SignalProfitDown3,
}
