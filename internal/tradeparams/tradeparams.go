package tradeparams

import (
	"fmt"

	"github.com/computervirtualservices/neurotrade/models"
)

// params is one row of the sizing table: stop-loss and take-profit ATR
// multipliers plus the explanation attached to the recommendation.
type params struct {
	sl  float64
	tp  float64
	exp string
}

// TradeParams is the sized trade for one signal at one price.
type TradeParams struct {
	Entry       float64
	StopLoss    float64
	TakeProfit  float64
	Explanation string
}

// config maps timeframe minutes to the per-signal ATR multipliers.
// Нулевой множитель значит «ведём уровень от поддержки/сопротивления».
var config = map[int]map[string]params{

	// 1-minute scalps
	1: {
		models.SignalStrongUptrend:  {0.5, 1.0, "Micro trend; 1m ATR sizing."},
		models.SignalUptrendStart:   {0.4, 0.8, "1m early trend."},
		models.SignalUptrend:        {0.3, 0.6, "1m established trend."},
		models.SignalUptrendEnd:     {0.3, 0.0, "1m trend end; exit."},
		models.SignalStrongReversal: {0.5, 1.0, "Micro reversal."},
		models.SignalReversal:       {0.4, 0.8, "1m reversal start."},
		models.SignalBreakout:       {0.5, 1.0, "1m breakout."},
		models.SignalBreakdown:      {0.5, 1.0, "1m breakdown."},
		models.SignalMomentumUp:     {0.3, 0.6, "1m momentum up."},
		models.SignalMomentumDown:   {0.6, 0.3, "1m momentum down."},
		models.SignalProfitUp1:      {0.2, 0.4, "Target +1% profit."},
		models.SignalProfitUp3:      {0.4, 0.8, "Target +3% profit."},
		models.SignalProfitDown1:    {0.4, 0.2, "Target −1% profit."},
		models.SignalProfitDown3:    {0.8, 0.4, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// 5-minute scalps
	5: {
		models.SignalStrongUptrend:  {0.6, 1.2, "Strong 5m uptrend."},
		models.SignalUptrendStart:   {0.5, 1.0, "Early 5m trend."},
		models.SignalUptrend:        {0.4, 0.8, "5m established trend."},
		models.SignalUptrendEnd:     {0.4, 0.0, "5m trend end."},
		models.SignalStrongReversal: {0.6, 1.2, "Strong 5m reversal."},
		models.SignalReversal:       {0.5, 1.0, "5m reversal start."},
		models.SignalBreakout:       {0.6, 1.2, "5m breakout."},
		models.SignalBreakdown:      {0.6, 1.2, "5m breakdown."},
		models.SignalMomentumUp:     {0.4, 0.8, "5m momentum up."},
		models.SignalMomentumDown:   {0.8, 0.4, "5m momentum down."},
		models.SignalProfitUp1:      {0.3, 0.6, "Target +1% profit."},
		models.SignalProfitUp3:      {0.5, 1.0, "Target +3% profit."},
		models.SignalProfitDown1:    {0.6, 0.3, "Target −1% profit."},
		models.SignalProfitDown3:    {1.0, 0.5, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// 15-minute swings
	15: {
		models.SignalStrongUptrend:  {0.7, 1.4, "Strong 15m uptrend."},
		models.SignalUptrendStart:   {0.6, 1.2, "Early 15m trend."},
		models.SignalUptrend:        {0.5, 1.0, "15m established trend."},
		models.SignalUptrendEnd:     {0.5, 0.0, "15m trend end."},
		models.SignalStrongReversal: {0.7, 1.4, "Strong 15m reversal."},
		models.SignalReversal:       {0.6, 1.2, "15m reversal start."},
		models.SignalBreakout:       {0.7, 1.4, "15m breakout."},
		models.SignalBreakdown:      {0.7, 1.4, "15m breakdown."},
		models.SignalMomentumUp:     {0.5, 1.0, "15m momentum up."},
		models.SignalMomentumDown:   {1.0, 0.5, "15m momentum down."},
		models.SignalProfitUp1:      {0.4, 0.8, "Target +1% profit."},
		models.SignalProfitUp3:      {0.7, 1.4, "Target +3% profit."},
		models.SignalProfitDown1:    {0.8, 0.4, "Target −1% profit."},
		models.SignalProfitDown3:    {1.2, 0.6, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// 30-minute framework
	30: {
		models.SignalStrongUptrend:  {1.0, 1.5, "Strong 30m uptrend."},
		models.SignalUptrendStart:   {0.5, 1.0, "Early 30m trend."},
		models.SignalUptrend:        {0.0, 0.0, "30m established trend."},
		models.SignalUptrendEnd:     {0.5, 0.0, "30m trend end; tighten stops."},
		models.SignalStrongReversal: {1.0, 1.5, "Strong 30m reversal."},
		models.SignalReversal:       {0.5, 0.0, "30m reversal forming."},
		models.SignalBreakout:       {0.5, 1.5, "30m breakout."},
		models.SignalBreakdown:      {0.5, 1.5, "30m breakdown."},
		models.SignalMomentumUp:     {0.5, 1.0, "30m momentum up."},
		models.SignalMomentumDown:   {1.0, 0.5, "30m momentum down."},
		models.SignalProfitUp1:      {0.7, 1.0, "Target +1% profit."},
		models.SignalProfitUp3:      {1.0, 1.5, "Target +3% profit."},
		models.SignalProfitDown1:    {1.0, 0.7, "Target −1% profit."},
		models.SignalProfitDown3:    {1.5, 1.0, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// 1-hour bars
	60: {
		models.SignalStrongUptrend:  {1.0, 2.0, "Strong 1h uptrend."},
		models.SignalUptrendStart:   {0.75, 1.5, "Early 1h trend."},
		models.SignalUptrend:        {0.0, 0.0, "1h established trend."},
		models.SignalUptrendEnd:     {0.0, 0.0, "1h trend end; tighten."},
		models.SignalStrongReversal: {1.0, 2.0, "Strong 1h reversal."},
		models.SignalReversal:       {0.75, 0.0, "1h reversal forming."},
		models.SignalBreakout:       {1.0, 2.0, "1h breakout."},
		models.SignalBreakdown:      {1.0, 2.0, "1h breakdown."},
		models.SignalMomentumUp:     {1.0, 1.5, "1h momentum up."},
		models.SignalMomentumDown:   {1.5, 1.0, "1h momentum down."},
		models.SignalProfitUp1:      {1.2, 1.5, "Target +1% profit."},
		models.SignalProfitUp3:      {1.5, 2.0, "Target +3% profit."},
		models.SignalProfitDown1:    {1.5, 1.2, "Target −1% profit."},
		models.SignalProfitDown3:    {2.0, 1.5, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// 4-hour bars
	240: {
		models.SignalStrongUptrend:  {1.0, 2.0, "Strong 4h uptrend."},
		models.SignalUptrendStart:   {0.75, 1.5, "Early 4h trend."},
		models.SignalUptrend:        {0.0, 0.0, "4h established trend."},
		models.SignalUptrendEnd:     {0.0, 0.0, "4h trend end; tighten."},
		models.SignalStrongReversal: {1.0, 2.0, "Strong 4h reversal."},
		models.SignalReversal:       {0.75, 0.0, "4h reversal forming."},
		models.SignalBreakout:       {1.0, 2.0, "4h breakout."},
		models.SignalBreakdown:      {1.0, 2.0, "4h breakdown."},
		models.SignalMomentumUp:     {1.0, 1.5, "4h momentum up."},
		models.SignalMomentumDown:   {1.5, 1.0, "4h momentum down."},
		models.SignalProfitUp1:      {1.2, 1.8, "Target +1% profit."},
		models.SignalProfitUp3:      {1.5, 2.5, "Target +3% profit."},
		models.SignalProfitDown1:    {1.5, 1.2, "Target −1% profit."},
		models.SignalProfitDown3:    {2.5, 1.5, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// Daily bars
	1440: {
		models.SignalStrongUptrend:  {1.5, 3.0, "Strong daily uptrend."},
		models.SignalUptrendStart:   {1.0, 2.0, "Early daily trend."},
		models.SignalUptrend:        {0.0, 0.0, "Daily established trend."},
		models.SignalUptrendEnd:     {0.0, 0.0, "Daily trend end; tighten."},
		models.SignalStrongReversal: {1.5, 3.0, "Strong daily reversal."},
		models.SignalReversal:       {1.0, 0.0, "Daily reversal forming."},
		models.SignalBreakout:       {1.5, 3.0, "Daily breakout."},
		models.SignalBreakdown:      {1.5, 3.0, "Daily breakdown."},
		models.SignalMomentumUp:     {1.0, 2.0, "Daily momentum up."},
		models.SignalMomentumDown:   {2.0, 1.0, "Daily momentum down."},
		models.SignalProfitUp1:      {1.2, 2.0, "Target +1% profit."},
		models.SignalProfitUp3:      {1.5, 3.0, "Target +3% profit."},
		models.SignalProfitDown1:    {2.0, 1.2, "Target −1% profit."},
		models.SignalProfitDown3:    {3.0, 1.5, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// Weekly bars
	10080: {
		models.SignalStrongUptrend:  {2.0, 4.0, "Strong weekly uptrend."},
		models.SignalUptrendStart:   {1.5, 3.0, "Early weekly trend."},
		models.SignalUptrend:        {0.0, 0.0, "Weekly established trend."},
		models.SignalUptrendEnd:     {0.0, 0.0, "Weekly trend end; tighten."},
		models.SignalStrongReversal: {2.0, 4.0, "Strong weekly reversal."},
		models.SignalReversal:       {1.5, 0.0, "Weekly reversal forming."},
		models.SignalBreakout:       {2.0, 4.0, "Weekly breakout."},
		models.SignalBreakdown:      {2.0, 4.0, "Weekly breakdown."},
		models.SignalMomentumUp:     {1.5, 3.0, "Weekly momentum up."},
		models.SignalMomentumDown:   {3.0, 1.5, "Weekly momentum down."},
		models.SignalProfitUp1:      {2.5, 3.0, "Target +1% profit."},
		models.SignalProfitUp3:      {3.0, 4.0, "Target +3% profit."},
		models.SignalProfitDown1:    {3.0, 2.5, "Target −1% profit."},
		models.SignalProfitDown3:    {4.0, 3.0, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},

	// 3-week bars
	21600: {
		models.SignalStrongUptrend:  {3.0, 6.0, "Strong 3-week uptrend."},
		models.SignalUptrendStart:   {2.5, 5.0, "Early 3-week trend."},
		models.SignalUptrend:        {0.0, 0.0, "3-week established trend."},
		models.SignalUptrendEnd:     {0.0, 0.0, "3-week trend end; tighten."},
		models.SignalStrongReversal: {3.0, 6.0, "Strong 3-week reversal."},
		models.SignalReversal:       {2.5, 0.0, "3-week reversal forming."},
		models.SignalBreakout:       {3.0, 6.0, "3-week breakout."},
		models.SignalBreakdown:      {3.0, 6.0, "3-week breakdown."},
		models.SignalMomentumUp:     {2.0, 4.0, "3-week momentum up."},
		models.SignalMomentumDown:   {4.0, 2.0, "3-week momentum down."},
		models.SignalProfitUp1:      {2.5, 5.0, "Target +1% profit."},
		models.SignalProfitUp3:      {3.0, 6.0, "Target +3% profit."},
		models.SignalProfitDown1:    {5.0, 2.5, "Target −1% profit."},
		models.SignalProfitDown3:    {6.0, 3.0, "Target −3% profit."},
		models.SignalConsolidation:  {0.0, 0.0, "Range-bound; hold."},
		models.SignalChoppy:         {0.0, 0.0, "Choppy; avoid."},
		models.SignalNeutral:        {0.0, 0.0, "Neutral; no trade."},
	},
}

// Generator sizes trades with the ATR multipliers of one timeframe.
type Generator struct {
	table map[string]params
}

// NewGenerator returns the generator for a timeframe in minutes.
func NewGenerator(timeframe int) (*Generator, error) {
	table, ok := config[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: %dm", models.ErrUnsupportedTimeframe, timeframe)
	}
	return &Generator{table: table}, nil
}

// Generate sizes entry, stop-loss and take-profit for a signal. Нулевые
// множители берут ближайшую поддержку/сопротивление, при нулевом ATR
// уровни принудительно ±0.3% от цены.
func (g *Generator) Generate(signal string, price, atr float64, levels models.SRLevels) TradeParams {
	out := TradeParams{Entry: price}

	if p, ok := g.table[signal]; ok {
		out.Explanation = p.exp

		if p.sl != 0.0 {
			out.StopLoss = price - p.sl*atr
		} else {
			out.StopLoss = levels.NearestSupport(price * 0.995)
		}
		if p.tp != 0.0 {
			out.TakeProfit = price + p.tp*atr
		} else {
			out.TakeProfit = levels.NearestResistance(price * 1.005)
		}
	}

	if atr <= 0.0 {
		out.StopLoss = price * 0.997
		out.TakeProfit = price * 1.003
		out.Explanation += " (fallback sizing)"
	}
	return out
}
