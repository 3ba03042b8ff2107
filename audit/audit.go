// Package audit records every swap, lifecycle transition, and claim as
// plain data for external observability. The engine hands results here
// and never blocks on the recording itself.
package audit

import (
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// Recorder receives an immutable copy of everything the engine decides.
type Recorder interface {
	RecordSwap(baseMint solana.PublicKey, direction shared.TradeDirection, result *shared.SwapResult)
	RecordTransition(baseMint solana.PublicKey, from, to shared.MigrationStatus)
	RecordFeeType(baseMint solana.PublicKey, from, to shared.FeeType)
	RecordClaim(kind string, recipient solana.PublicKey, amount uint64)
}

// Logger is the default Recorder, emitting structured zap entries.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) RecordSwap(baseMint solana.PublicKey, direction shared.TradeDirection, result *shared.SwapResult) {
	l.log.Info("swap",
		zap.String("base_mint", baseMint.String()),
		zap.String("direction", direction.String()),
		zap.Uint64("amount_in", result.ActualInputAmount),
		zap.Uint64("amount_out", result.OutputAmount),
		zap.Uint64("trading_fee", result.TradingFee),
		zap.Uint64("protocol_fee", result.ProtocolFee),
		zap.Uint64("creator_fee", result.CreatorFee),
		zap.Uint64("cashback_fee", result.CashbackFee),
	)
}

func (l *Logger) RecordTransition(baseMint solana.PublicKey, from, to shared.MigrationStatus) {
	l.log.Info("migration status",
		zap.String("base_mint", baseMint.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}

func (l *Logger) RecordFeeType(baseMint solana.PublicKey, from, to shared.FeeType) {
	l.log.Info("fee type",
		zap.String("base_mint", baseMint.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}

func (l *Logger) RecordClaim(kind string, recipient solana.PublicKey, amount uint64) {
	l.log.Info("claim",
		zap.String("kind", kind),
		zap.String("recipient", recipient.String()),
		zap.Uint64("amount", amount),
	)
}

// Nop discards everything; useful for embedding and tests.
type Nop struct{}

func (Nop) RecordSwap(solana.PublicKey, shared.TradeDirection, *shared.SwapResult)            {}
func (Nop) RecordTransition(solana.PublicKey, shared.MigrationStatus, shared.MigrationStatus) {}
func (Nop) RecordFeeType(solana.PublicKey, shared.FeeType, shared.FeeType)                    {}
func (Nop) RecordClaim(string, solana.PublicKey, uint64)                                      {}
