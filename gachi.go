package gachi

import (
	"github.com/jacobhjkim/gachi-amm/amm"
	"github.com/jacobhjkim/gachi-amm/amm/helpers"
)

// NewEngine creates a pricing/lifecycle engine over a validated config.
//
// Example:
//
// cfg, _ := NewConfig(params)
//
// engine := NewEngine(cfg, amm.WithRecorder(audit.NewLogger(logger)))
//
// engine.Swap(curve, swapParams, shared.TradeDirectionQuoteToBase, now)
var NewEngine = amm.NewEngine

// NewConfig validates raw parameters into an immutable Config.
var NewConfig = amm.NewConfig

// BuildConstantProductConfig builds a Config from whole-token
// constant-product parameters.
var BuildConstantProductConfig = helpers.BuildConstantProductConfig

// BuildSegmentedConfig derives a one-segment curve Config from market
// caps.
var BuildSegmentedConfig = helpers.BuildSegmentedConfig

// LoadConfigJSON builds a Config from a JSON document.
var LoadConfigJSON = helpers.LoadConfigJSON
