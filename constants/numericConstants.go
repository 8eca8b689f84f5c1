package constants

import "github.com/shopspring/decimal"

const LAMPORTS_EXP = 9

var LAMPORTS_PRECISION = decimal.New(1, LAMPORTS_EXP)

// DEFAULT_AMOUNT_SOL is the amount moved by a deposit or withdraw with no explicit amount.
const DEFAULT_AMOUNT_SOL = "0.1"
