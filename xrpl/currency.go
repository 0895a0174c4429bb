package xrpl

import (
	"encoding/hex"
	"strings"

	rippledata "github.com/rubblelabs/ripple/data"
	"github.com/pkg/errors"

	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// ValidateAddress checks that address decodes as a well-formed XRPL classic address, the same
// check the teacher's codebase performs at every XRPL-address-accepting call site via
// rippledata.NewAccountFromAddress (e.g. relayer/processes/xrpl_tx_submitter.go).
func ValidateAddress(address string) error {
	if _, err := rippledata.NewAccountFromAddress(address); err != nil {
		return errors.Wrap(types.ErrInvalidXRPLAddress, err.Error())
	}
	return nil
}

// ConvertCurrencyToString decodes XRPL currency to string which matches the contract expectation.
func ConvertCurrencyToString(currency rippledata.Currency) string {
	currencyString := currency.String()
	if len(currencyString) == 3 {
		return currencyString
	}
	hexString := hex.EncodeToString([]byte(currencyString))
	// append tailing zeros to match the contract expectation
	hexString += strings.Repeat("0", 40-len(hexString))
	return strings.ToUpper(hexString)
}
