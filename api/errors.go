package api

import (
	"fmt"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	dextypes "github.com/bholdus-chain/dex/x/dex/types"
	ledgertypes "github.com/bholdus-chain/dex/x/ledger/types"
)

// statusForError maps engine and ledger errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errorsmod.IsOf(err,
		dextypes.ErrInvalidCurrencyID,
		dextypes.ErrInvalidTradingPathLength,
		dextypes.ErrInvalidAmount,
		dextypes.ErrInvalidParams,
		ledgertypes.ErrInvalidAmount,
		ledgertypes.ErrInvalidAsset,
	):
		return http.StatusBadRequest
	case errorsmod.IsOf(err, dextypes.ErrBadOrigin):
		return http.StatusForbidden
	case errorsmod.IsOf(err,
		dextypes.ErrTradingPairMustBeEnabled,
		dextypes.ErrTradingPairMustBeProvisioning,
		dextypes.ErrTradingPairMustBeDisabled,
		dextypes.ErrTradingPairAlreadyProvisioned,
		dextypes.ErrTradingPairAlreadyEnabled,
		dextypes.ErrUnqualifiedProvision,
	):
		return http.StatusConflict
	case errorsmod.IsOf(err,
		dextypes.ErrInvalidContributionIncrement,
		dextypes.ErrInvalidLiquidityIncrement,
		dextypes.ErrInvalidRemoveShareAmount,
		dextypes.ErrZeroTotalShare,
		dextypes.ErrUnacceptableWithdrawnAmount,
		dextypes.ErrInsufficientLiquidity,
		dextypes.ErrZeroTargetAmount,
		dextypes.ErrZeroSupplyAmount,
		dextypes.ErrInsufficientTargetAmount,
		dextypes.ErrInsufficientSupplyAmount,
		dextypes.ErrOverflow,
		dextypes.ErrUnderflow,
		ledgertypes.ErrBalanceLow,
		ledgertypes.ErrOverflow,
	):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as an ErrorResponse. Registered errors carry
// their codespace and code.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	codespace, code, _ := errorsmod.ABCIInfo(err, false)

	resp := ErrorResponse{
		Error: err.Error(),
		Code:  fmt.Sprintf("%s:%d", codespace, code),
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		resp.Error = "Internal server error"
	}
	c.AbortWithStatusJSON(status, resp)
}

// badRequest rejects malformed input that never reached the engine.
func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: "INVALID_REQUEST"}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
