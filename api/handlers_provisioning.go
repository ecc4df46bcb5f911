package api

import (
	"context"
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
)

type provisioningFunc func(ctx context.Context, caller sdk.AccAddress, a, b string, minA, minB, targetA, targetB math.Int) error

// provisioningParamsHandler serves both listing and re-parameterising a pair.
func (s *Server) provisioningParamsHandler(apply provisioningFunc, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProvisioningParamsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request", err)
			return
		}
		caller, ok := s.senderAddress(c, req.Sender)
		if !ok {
			return
		}
		var f amountFields
		min0 := f.required("min0", req.Min0)
		min1 := f.required("min1", req.Min1)
		target0 := f.required("target0", req.Target0)
		target1 := f.required("target1", req.Target1)
		if f.err != nil {
			badRequest(c, "Invalid amount", f.err)
			return
		}

		if err := apply(c.Request.Context(), caller, req.Asset0, req.Asset1, min0, min1, target0, target1); err != nil {
			s.abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message})
	}
}

func (s *Server) handleContribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	who, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	var f amountFields
	amount0 := f.optional("amount0", req.Amount0)
	amount1 := f.optional("amount1", req.Amount1)
	if f.err != nil {
		badRequest(c, "Invalid amount", f.err)
		return
	}

	if err := s.app.DexKeeper.AddProvision(c.Request.Context(), who, req.Asset0, req.Asset1, amount0, amount1); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "provision added"})
}

func (s *Server) handleEnableProvisioning(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	caller, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	if err := s.app.DexKeeper.EnableProvisioningTradingPair(c.Request.Context(), caller, req.Asset0, req.Asset1); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "trading pair enabled"})
}

func (s *Server) handleClaim(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	who, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	beneficiary := who
	if req.Beneficiary != "" {
		var err error
		if beneficiary, err = parseAddress("beneficiary", req.Beneficiary); err != nil {
			badRequest(c, "Invalid beneficiary address", err)
			return
		}
	}

	shares, err := s.app.DexKeeper.ClaimDexShare(c.Request.Context(), who, beneficiary, req.Asset0, req.Asset1)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClaimResponse{Beneficiary: beneficiary.String(), Shares: shares})
}
