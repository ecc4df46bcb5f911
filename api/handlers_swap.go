package api

import (
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"
)

// handleQuoteExactSupply prices selling amount of the first path asset.
func (s *Server) handleQuoteExactSupply(c *gin.Context) {
	path, amount, ok := s.quoteParams(c)
	if !ok {
		return
	}
	amounts, err := s.app.DexKeeper.GetTargetAmounts(c.Request.Context(), path, amount)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuoteResponse{Path: path, Amounts: amounts})
}

// handleQuoteExactTarget prices buying amount of the last path asset.
func (s *Server) handleQuoteExactTarget(c *gin.Context) {
	path, amount, ok := s.quoteParams(c)
	if !ok {
		return
	}
	amounts, err := s.app.DexKeeper.GetSupplyAmounts(c.Request.Context(), path, amount)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuoteResponse{Path: path, Amounts: amounts})
}

func (s *Server) quoteParams(c *gin.Context) ([]string, math.Int, bool) {
	path, err := parsePath(c.Query("path"))
	if err != nil {
		badRequest(c, "Invalid path", err)
		return nil, math.Int{}, false
	}
	amount, err := parseAmount("amount", c.Query("amount"), false)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return nil, math.Int{}, false
	}
	return path, amount, true
}

// handleSwapExactSupply sells an exact amount along the path
func (s *Server) handleSwapExactSupply(c *gin.Context) {
	var req SwapExactSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	trader, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	if err := checkPath(req.Path); err != nil {
		badRequest(c, "Invalid path", err)
		return
	}
	var f amountFields
	supply := f.required("supply_amount", req.SupplyAmount)
	minTarget := f.required("min_target_amount", req.MinTargetAmount)
	if f.err != nil {
		badRequest(c, "Invalid amount", f.err)
		return
	}

	target, err := s.app.DexKeeper.SwapWithExactSupply(c.Request.Context(), trader, req.Path, supply, minTarget)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapResponse{Path: req.Path, SupplyAmount: supply, TargetAmount: target})
}

// handleSwapExactTarget buys an exact amount along the path
func (s *Server) handleSwapExactTarget(c *gin.Context) {
	var req SwapExactTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	trader, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	if err := checkPath(req.Path); err != nil {
		badRequest(c, "Invalid path", err)
		return
	}
	var f amountFields
	target := f.required("target_amount", req.TargetAmount)
	maxSupply := f.required("max_supply_amount", req.MaxSupplyAmount)
	if f.err != nil {
		badRequest(c, "Invalid amount", f.err)
		return
	}

	supply, err := s.app.DexKeeper.SwapWithExactTarget(c.Request.Context(), trader, req.Path, target, maxSupply)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapResponse{Path: req.Path, SupplyAmount: supply, TargetAmount: target})
}
