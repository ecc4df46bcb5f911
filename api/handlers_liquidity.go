package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAddLiquidity(c *gin.Context) {
	var req AddLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	who, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	var f amountFields
	amount0 := f.required("amount0", req.Amount0)
	amount1 := f.required("amount1", req.Amount1)
	if f.err != nil {
		badRequest(c, "Invalid amount", f.err)
		return
	}

	actual0, actual1, shares, err := s.app.DexKeeper.AddLiquidity(c.Request.Context(), who, req.Asset0, req.Asset1, amount0, amount1)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AddLiquidityResponse{Amount0: actual0, Amount1: actual1, Shares: shares})
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var req RemoveLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	who, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	var f amountFields
	shares := f.required("shares", req.Shares)
	min0 := f.optional("min0", req.Min0)
	min1 := f.optional("min1", req.Min1)
	if f.err != nil {
		badRequest(c, "Invalid amount", f.err)
		return
	}

	out0, out1, err := s.app.DexKeeper.RemoveLiquidity(c.Request.Context(), who, req.Asset0, req.Asset1, shares, min0, min1)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, RemoveLiquidityResponse{Amount0: out0, Amount1: out1})
}
