/*
Copyright 2024 Ereal Labs Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	model2 "github.com/ereal-labs/ereal/api/model"
	"github.com/ereal-labs/ereal/model"
)

func (a Api) ProcessDeposit(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	fee, err := model2.ParseOptionalAmount(req.Fee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.ProcessDeposit(caller, req.Customer, amount, fee, req.PaymentID, req.Memo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_id": req.PaymentID, "customer": req.Customer})
}

func (a Api) ProcessWithdraw(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	fee, err := model2.ParseOptionalAmount(req.Fee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.ProcessWithdraw(caller, req.Customer, amount, fee, req.PaymentID, req.Memo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_id": req.PaymentID, "customer": req.Customer})
}

func (a Api) RequestWithdrawal(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	fee, err := model2.ParseOptionalAmount(req.Fee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.engine.RequestWithdrawal(caller, req.ID, req.User, amount, fee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, withdrawalResponse(resp))
}

func (a Api) ApproveWithdrawal(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	id, ok := withdrawalID(c)
	if !ok {
		return
	}

	if err := a.engine.ApproveWithdrawal(caller, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": model.WithdrawalApproved.String()})
}

func (a Api) CancelWithdrawal(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	id, ok := withdrawalID(c)
	if !ok {
		return
	}

	if err := a.engine.CancelWithdrawal(caller, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": model.WithdrawalCancelled.String()})
}

func (a Api) GetWithdrawalRequest(c *gin.Context) {
	id, ok := withdrawalID(c)
	if !ok {
		return
	}

	resp, err := a.engine.GetWithdrawalRequest(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawalResponse(resp))
}

func withdrawalID(c *gin.Context) (uint64, bool) {
	raw, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func withdrawalResponse(r *model.WithdrawalRequest) gin.H {
	return gin.H{
		"id":         r.ID,
		"user":       r.User,
		"amount":     model.FormatAmount(r.Amount),
		"fee":        model.FormatAmount(r.Fee),
		"status":     r.Status.String(),
		"created_at": r.CreatedAt,
	}
}
