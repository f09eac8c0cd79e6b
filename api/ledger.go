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

	"github.com/gin-gonic/gin"

	model2 "github.com/ereal-labs/ereal/api/model"
	"github.com/ereal-labs/ereal/model"
)

func (a Api) Issue(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.IssueRequest
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

	if err := a.engine.Issue(caller, req.Recipient, amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipient": req.Recipient, "amount": req.Amount})
}

func (a Api) Redeem(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.RedeemRequest
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

	if err := a.engine.Redeem(caller, amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": caller, "amount": req.Amount})
}

func (a Api) Transfer(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.TransferRequest
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

	if err := a.engine.Transfer(caller, req.To, amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": caller, "to": req.To, "amount": req.Amount})
}

func (a Api) OperatorTransfer(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if req.From == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "from is required"})
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.OperatorTransfer(caller, req.From, req.To, amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": req.From, "to": req.To, "amount": req.Amount})
}

func (a Api) Pause(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	if err := a.engine.Pause(caller); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paused": true})
}

func (a Api) Unpause(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	if err := a.engine.Unpause(caller); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paused": false})
}

func (a Api) SetBlacklisted(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.BlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.SetBlacklisted(caller, req.Target, *req.Blacklisted); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"target": req.Target, "blacklisted": *req.Blacklisted})
}

func (a Api) GrantRole(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.Ledger().GrantRole(caller, req.Identity, model.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity": req.Identity, "role": req.Role})
}

func (a Api) RevokeRole(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.Ledger().RevokeRole(caller, req.Identity, model.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity": req.Identity, "role": req.Role})
}

func (a Api) GetBalance(c *gin.Context) {
	identity, passed := c.Params.Get("identity")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity is required. pass identity in the route /:identity"})
		return
	}
	balance := a.engine.Ledger().BalanceOf(identity)
	c.JSON(http.StatusOK, gin.H{
		"identity": identity,
		"balance":  model.FormatAmount(balance),
	})
}

func (a Api) GetSupply(c *gin.Context) {
	ledger := a.engine.Ledger()
	c.JSON(http.StatusOK, gin.H{
		"total_issued":   model.FormatAmount(ledger.TotalIssued()),
		"total_redeemed": model.FormatAmount(ledger.TotalRedeemed()),
		"total_supply":   model.FormatAmount(ledger.TotalSupply()),
	})
}
