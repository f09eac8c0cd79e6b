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

func (a Api) SetInterestRate(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.SetInterestRate(caller, req.Installments, req.Bps); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installments": req.Installments, "interest_rate": req.Bps})
}

func (a Api) SetSpreadRate(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.SetSpreadRate(caller, req.Installments, req.Bps); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installments": req.Installments, "spread_rate": req.Bps})
}

func (a Api) GetRates(c *gin.Context) {
	raw, passed := c.Params.Get("installments")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "installments is required. pass it in the route /:installments"})
		return
	}
	installments, err := strconv.Atoi(raw)
	if err != nil || installments <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "installments must be a positive integer"})
		return
	}

	entry := a.engine.GetRates(installments)
	c.JSON(http.StatusOK, gin.H{
		"installments":  installments,
		"interest_rate": entry.InterestBps,
		"spread_rate":   entry.SpreadBps,
	})
}

func (a Api) CreatePaymentLink(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.CreatePaymentLinkRequest
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

	var resp *model.PaymentLink
	if req.Fee != "" {
		fee, err := model.ParseAmount(req.Fee)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
			return
		}
		resp, err = a.engine.CreatePaymentLinkWithFee(caller, req.UUID, amount, fee, req.Customer)
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		resp, err = a.engine.CreatePaymentLink(caller, req.UUID, amount, req.Installments, req.Customer, req.Beneficiary)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, paymentLinkResponse(resp))
}

func (a Api) ProcessPaymentLink(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	uuid, passed := c.Params.Get("uuid")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid is required. pass uuid in the route /:uuid"})
		return
	}
	var req model2.ProcessPaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.ProcessPaymentLink(caller, uuid, *req.Success); err != nil {
		respondError(c, err)
		return
	}
	status := model.StatusPaid
	if !*req.Success {
		status = model.StatusFailed
	}
	c.JSON(http.StatusOK, gin.H{"uuid": uuid, "status": status.String()})
}

func (a Api) GetPaymentLink(c *gin.Context) {
	uuid, passed := c.Params.Get("uuid")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid is required. pass uuid in the route /:uuid"})
		return
	}

	resp, err := a.engine.GetPaymentLink(uuid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentLinkResponse(resp))
}

func paymentLinkResponse(pl *model.PaymentLink) gin.H {
	resp := gin.H{
		"uuid":          pl.UUID,
		"amount":        model.FormatAmount(pl.Amount),
		"installments":  pl.Installments,
		"interest_rate": pl.InterestBps,
		"spread_rate":   pl.SpreadBps,
		"customer":      pl.Customer,
		"beneficiary":   pl.Beneficiary,
		"status":        pl.Status.String(),
		"created_at":    pl.CreatedAt,
	}
	if pl.FlatFee != nil {
		resp["fee"] = model.FormatAmount(pl.FlatFee)
	}
	return resp
}
