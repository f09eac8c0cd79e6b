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

func (a Api) RegisterBoleto(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.RegisterBoletoRequest
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

	resp, err := a.engine.RegisterBoleto(caller, req.ID, amount, fee, req.Name, req.TaxID, req.Beneficiary)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, boletoResponse(resp))
}

func (a Api) ProcessBoleto(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}
	var req model2.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	burnAmount, err := model2.ParseOptionalAmount(req.BurnAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.ProcessBoletoPaymentWithBurn(caller, id, burnAmount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": model.StatusPaid.String()})
}

func (a Api) PayBoleto(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}
	var req model2.PayRequest
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
	burnAmount, err := model2.ParseOptionalAmount(req.BurnAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.engine.PayBoletoWithBurn(caller, id, req.Payer, amount, fee, burnAmount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": model.StatusPaid.String()})
}

func (a Api) ProcessUnregisteredBoleto(c *gin.Context) {
	caller, ok := operator(c)
	if !ok {
		return
	}
	var req model2.RegisterBoletoRequest
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

	if err := a.engine.ProcessUnregisteredBoletoPayment(caller, req.ID, amount, fee, req.Name, req.TaxID, req.Beneficiary); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": req.ID, "status": model.StatusPaid.String()})
}

func (a Api) GetBoleto(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	resp, err := a.engine.GetBoletoDetails(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boletoResponse(resp))
}

func boletoResponse(b *model.Boleto) gin.H {
	return gin.H{
		"id":          b.ID,
		"amount":      model.FormatAmount(b.Amount),
		"fee":         model.FormatAmount(b.Fee),
		"name":        b.Name,
		"tax_id":      b.TaxID,
		"beneficiary": b.Beneficiary,
		"status":      b.Status.String(),
		"created_at":  b.CreatedAt,
	}
}
