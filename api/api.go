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

	"github.com/ereal-labs/ereal"
	"github.com/ereal-labs/ereal/api/middleware"
	"github.com/ereal-labs/ereal/config"
	"github.com/ereal-labs/ereal/internal/apierror"
)

type Api struct {
	engine *ereal.Ereal
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router

	router.POST("/issue", a.Issue)
	router.POST("/redeem", a.Redeem)
	router.POST("/transfers", a.Transfer)
	router.POST("/operator-transfers", a.OperatorTransfer)
	router.POST("/pause", a.Pause)
	router.POST("/unpause", a.Unpause)
	router.POST("/blacklist", a.SetBlacklisted)
	router.POST("/roles/grant", a.GrantRole)
	router.POST("/roles/revoke", a.RevokeRole)
	router.GET("/balances/:identity", a.GetBalance)
	router.GET("/supply", a.GetSupply)

	router.POST("/deposits", a.ProcessDeposit)
	router.POST("/withdraws", a.ProcessWithdraw)

	router.POST("/withdrawal-requests", a.RequestWithdrawal)
	router.POST("/withdrawal-requests/:id/approve", a.ApproveWithdrawal)
	router.POST("/withdrawal-requests/:id/cancel", a.CancelWithdrawal)
	router.GET("/withdrawal-requests/:id", a.GetWithdrawalRequest)

	router.POST("/boletos", a.RegisterBoleto)
	router.POST("/boletos/unregistered", a.ProcessUnregisteredBoleto)
	router.POST("/boletos/:id/process", a.ProcessBoleto)
	router.POST("/boletos/:id/pay", a.PayBoleto)
	router.GET("/boletos/:id", a.GetBoleto)

	router.POST("/brcodes", a.RegisterPix)
	router.POST("/brcodes/unregistered", a.ProcessUnregisteredPix)
	router.POST("/brcodes/:id/process", a.ProcessPix)
	router.POST("/brcodes/:id/pay", a.PayPix)
	router.GET("/brcodes/:id", a.GetPix)

	router.POST("/rates/interest", a.SetInterestRate)
	router.POST("/rates/spread", a.SetSpreadRate)
	router.GET("/rates/:installments", a.GetRates)

	router.POST("/payment-links", a.CreatePaymentLink)
	router.POST("/payment-links/:uuid/process", a.ProcessPaymentLink)
	router.GET("/payment-links/:uuid", a.GetPaymentLink)

	return a.router
}

func NewAPI(e *ereal.Ereal) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	r.Use(middleware.RateLimitMiddleware(conf))
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{engine: e, router: r}
}

// operator reads the calling operator's ledger identity from the request
// headers. An empty identity fails every role check downstream, but the
// handlers reject it early for a clearer message.
func operator(c *gin.Context) (string, bool) {
	id := c.GetHeader(middleware.OperatorHeader)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "operator identity required. pass the " + middleware.OperatorHeader + " header"})
		return "", false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
}
