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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ereal-labs/ereal"
	"github.com/ereal-labs/ereal/api/middleware"
	"github.com/ereal-labs/ereal/config"
)

const (
	adminOp    = "0xop-admin"
	minterOp   = "0xop-minter"
	burnerOp   = "0xop-burner"
	customerID = "0xacc-customer"
	merchantID = "0xacc-merchant"
	treasuryID = "0xacc-treasury"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cnf := &config.Configuration{
		ProjectName: "ereal",
		Ledger: config.LedgerConfig{
			Treasury: treasuryID,
			Roles: config.RolesConfig{
				Admin:      adminOp,
				Pauser:     adminOp,
				Minter:     minterOp,
				Burner:     burnerOp,
				Compliance: adminOp,
				Transfer:   adminOp,
			},
		},
	}
	config.MockConfig(cnf)
	engine, err := ereal.NewEreal(cnf)
	require.NoError(t, err)
	return NewAPI(engine).Router()
}

func doRequest(t *testing.T, router *gin.Engine, method, path, operator string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if operator != "" {
		req.Header.Set(middleware.OperatorHeader, operator)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIssueAndBalanceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/issue", minterOp, gin.H{
		"recipient": customerID,
		"amount":    "125.5",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/balances/"+customerID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "125.5", resp["balance"])
}

func TestIssueUnauthorizedOperator(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/issue", customerID, gin.H{
		"recipient": customerID,
		"amount":    "1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIssueMissingOperatorHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/issue", "", gin.H{
		"recipient": customerID,
		"amount":    "1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueInvalidAmount(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/issue", minterOp, gin.H{
		"recipient": customerID,
		"amount":    "not-a-number",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepositEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/deposits", minterOp, gin.H{
		"customer":   customerID,
		"amount":     "100.5",
		"fee":        "0.5",
		"payment_id": "dep-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/balances/"+treasuryID, "", nil)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "0.5", resp["balance"])
}

func TestBoletoEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/boletos", adminOp, gin.H{
		"id":          "bol-1",
		"amount":      "100",
		"fee":         "2",
		"name":        "Maria Silva",
		"tax_id":      "123.456.789-09",
		"beneficiary": merchantID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/boletos/bol-1/process", minterOp, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/boletos/bol-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "paid", resp["status"])

	// settling twice conflicts
	w = doRequest(t, router, http.MethodPost, "/boletos/bol-1/process", minterOp, gin.H{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWithdrawalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/issue", minterOp, gin.H{
		"recipient": customerID,
		"amount":    "10",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/withdrawal-requests", adminOp, gin.H{
		"id":     1,
		"user":   customerID,
		"amount": "5",
		"fee":    "0.1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/withdrawal-requests/1/approve", adminOp, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/balances/"+customerID, "", nil)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "4.9", resp["balance"])
}

func TestPaymentLinkEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/rates/interest", adminOp, gin.H{
		"installments": 21,
		"bps":          2474,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doRequest(t, router, http.MethodPost, "/rates/spread", adminOp, gin.H{
		"installments": 21,
		"bps":          200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/payment-links", adminOp, gin.H{
		"uuid":         "link-1",
		"amount":       "100",
		"installments": 21,
		"customer":     customerID,
		"beneficiary":  merchantID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	success := true
	w = doRequest(t, router, http.MethodPost, "/payment-links/link-1/process", adminOp, gin.H{
		"success": success,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/balances/"+customerID, "", nil)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "73.26", resp["balance"])
}

func TestPauseEndpointLocksProcessing(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/pause", adminOp, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/issue", minterOp, gin.H{
		"recipient": customerID,
		"amount":    "1",
	})
	assert.Equal(t, http.StatusLocked, w.Code)

	w = doRequest(t, router, http.MethodPost, "/unpause", adminOp, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
