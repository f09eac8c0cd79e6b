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

package ereal

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ereal-labs/ereal/internal/apierror"
	"github.com/ereal-labs/ereal/model"
)

func TestBoletoRegisterAndProcess(t *testing.T) {
	engine := newTestEreal(t)

	_, err := engine.RegisterBoleto(testAdmin, "bol-1", model.MustAmount("100"), model.MustAmount("2"), "Maria Silva", "123.456.789-09", testMerchant)
	require.NoError(t, err)

	require.NoError(t, engine.ProcessBoletoPayment(testMinter, "bol-1"))

	requireBig(t, model.MustAmount("98"), engine.Ledger().BalanceOf(testMerchant))
	requireBig(t, model.MustAmount("2"), engine.Ledger().BalanceOf(testTreasury))

	boleto, err := engine.GetBoletoDetails("bol-1")
	require.NoError(t, err)
	require.Equal(t, model.StatusPaid, boleto.Status)
	require.Equal(t, "Maria Silva", boleto.Name)
}

func TestBoletoProcessWithBurn(t *testing.T) {
	engine := newTestEreal(t)

	_, err := engine.RegisterBoleto(testAdmin, "bol-2", model.MustAmount("100"), model.MustAmount("2"), "", "", testMerchant)
	require.NoError(t, err)

	require.NoError(t, engine.ProcessBoletoPaymentWithBurn(testMinter, "bol-2", model.MustAmount("0.5")))

	requireBig(t, model.MustAmount("98"), engine.Ledger().BalanceOf(testMerchant))
	requireBig(t, model.MustAmount("1.5"), engine.Ledger().BalanceOf(testTreasury))
	requireBig(t, model.MustAmount("99.5"), engine.Ledger().TotalSupply())
}

func TestBoletoBurnExceedsFee(t *testing.T) {
	engine := newTestEreal(t)

	_, err := engine.RegisterBoleto(testAdmin, "bol-3", model.MustAmount("100"), model.MustAmount("2"), "", "", testMerchant)
	require.NoError(t, err)

	err = engine.ProcessBoletoPaymentWithBurn(testMinter, "bol-3", model.MustAmount("3"))
	requireCode(t, err, apierror.ErrArithmeticUnderflow)
	requireBig(t, big.NewInt(0), engine.Ledger().TotalSupply())
}

func TestBoletoProcessTwice(t *testing.T) {
	engine := newTestEreal(t)

	_, err := engine.RegisterBoleto(testAdmin, "bol-4", model.MustAmount("10"), big.NewInt(0), "", "", testMerchant)
	require.NoError(t, err)
	require.NoError(t, engine.ProcessBoletoPayment(testMinter, "bol-4"))

	err = engine.ProcessBoletoPayment(testMinter, "bol-4")
	requireCode(t, err, apierror.ErrInvalidState)
	requireBig(t, model.MustAmount("10"), engine.Ledger().BalanceOf(testMerchant))
}

func TestBoletoDuplicateRegistration(t *testing.T) {
	engine := newTestEreal(t)

	_, err := engine.RegisterBoleto(testAdmin, "bol-5", model.MustAmount("10"), big.NewInt(0), "", "", testMerchant)
	require.NoError(t, err)
	_, err = engine.RegisterBoleto(testAdmin, "bol-5", model.MustAmount("20"), big.NewInt(0), "", "", testMerchant)
	requireCode(t, err, apierror.ErrDuplicateID)
}

func TestBoletoPayFromBalance(t *testing.T) {
	engine := newTestEreal(t)
	require.NoError(t, engine.Issue(testMinter, testPayer, model.MustAmount("150")))

	_, err := engine.RegisterBoleto(testAdmin, "bol-6", model.MustAmount("100"), model.MustAmount("2"), "", "", testMerchant)
	require.NoError(t, err)

	require.NoError(t, engine.PayBoleto(testAdmin, "bol-6", testPayer, model.MustAmount("100"), model.MustAmount("2")))

	requireBig(t, model.MustAmount("48"), engine.Ledger().BalanceOf(testPayer))
	requireBig(t, model.MustAmount("2"), engine.Ledger().BalanceOf(testTreasury))
	requireBig(t, model.MustAmount("50"), engine.Ledger().TotalSupply())
}

func TestBoletoPayWithBurn(t *testing.T) {
	engine := newTestEreal(t)
	require.NoError(t, engine.Issue(testMinter, testPayer, model.MustAmount("150")))

	_, err := engine.RegisterBoleto(testAdmin, "bol-7", model.MustAmount("100"), model.MustAmount("2"), "", "", testMerchant)
	require.NoError(t, err)

	require.NoError(t, engine.PayBoletoWithBurn(testAdmin, "bol-7", testPayer, model.MustAmount("100"), model.MustAmount("2"), model.MustAmount("0.5")))

	requireBig(t, model.MustAmount("48"), engine.Ledger().BalanceOf(testPayer))
	requireBig(t, model.MustAmount("1.5"), engine.Ledger().BalanceOf(testTreasury))
	requireBig(t, model.MustAmount("49.5"), engine.Ledger().TotalSupply())
}

func TestBoletoPayInsufficientBalance(t *testing.T) {
	engine := newTestEreal(t)
	require.NoError(t, engine.Issue(testMinter, testPayer, model.MustAmount("50")))

	_, err := engine.RegisterBoleto(testAdmin, "bol-8", model.MustAmount("100"), model.MustAmount("2"), "", "", testMerchant)
	require.NoError(t, err)

	err = engine.PayBoleto(testAdmin, "bol-8", testPayer, model.MustAmount("100"), model.MustAmount("2"))
	requireCode(t, err, apierror.ErrInsufficientBalance)
	requireBig(t, model.MustAmount("50"), engine.Ledger().BalanceOf(testPayer))

	boleto, err := engine.GetBoletoDetails("bol-8")
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, boleto.Status)
}

func TestBoletoProcessUnregistered(t *testing.T) {
	engine := newTestEreal(t)

	err := engine.ProcessUnregisteredBoletoPayment(testAdmin, "bol-9", model.MustAmount("100"), model.MustAmount("2"), "Jose Souza", "987.654.321-00", testMerchant)
	require.NoError(t, err)

	requireBig(t, model.MustAmount("98"), engine.Ledger().BalanceOf(testMerchant))
	requireBig(t, model.MustAmount("2"), engine.Ledger().BalanceOf(testTreasury))

	boleto, err := engine.GetBoletoDetails("bol-9")
	require.NoError(t, err)
	require.Equal(t, model.StatusPaid, boleto.Status)
}

func TestBoletoRoleGates(t *testing.T) {
	engine := newTestEreal(t)

	_, err := engine.RegisterBoleto(testMinter, "bol-10", model.MustAmount("10"), big.NewInt(0), "", "", testMerchant)
	requireCode(t, err, apierror.ErrUnauthorized)

	_, err = engine.RegisterBoleto(testAdmin, "bol-10", model.MustAmount("10"), big.NewInt(0), "", "", testMerchant)
	require.NoError(t, err)

	err = engine.ProcessBoletoPayment(testAdmin, "bol-10")
	requireCode(t, err, apierror.ErrUnauthorized)
}

func TestBoletoNotFound(t *testing.T) {
	engine := newTestEreal(t)

	err := engine.ProcessBoletoPayment(testMinter, "missing")
	requireCode(t, err, apierror.ErrNotFound)
	_, err = engine.GetBoletoDetails("missing")
	requireCode(t, err, apierror.ErrNotFound)
}
