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

func TestProcessDeposit(t *testing.T) {
	engine := newTestEreal(t)

	err := engine.ProcessDeposit(testMinter, testCustomer, model.MustAmount("100.5"), model.MustAmount("0.5"), "dep-100", "pix inflow")
	require.NoError(t, err)

	requireBig(t, model.MustAmount("100"), engine.Ledger().BalanceOf(testCustomer))
	requireBig(t, model.MustAmount("0.5"), engine.Ledger().BalanceOf(testTreasury))
	requireBig(t, model.MustAmount("100.5"), engine.Ledger().TotalSupply())
}

func TestProcessDepositZeroFee(t *testing.T) {
	engine := newTestEreal(t)

	err := engine.ProcessDeposit(testMinter, testCustomer, model.MustAmount("50"), big.NewInt(0), "dep-101", "")
	require.NoError(t, err)

	requireBig(t, model.MustAmount("50"), engine.Ledger().BalanceOf(testCustomer))
	requireBig(t, big.NewInt(0), engine.Ledger().BalanceOf(testTreasury))
}

func TestProcessDepositFeeExceedsAmount(t *testing.T) {
	engine := newTestEreal(t)

	err := engine.ProcessDeposit(testMinter, testCustomer, model.MustAmount("1"), model.MustAmount("2"), "dep-102", "")
	requireCode(t, err, apierror.ErrArithmeticUnderflow)
	requireBig(t, big.NewInt(0), engine.Ledger().TotalSupply())
}

func TestProcessDepositRequiresMinter(t *testing.T) {
	engine := newTestEreal(t)

	err := engine.ProcessDeposit(testAdmin, testCustomer, model.MustAmount("10"), big.NewInt(0), "dep-103", "")
	requireCode(t, err, apierror.ErrUnauthorized)
}

func TestProcessWithdraw(t *testing.T) {
	engine := newTestEreal(t)
	require.NoError(t, engine.Issue(testMinter, testCustomer, model.MustAmount("200")))

	err := engine.ProcessWithdraw(testBurner, testCustomer, model.MustAmount("150"), model.MustAmount("2"), "wd-100", "bank payout")
	require.NoError(t, err)

	requireBig(t, model.MustAmount("48"), engine.Ledger().BalanceOf(testCustomer))
	requireBig(t, model.MustAmount("2"), engine.Ledger().BalanceOf(testTreasury))
	requireBig(t, model.MustAmount("50"), engine.Ledger().TotalSupply())
}

func TestProcessWithdrawInsufficientBalance(t *testing.T) {
	engine := newTestEreal(t)
	require.NoError(t, engine.Issue(testMinter, testCustomer, model.MustAmount("10")))

	err := engine.ProcessWithdraw(testBurner, testCustomer, model.MustAmount("10"), model.MustAmount("1"), "wd-101", "")
	requireCode(t, err, apierror.ErrInsufficientBalance)
	requireBig(t, model.MustAmount("10"), engine.Ledger().BalanceOf(testCustomer))
	requireBig(t, big.NewInt(0), engine.Ledger().BalanceOf(testTreasury))
}

func TestProcessWithdrawRequiresBurner(t *testing.T) {
	engine := newTestEreal(t)
	require.NoError(t, engine.Issue(testMinter, testCustomer, model.MustAmount("10")))

	err := engine.ProcessWithdraw(testMinter, testCustomer, model.MustAmount("5"), big.NewInt(0), "wd-102", "")
	requireCode(t, err, apierror.ErrUnauthorized)
}
