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

	"github.com/sirupsen/logrus"

	"github.com/ereal-labs/ereal/internal/apierror"
	"github.com/ereal-labs/ereal/model"
)

// ProcessDeposit settles an off-chain BRL deposit: the customer receives the
// gross amount minus the fee, the treasury receives the fee. Requires the
// MINTER role. The payment id and memo are carried into the audit log only;
// deposits keep no record beyond it.
func (e *Ereal) ProcessDeposit(caller, customer string, amount, fee *big.Int, paymentID, memo string) error {
	if !e.ledger.HasRole(caller, model.RoleMinter) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks MINTER role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return err
	}
	if fee.Cmp(amount) > 0 {
		return apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "fee exceeds deposit amount", paymentID)
	}
	net := new(big.Int).Sub(amount, fee)

	err := e.ledger.Settle(e.identity, "", nil, []model.Credit{
		{Account: customer, Amount: net},
		{Account: e.treasury, Amount: fee},
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"payment_id": paymentID,
		"customer":   customer,
		"amount":     model.FormatAmount(amount),
		"fee":        model.FormatAmount(fee),
		"memo":       memo,
	}).Info("deposit processed")
	return nil
}

// ProcessWithdraw settles an off-chain BRL withdrawal: amount is the net value
// leaving for the customer, so amount+fee is burned from the customer's
// balance and the fee is credited to the treasury. Requires the BURNER role.
func (e *Ereal) ProcessWithdraw(caller, customer string, amount, fee *big.Int, paymentID, memo string) error {
	if !e.ledger.HasRole(caller, model.RoleBurner) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks BURNER role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return err
	}
	gross := new(big.Int).Add(amount, fee)

	err := e.ledger.Settle(e.identity, customer, gross, []model.Credit{
		{Account: e.treasury, Amount: fee},
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"payment_id": paymentID,
		"customer":   customer,
		"amount":     model.FormatAmount(amount),
		"fee":        model.FormatAmount(fee),
		"memo":       memo,
	}).Info("withdrawal processed")
	return nil
}
