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
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ereal-labs/ereal/internal/apierror"
	"github.com/ereal-labs/ereal/model"
)

// RegisterBoleto records a bank slip awaiting settlement. Requires the ADMIN
// role; the id must be unused and the fee cannot exceed the amount.
func (e *Ereal) RegisterBoleto(caller, id string, amount, fee *big.Int, name, taxID, beneficiary string) (*model.Boleto, error) {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return nil, err
	}
	if fee.Cmp(amount) > 0 {
		return nil, apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "fee exceeds boleto amount", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.boletos[id]; exists {
		return nil, apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("boleto %s already registered", id), nil)
	}
	boleto := &model.Boleto{
		ID:          id,
		Amount:      new(big.Int).Set(amount),
		Fee:         new(big.Int).Set(fee),
		Name:        name,
		TaxID:       taxID,
		Beneficiary: beneficiary,
		Status:      model.StatusPending,
		CreatedAt:   time.Now(),
	}
	e.boletos[id] = boleto

	logrus.WithFields(logrus.Fields{
		"boleto_id": id,
		"amount":    model.FormatAmount(amount),
		"fee":       model.FormatAmount(fee),
	}).Info("boleto registered")
	return copyBoleto(boleto), nil
}

// ProcessBoletoPayment settles a pending boleto with the mint model: the
// beneficiary receives amount-fee and the treasury receives the fee. Requires
// the MINTER role.
func (e *Ereal) ProcessBoletoPayment(caller, id string) error {
	return e.processBoleto(caller, id, big.NewInt(0))
}

// ProcessBoletoPaymentWithBurn settles a pending boleto like
// ProcessBoletoPayment but permanently destroys burnAmount out of the fee, so
// the treasury receives fee-burnAmount.
func (e *Ereal) ProcessBoletoPaymentWithBurn(caller, id string, burnAmount *big.Int) error {
	return e.processBoleto(caller, id, burnAmount)
}

func (e *Ereal) processBoleto(caller, id string, burnAmount *big.Int) error {
	if !e.ledger.HasRole(caller, model.RoleMinter) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks MINTER role", caller)
	}
	if err := checkAmounts(burnAmount); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	boleto, exists := e.boletos[id]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("boleto %s not found", id), nil)
	}
	if boleto.Status != model.StatusPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("boleto %s is %s, not pending", id, boleto.Status), nil)
	}
	if burnAmount.Cmp(boleto.Fee) > 0 {
		return apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "burn amount exceeds fee", id)
	}

	net := new(big.Int).Sub(boleto.Amount, boleto.Fee)
	treasuryFee := new(big.Int).Sub(boleto.Fee, burnAmount)
	err := e.ledger.Settle(e.identity, "", nil, []model.Credit{
		{Account: boleto.Beneficiary, Amount: net},
		{Account: e.treasury, Amount: treasuryFee},
	})
	if err != nil {
		return err
	}
	boleto.Status = model.StatusPaid

	logrus.WithFields(logrus.Fields{
		"boleto_id":   id,
		"beneficiary": boleto.Beneficiary,
		"net":         model.FormatAmount(net),
		"fee":         model.FormatAmount(boleto.Fee),
		"burned":      model.FormatAmount(burnAmount),
	}).Info("boleto payment processed")
	return nil
}

// PayBoleto settles a pending boleto from the payer's existing balance:
// amount+fee is burned from the payer and the fee is credited to the
// treasury. Requires the ADMIN role.
func (e *Ereal) PayBoleto(caller, id, payer string, amount, fee *big.Int) error {
	return e.PayBoletoWithBurn(caller, id, payer, amount, fee, big.NewInt(0))
}

// PayBoletoWithBurn is PayBoleto with part of the fee permanently destroyed;
// the treasury receives fee-burnAmount.
func (e *Ereal) PayBoletoWithBurn(caller, id, payer string, amount, fee, burnAmount *big.Int) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee, burnAmount); err != nil {
		return err
	}
	if burnAmount.Cmp(fee) > 0 {
		return apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "burn amount exceeds fee", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	boleto, exists := e.boletos[id]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("boleto %s not found", id), nil)
	}
	if boleto.Status != model.StatusPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("boleto %s is %s, not pending", id, boleto.Status), nil)
	}

	gross := new(big.Int).Add(amount, fee)
	treasuryFee := new(big.Int).Sub(fee, burnAmount)
	err := e.ledger.Settle(e.identity, payer, gross, []model.Credit{
		{Account: e.treasury, Amount: treasuryFee},
	})
	if err != nil {
		return err
	}
	boleto.Status = model.StatusPaid

	logrus.WithFields(logrus.Fields{
		"boleto_id": id,
		"payer":     payer,
		"amount":    model.FormatAmount(amount),
		"fee":       model.FormatAmount(fee),
		"burned":    model.FormatAmount(burnAmount),
	}).Info("boleto paid from balance")
	return nil
}

// ProcessUnregisteredBoletoPayment registers and settles a boleto in one step
// using the mint model. Requires the ADMIN role.
func (e *Ereal) ProcessUnregisteredBoletoPayment(caller, id string, amount, fee *big.Int, name, taxID, beneficiary string) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return err
	}
	if fee.Cmp(amount) > 0 {
		return apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "fee exceeds boleto amount", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.boletos[id]; exists {
		return apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("boleto %s already registered", id), nil)
	}

	net := new(big.Int).Sub(amount, fee)
	err := e.ledger.Settle(e.identity, "", nil, []model.Credit{
		{Account: beneficiary, Amount: net},
		{Account: e.treasury, Amount: fee},
	})
	if err != nil {
		return err
	}
	e.boletos[id] = &model.Boleto{
		ID:          id,
		Amount:      new(big.Int).Set(amount),
		Fee:         new(big.Int).Set(fee),
		Name:        name,
		TaxID:       taxID,
		Beneficiary: beneficiary,
		Status:      model.StatusPaid,
		CreatedAt:   time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"boleto_id":   id,
		"beneficiary": beneficiary,
		"net":         model.FormatAmount(net),
		"fee":         model.FormatAmount(fee),
	}).Info("unregistered boleto processed")
	return nil
}

// GetBoletoDetails returns a copy of a boleto record.
func (e *Ereal) GetBoletoDetails(id string) (*model.Boleto, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	boleto, exists := e.boletos[id]
	if !exists {
		return nil, apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("boleto %s not found", id), nil)
	}
	return copyBoleto(boleto), nil
}

func copyBoleto(b *model.Boleto) *model.Boleto {
	c := *b
	c.Amount = new(big.Int).Set(b.Amount)
	c.Fee = new(big.Int).Set(b.Fee)
	return &c
}
