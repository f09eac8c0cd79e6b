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

// RegisterPix records an instant-payment BR code awaiting settlement. Tags and
// pictureUrl are optional display metadata. Requires the ADMIN role.
func (e *Ereal) RegisterPix(caller, id string, amount, fee *big.Int, tags []string, beneficiary, pictureURL string) (*model.BrCode, error) {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return nil, err
	}
	if fee.Cmp(amount) > 0 {
		return nil, apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "fee exceeds pix amount", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.brcodes[id]; exists {
		return nil, apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("pix %s already registered", id), nil)
	}
	brcode := &model.BrCode{
		ID:          id,
		Amount:      new(big.Int).Set(amount),
		Fee:         new(big.Int).Set(fee),
		Tags:        append([]string(nil), tags...),
		PictureURL:  pictureURL,
		Beneficiary: beneficiary,
		Status:      model.StatusPending,
		CreatedAt:   time.Now(),
	}
	e.brcodes[id] = brcode

	logrus.WithFields(logrus.Fields{
		"pix_id": id,
		"amount": model.FormatAmount(amount),
		"fee":    model.FormatAmount(fee),
	}).Info("pix registered")
	return copyBrCode(brcode), nil
}

// ProcessPixPayment settles a pending BR code with the mint model: the
// beneficiary receives amount-fee and the treasury the fee. Requires the
// MINTER role.
func (e *Ereal) ProcessPixPayment(caller, id string) error {
	return e.processPix(caller, id, big.NewInt(0))
}

// ProcessPixPaymentWithBurn settles a pending BR code like ProcessPixPayment
// but permanently destroys burnAmount out of the fee; the treasury receives
// fee-burnAmount.
func (e *Ereal) ProcessPixPaymentWithBurn(caller, id string, burnAmount *big.Int) error {
	return e.processPix(caller, id, burnAmount)
}

func (e *Ereal) processPix(caller, id string, burnAmount *big.Int) error {
	if !e.ledger.HasRole(caller, model.RoleMinter) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks MINTER role", caller)
	}
	if err := checkAmounts(burnAmount); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	brcode, exists := e.brcodes[id]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("pix %s not found", id), nil)
	}
	if brcode.Status != model.StatusPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("pix %s is %s, not pending", id, brcode.Status), nil)
	}
	if burnAmount.Cmp(brcode.Fee) > 0 {
		return apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "burn amount exceeds fee", id)
	}

	net := new(big.Int).Sub(brcode.Amount, brcode.Fee)
	treasuryFee := new(big.Int).Sub(brcode.Fee, burnAmount)
	err := e.ledger.Settle(e.identity, "", nil, []model.Credit{
		{Account: brcode.Beneficiary, Amount: net},
		{Account: e.treasury, Amount: treasuryFee},
	})
	if err != nil {
		return err
	}
	brcode.Status = model.StatusPaid

	logrus.WithFields(logrus.Fields{
		"pix_id":      id,
		"beneficiary": brcode.Beneficiary,
		"net":         model.FormatAmount(net),
		"fee":         model.FormatAmount(brcode.Fee),
		"burned":      model.FormatAmount(burnAmount),
	}).Info("pix payment processed")
	return nil
}

// PayPix settles a pending BR code from the payer's existing balance:
// amount+fee is burned from the payer and the fee is credited to the
// treasury. Requires the ADMIN role.
func (e *Ereal) PayPix(caller, id, payer string, amount, fee *big.Int) error {
	return e.PayPixWithBurn(caller, id, payer, amount, fee, big.NewInt(0))
}

// PayPixWithBurn is PayPix with part of the fee permanently destroyed; the
// treasury receives fee-burnAmount.
func (e *Ereal) PayPixWithBurn(caller, id, payer string, amount, fee, burnAmount *big.Int) error {
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
	brcode, exists := e.brcodes[id]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("pix %s not found", id), nil)
	}
	if brcode.Status != model.StatusPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("pix %s is %s, not pending", id, brcode.Status), nil)
	}

	gross := new(big.Int).Add(amount, fee)
	treasuryFee := new(big.Int).Sub(fee, burnAmount)
	err := e.ledger.Settle(e.identity, payer, gross, []model.Credit{
		{Account: e.treasury, Amount: treasuryFee},
	})
	if err != nil {
		return err
	}
	brcode.Status = model.StatusPaid

	logrus.WithFields(logrus.Fields{
		"pix_id": id,
		"payer":  payer,
		"amount": model.FormatAmount(amount),
		"fee":    model.FormatAmount(fee),
		"burned": model.FormatAmount(burnAmount),
	}).Info("pix paid from balance")
	return nil
}

// ProcessUnregisteredPixPayment registers and settles a BR code in one step
// using the mint model. Requires the ADMIN role.
func (e *Ereal) ProcessUnregisteredPixPayment(caller, id string, amount, fee *big.Int, beneficiary string) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return err
	}
	if fee.Cmp(amount) > 0 {
		return apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "fee exceeds pix amount", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.brcodes[id]; exists {
		return apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("pix %s already registered", id), nil)
	}

	net := new(big.Int).Sub(amount, fee)
	err := e.ledger.Settle(e.identity, "", nil, []model.Credit{
		{Account: beneficiary, Amount: net},
		{Account: e.treasury, Amount: fee},
	})
	if err != nil {
		return err
	}
	e.brcodes[id] = &model.BrCode{
		ID:          id,
		Amount:      new(big.Int).Set(amount),
		Fee:         new(big.Int).Set(fee),
		Beneficiary: beneficiary,
		Status:      model.StatusPaid,
		CreatedAt:   time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"pix_id":      id,
		"beneficiary": beneficiary,
		"net":         model.FormatAmount(net),
		"fee":         model.FormatAmount(fee),
	}).Info("unregistered pix processed")
	return nil
}

// GetPixDetails returns a copy of a BR code record.
func (e *Ereal) GetPixDetails(id string) (*model.BrCode, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	brcode, exists := e.brcodes[id]
	if !exists {
		return nil, apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("pix %s not found", id), nil)
	}
	return copyBrCode(brcode), nil
}

func copyBrCode(b *model.BrCode) *model.BrCode {
	c := *b
	c.Amount = new(big.Int).Set(b.Amount)
	c.Fee = new(big.Int).Set(b.Fee)
	c.Tags = append([]string(nil), b.Tags...)
	return &c
}
