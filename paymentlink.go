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

// SetInterestRate configures the interest rate, in basis points, for an
// installment count. Requires the ADMIN role.
func (e *Ereal) SetInterestRate(caller string, installments int, bps int64) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if installments <= 0 || bps < 0 {
		return apierror.NewAPIError(apierror.ErrBadRequest,
			"installments must be positive and rate non-negative", nil)
	}
	e.rates.SetInterest(installments, bps)
	logrus.WithFields(logrus.Fields{
		"installments": installments,
		"interest_bps": bps,
	}).Info("interest rate set")
	return nil
}

// SetSpreadRate configures the spread rate, in basis points, for an
// installment count. Requires the ADMIN role.
func (e *Ereal) SetSpreadRate(caller string, installments int, bps int64) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if installments <= 0 || bps < 0 {
		return apierror.NewAPIError(apierror.ErrBadRequest,
			"installments must be positive and rate non-negative", nil)
	}
	e.rates.SetSpread(installments, bps)
	logrus.WithFields(logrus.Fields{
		"installments": installments,
		"spread_bps":   bps,
	}).Info("spread rate set")
	return nil
}

// GetRates returns the configured rates for an installment count; both are
// zero when never set.
func (e *Ereal) GetRates(installments int) model.RateEntry {
	return e.rates.Get(installments)
}

// CreatePaymentLink records an installment-model payment link. The current
// rates for the installment count are pinned onto the link so later rate
// changes do not alter its economics. Requires the ADMIN role.
func (e *Ereal) CreatePaymentLink(caller, uuid string, amount *big.Int, installments int, customer, beneficiary string) (*model.PaymentLink, error) {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount); err != nil {
		return nil, err
	}
	if installments <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "installments must be positive", nil)
	}
	if beneficiary == "" {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "beneficiary is required", uuid)
	}

	entry := e.rates.Get(installments)

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.links[uuid]; exists {
		return nil, apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("payment link %s already exists", uuid), nil)
	}
	link := &model.PaymentLink{
		UUID:         uuid,
		Amount:       new(big.Int).Set(amount),
		Installments: installments,
		InterestBps:  entry.InterestBps,
		SpreadBps:    entry.SpreadBps,
		Customer:     customer,
		Beneficiary:  beneficiary,
		Status:       model.StatusPending,
		CreatedAt:    time.Now(),
	}
	e.links[uuid] = link

	logrus.WithFields(logrus.Fields{
		"link_uuid":    uuid,
		"amount":       model.FormatAmount(amount),
		"installments": installments,
		"interest_bps": entry.InterestBps,
		"spread_bps":   entry.SpreadBps,
	}).Info("payment link created")
	return copyPaymentLink(link), nil
}

// CreatePaymentLinkWithFee records a flat-fee payment link: on success the
// whole fee goes to the treasury and the customer receives amount-fee.
// Requires the ADMIN role.
func (e *Ereal) CreatePaymentLinkWithFee(caller, uuid string, amount, fee *big.Int, customer string) (*model.PaymentLink, error) {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return nil, err
	}
	if fee.Cmp(amount) > 0 {
		return nil, apierror.NewAPIError(apierror.ErrArithmeticUnderflow,
			"fee exceeds payment link amount", uuid)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.links[uuid]; exists {
		return nil, apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("payment link %s already exists", uuid), nil)
	}
	link := &model.PaymentLink{
		UUID:      uuid,
		Amount:    new(big.Int).Set(amount),
		FlatFee:   new(big.Int).Set(fee),
		Customer:  customer,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}
	e.links[uuid] = link

	logrus.WithFields(logrus.Fields{
		"link_uuid": uuid,
		"amount":    model.FormatAmount(amount),
		"fee":       model.FormatAmount(fee),
	}).Info("flat-fee payment link created")
	return copyPaymentLink(link), nil
}

// ProcessPaymentLink resolves a pending link. On success the net, treasury
// and beneficiary legs are minted in one atomic settlement per the link's
// pinned rates; the interest portion is a financing cost and is never minted.
// On failure the link is marked failed and no value moves.
func (e *Ereal) ProcessPaymentLink(caller, uuid string, success bool) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	link, exists := e.links[uuid]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("payment link %s not found", uuid), nil)
	}
	if link.Status != model.StatusPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("payment link %s is %s, not pending", uuid, link.Status), nil)
	}

	if !success {
		link.Status = model.StatusFailed
		logrus.WithField("link_uuid", uuid).Info("payment link failed")
		return nil
	}

	breakdown, err := link.Breakdown()
	if err != nil {
		return err
	}
	credits := []model.Credit{
		{Account: link.Customer, Amount: breakdown.Net},
		{Account: e.treasury, Amount: breakdown.Treasury},
	}
	if link.Beneficiary != "" {
		credits = append(credits, model.Credit{Account: link.Beneficiary, Amount: breakdown.Beneficiary})
	}
	if err := e.ledger.Settle(e.identity, "", nil, credits); err != nil {
		return err
	}
	link.Status = model.StatusPaid

	logrus.WithFields(logrus.Fields{
		"link_uuid": uuid,
		"customer":  link.Customer,
		"net":       model.FormatAmount(breakdown.Net),
		"interest":  model.FormatAmount(breakdown.Interest),
		"spread":    model.FormatAmount(breakdown.Spread),
		"treasury":  model.FormatAmount(breakdown.Treasury),
	}).Info("payment link settled")
	return nil
}

// GetPaymentLink returns a copy of a payment link record.
func (e *Ereal) GetPaymentLink(uuid string) (*model.PaymentLink, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	link, exists := e.links[uuid]
	if !exists {
		return nil, apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("payment link %s not found", uuid), nil)
	}
	return copyPaymentLink(link), nil
}

func copyPaymentLink(pl *model.PaymentLink) *model.PaymentLink {
	c := *pl
	c.Amount = new(big.Int).Set(pl.Amount)
	if pl.FlatFee != nil {
		c.FlatFee = new(big.Int).Set(pl.FlatFee)
	}
	return &c
}
