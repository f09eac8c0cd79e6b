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

// RequestWithdrawal records a pending withdrawal for a user. No funds move
// until the request is approved. Requires the ADMIN role; the id is supplied
// by the caller and must be unused.
func (e *Ereal) RequestWithdrawal(caller string, id uint64, user string, amount, fee *big.Int) (*model.WithdrawalRequest, error) {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}
	if err := checkAmounts(amount, fee); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.withdrawals[id]; exists {
		return nil, apierror.NewAPIError(apierror.ErrDuplicateID,
			fmt.Sprintf("withdrawal request %d already exists", id), nil)
	}
	request := &model.WithdrawalRequest{
		ID:        id,
		User:      user,
		Amount:    new(big.Int).Set(amount),
		Fee:       new(big.Int).Set(fee),
		Status:    model.WithdrawalPending,
		CreatedAt: time.Now(),
	}
	e.withdrawals[id] = request

	logrus.WithFields(logrus.Fields{
		"withdrawal_id": id,
		"user":          user,
		"amount":        model.FormatAmount(amount),
		"fee":           model.FormatAmount(fee),
	}).Info("withdrawal requested")
	return copyWithdrawal(request), nil
}

// ApproveWithdrawal settles a pending request: amount+fee is burned from the
// user and the fee is credited to the treasury. A request settles exactly
// once; approving a non-pending request fails with no balance change.
func (e *Ereal) ApproveWithdrawal(caller string, id uint64) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	request, exists := e.withdrawals[id]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("withdrawal request %d not found", id), nil)
	}
	if request.Status != model.WithdrawalPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("withdrawal request %d is %s, not pending", id, request.Status), nil)
	}

	gross := new(big.Int).Add(request.Amount, request.Fee)
	err := e.ledger.Settle(e.identity, request.User, gross, []model.Credit{
		{Account: e.treasury, Amount: request.Fee},
	})
	if err != nil {
		return err
	}
	request.Status = model.WithdrawalApproved

	logrus.WithFields(logrus.Fields{
		"withdrawal_id": id,
		"user":          request.User,
		"amount":        model.FormatAmount(request.Amount),
		"fee":           model.FormatAmount(request.Fee),
	}).Info("withdrawal approved")
	return nil
}

// CancelWithdrawal marks a pending request cancelled. Nothing was reserved on
// the ledger, so no balance moves.
func (e *Ereal) CancelWithdrawal(caller string, id uint64) error {
	if !e.ledger.HasRole(caller, model.RoleAdmin) {
		return apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks ADMIN role", caller)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	request, exists := e.withdrawals[id]
	if !exists {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("withdrawal request %d not found", id), nil)
	}
	if request.Status != model.WithdrawalPending {
		return apierror.NewAPIError(apierror.ErrInvalidState,
			fmt.Sprintf("withdrawal request %d is %s, not pending", id, request.Status), nil)
	}
	request.Status = model.WithdrawalCancelled

	logrus.WithField("withdrawal_id", id).Info("withdrawal cancelled")
	return nil
}

// GetWithdrawalRequest returns a copy of a withdrawal request.
func (e *Ereal) GetWithdrawalRequest(id uint64) (*model.WithdrawalRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	request, exists := e.withdrawals[id]
	if !exists {
		return nil, apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("withdrawal request %d not found", id), nil)
	}
	return copyWithdrawal(request), nil
}

func copyWithdrawal(r *model.WithdrawalRequest) *model.WithdrawalRequest {
	c := *r
	c.Amount = new(big.Int).Set(r.Amount)
	c.Fee = new(big.Int).Set(r.Fee)
	return &c
}
