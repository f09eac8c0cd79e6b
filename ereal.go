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
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ereal-labs/ereal/config"
	"github.com/ereal-labs/ereal/internal/apierror"
	"github.com/ereal-labs/ereal/model"
)

// Ereal is the payment engine: one ledger plus the per-family payment record
// stores the processors operate on. The engine holds its own ledger identity,
// granted MINTER and BURNER at construction, so processor settlements are
// authorized on the ledger independently of the operator who triggered them.
type Ereal struct {
	ledger   *model.Ledger
	treasury string
	identity string

	mu          sync.Mutex
	boletos     map[string]*model.Boleto
	brcodes     map[string]*model.BrCode
	links       map[string]*model.PaymentLink
	withdrawals map[uint64]*model.WithdrawalRequest

	rates *RateTable
}

// NewEreal initializes the engine from configuration: it seeds the ledger's
// role registry, registers the engine's own identity as minter and burner and
// creates empty record stores.
func NewEreal(cnf *config.Configuration) (*Ereal, error) {
	if cnf.Ledger.Treasury == "" {
		return nil, errors.New("treasury identity is required")
	}
	roles := cnf.Ledger.Roles
	ledger := model.NewLedger(model.RoleSeed{
		Admin:      roles.Admin,
		Pauser:     roles.Pauser,
		Minter:     roles.Minter,
		Burner:     roles.Burner,
		Compliance: roles.Compliance,
		Transfer:   roles.Transfer,
	})

	identity := model.GenerateUUIDWithSuffix("prc")
	if err := ledger.GrantRole(roles.Admin, identity, model.RoleMinter); err != nil {
		return nil, errors.Wrap(err, "granting engine minter role")
	}
	if err := ledger.GrantRole(roles.Admin, identity, model.RoleBurner); err != nil {
		return nil, errors.Wrap(err, "granting engine burner role")
	}

	return &Ereal{
		ledger:      ledger,
		treasury:    cnf.Ledger.Treasury,
		identity:    identity,
		boletos:     make(map[string]*model.Boleto),
		brcodes:     make(map[string]*model.BrCode),
		links:       make(map[string]*model.PaymentLink),
		withdrawals: make(map[uint64]*model.WithdrawalRequest),
		rates:       NewRateTable(),
	}, nil
}

// checkAmounts rejects nil or negative amounts before any arithmetic is done
// on them.
func checkAmounts(values ...*big.Int) error {
	for _, v := range values {
		if v == nil || v.Sign() < 0 {
			return apierror.NewAPIError(apierror.ErrBadRequest, "amount must be a non-negative integer", nil)
		}
	}
	return nil
}

// Ledger exposes the underlying ledger for direct privileged operations.
func (e *Ereal) Ledger() *model.Ledger {
	return e.ledger
}

// Treasury returns the fee-collecting identity.
func (e *Ereal) Treasury() string {
	return e.treasury
}

// Issue mints value to a recipient on behalf of a MINTER operator.
func (e *Ereal) Issue(caller, recipient string, amount *big.Int) error {
	if err := e.ledger.Issue(caller, recipient, amount); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"recipient": recipient,
		"amount":    model.FormatAmount(amount),
	}).Info("value issued")
	return nil
}

// Redeem burns value from the operator's own balance.
func (e *Ereal) Redeem(caller string, amount *big.Int) error {
	if err := e.ledger.Redeem(caller, amount); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"account": caller,
		"amount":  model.FormatAmount(amount),
	}).Info("value redeemed")
	return nil
}

// Transfer moves value from the caller's own balance.
func (e *Ereal) Transfer(from, to string, amount *big.Int) error {
	return e.ledger.Transfer(from, to, amount)
}

// OperatorTransfer moves value between third-party accounts (TRANSFER role).
func (e *Ereal) OperatorTransfer(caller, from, to string, amount *big.Int) error {
	if err := e.ledger.OperatorTransfer(caller, from, to, amount); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"from":   from,
		"to":     to,
		"amount": model.FormatAmount(amount),
	}).Info("operator transfer executed")
	return nil
}

// SetBlacklisted flags or unflags an identity (COMPLIANCE role).
func (e *Ereal) SetBlacklisted(caller, target string, flag bool) error {
	if err := e.ledger.SetBlacklisted(caller, target, flag); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"target":      target,
		"blacklisted": flag,
	}).Info("blacklist updated")
	return nil
}

// Pause stops all pause-sensitive ledger operations (PAUSER role).
func (e *Ereal) Pause(caller string) error {
	if err := e.ledger.Pause(caller); err != nil {
		return err
	}
	logrus.Warn("ledger paused")
	return nil
}

// Unpause resumes normal operation (PAUSER role).
func (e *Ereal) Unpause(caller string) error {
	if err := e.ledger.Unpause(caller); err != nil {
		return err
	}
	logrus.Info("ledger unpaused")
	return nil
}
