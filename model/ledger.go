package model

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ereal-labs/ereal/internal/apierror"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RolePauser     Role = "PAUSER"
	RoleMinter     Role = "MINTER"
	RoleBurner     Role = "BURNER"
	RoleCompliance Role = "COMPLIANCE"
	RoleTransfer   Role = "TRANSFER"
)

// RoleSeed is the construction-time role assignment for a Ledger. Empty
// identities are skipped; further grants go through GrantRole.
type RoleSeed struct {
	Admin      string
	Pauser     string
	Minter     string
	Burner     string
	Compliance string
	Transfer   string
}

// Credit is one leg of a settlement: an account to be credited with an amount
// of newly issued value.
type Credit struct {
	Account string
	Amount  *big.Int
}

// Ledger holds per-account balances together with the role registry, the
// blacklist and the pause flag that gate every mutation. All operations are
// serialized on a single mutex so that a check and the mutation it guards can
// never race; an operation either completes fully or leaves no trace.
type Ledger struct {
	mu            sync.Mutex
	balances      map[string]*big.Int
	roles         map[string]map[Role]bool
	blacklist     map[string]bool
	paused        bool
	totalIssued   *big.Int
	totalRedeemed *big.Int
}

// NewLedger creates an independent ledger instance with the given role seed.
func NewLedger(seed RoleSeed) *Ledger {
	l := &Ledger{
		balances:      make(map[string]*big.Int),
		roles:         make(map[string]map[Role]bool),
		blacklist:     make(map[string]bool),
		totalIssued:   big.NewInt(0),
		totalRedeemed: big.NewInt(0),
	}
	l.grant(seed.Admin, RoleAdmin)
	l.grant(seed.Pauser, RolePauser)
	l.grant(seed.Minter, RoleMinter)
	l.grant(seed.Burner, RoleBurner)
	l.grant(seed.Compliance, RoleCompliance)
	l.grant(seed.Transfer, RoleTransfer)
	return l
}

func (l *Ledger) grant(identity string, role Role) {
	if identity == "" {
		return
	}
	if l.roles[identity] == nil {
		l.roles[identity] = make(map[Role]bool)
	}
	l.roles[identity][role] = true
}

func (l *Ledger) hasRole(identity string, role Role) bool {
	return l.roles[identity][role]
}

// requireRole is the single authorization helper every privileged operation
// goes through. Callers must hold l.mu.
func (l *Ledger) requireRole(identity string, role Role) error {
	if !l.hasRole(identity, role) {
		return apierror.NewAPIError(apierror.ErrUnauthorized,
			fmt.Sprintf("caller lacks %s role", role), identity)
	}
	return nil
}

func (l *Ledger) requireNotPaused() error {
	if l.paused {
		return apierror.NewAPIError(apierror.ErrPaused, "ledger is paused", nil)
	}
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return apierror.NewAPIError(apierror.ErrBadRequest, "amount must be a non-negative integer", nil)
	}
	return nil
}

func (l *Ledger) balanceOf(identity string) *big.Int {
	if b, ok := l.balances[identity]; ok {
		return b
	}
	return big.NewInt(0)
}

// HasRole reports whether an identity holds a role.
func (l *Ledger) HasRole(identity string, role Role) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasRole(identity, role)
}

// GrantRole assigns a role to an identity. Only ADMIN callers may grant.
func (l *Ledger) GrantRole(caller, identity string, role Role) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleAdmin); err != nil {
		return err
	}
	l.grant(identity, role)
	return nil
}

// RevokeRole removes a role from an identity. Only ADMIN callers may revoke.
func (l *Ledger) RevokeRole(caller, identity string, role Role) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleAdmin); err != nil {
		return err
	}
	delete(l.roles[identity], role)
	return nil
}

// IsBlacklisted reports whether an identity is blacklisted.
func (l *Ledger) IsBlacklisted(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blacklist[identity]
}

// SetBlacklisted flags or unflags an identity. Only COMPLIANCE callers may
// mutate the blacklist. The operation is idempotent and moves no balances.
func (l *Ledger) SetBlacklisted(caller, target string, flag bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleCompliance); err != nil {
		return err
	}
	if flag {
		l.blacklist[target] = true
	} else {
		delete(l.blacklist, target)
	}
	return nil
}

// Pause stops all pause-sensitive operations: transfer, redeem and issue.
// Pausing an already paused ledger is accepted as a no-op.
func (l *Ledger) Pause(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RolePauser); err != nil {
		return err
	}
	l.paused = true
	return nil
}

// Unpause resumes normal operation. Unpausing a running ledger is a no-op.
func (l *Ledger) Unpause(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RolePauser); err != nil {
		return err
	}
	l.paused = false
	return nil
}

// Paused reports the pause flag.
func (l *Ledger) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// BalanceOf returns a copy of an account's balance. Unknown accounts hold zero.
func (l *Ledger) BalanceOf(identity string) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.balanceOf(identity))
}

// TotalIssued returns the cumulative issued value.
func (l *Ledger) TotalIssued() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.totalIssued)
}

// TotalRedeemed returns the cumulative redeemed value.
func (l *Ledger) TotalRedeemed() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.totalRedeemed)
}

// TotalSupply returns totalIssued - totalRedeemed, which always equals the sum
// of all balances.
func (l *Ledger) TotalSupply() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Sub(l.totalIssued, l.totalRedeemed)
}

// Issue mints new value to a recipient. Requires the MINTER role; blocked
// while paused and when the recipient is blacklisted.
func (l *Ledger) Issue(caller, recipient string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleMinter); err != nil {
		return err
	}
	if err := l.requireNotPaused(); err != nil {
		return err
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if l.blacklist[recipient] {
		return apierror.NewAPIError(apierror.ErrComplianceViolation, "recipient is blacklisted", recipient)
	}
	l.credit(recipient, amount)
	return nil
}

// Redeem burns value from the caller's own balance. Requires the BURNER role.
func (l *Ledger) Redeem(caller string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleBurner); err != nil {
		return err
	}
	return l.debit(caller, amount)
}

// RedeemFrom burns value from a third party's balance. It is the privileged
// counterpart of Redeem that payment processors use to settle debits on a
// customer's behalf. Requires the BURNER role.
func (l *Ledger) RedeemFrom(caller, account string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleBurner); err != nil {
		return err
	}
	return l.debit(account, amount)
}

// Transfer moves value from the sender's own balance to a recipient. Blocked
// while paused and when either side is blacklisted.
func (l *Ledger) Transfer(from, to string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(from, to, amount)
}

// OperatorTransfer moves value between two third-party accounts. Requires the
// TRANSFER role; the same pause and compliance gates as Transfer apply.
func (l *Ledger) OperatorTransfer(caller, from, to string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, RoleTransfer); err != nil {
		return err
	}
	return l.transfer(from, to, amount)
}

// Settle applies one optional debit and any number of credits as a single
// atomic operation: every gate is checked before the first balance moves, so a
// multi-leg fee split either lands in full or not at all. A caller with legs
// on both sides needs both the BURNER and the MINTER role.
func (l *Ledger) Settle(caller, debtor string, debit *big.Int, credits []Credit) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	hasDebit := debtor != "" && debit != nil && debit.Sign() > 0
	if hasDebit {
		if err := l.requireRole(caller, RoleBurner); err != nil {
			return err
		}
	}
	if len(credits) > 0 {
		if err := l.requireRole(caller, RoleMinter); err != nil {
			return err
		}
	}
	if err := l.requireNotPaused(); err != nil {
		return err
	}
	if hasDebit {
		if err := checkAmount(debit); err != nil {
			return err
		}
	}
	for _, c := range credits {
		if err := checkAmount(c.Amount); err != nil {
			return err
		}
		if l.blacklist[c.Account] {
			return apierror.NewAPIError(apierror.ErrComplianceViolation, "recipient is blacklisted", c.Account)
		}
	}
	if hasDebit && l.balanceOf(debtor).Cmp(debit) < 0 {
		return apierror.NewAPIError(apierror.ErrInsufficientBalance, "insufficient balance", debtor)
	}

	if hasDebit {
		l.balances[debtor] = new(big.Int).Sub(l.balanceOf(debtor), debit)
		l.totalRedeemed = new(big.Int).Add(l.totalRedeemed, debit)
	}
	for _, c := range credits {
		l.credit(c.Account, c.Amount)
	}
	return nil
}

// credit mutates a balance and the issued total. Callers hold l.mu and have
// already passed every gate.
func (l *Ledger) credit(account string, amount *big.Int) {
	l.balances[account] = new(big.Int).Add(l.balanceOf(account), amount)
	l.totalIssued = new(big.Int).Add(l.totalIssued, amount)
}

func (l *Ledger) debit(account string, amount *big.Int) error {
	if err := l.requireNotPaused(); err != nil {
		return err
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if l.balanceOf(account).Cmp(amount) < 0 {
		return apierror.NewAPIError(apierror.ErrInsufficientBalance, "insufficient balance", account)
	}
	l.balances[account] = new(big.Int).Sub(l.balanceOf(account), amount)
	l.totalRedeemed = new(big.Int).Add(l.totalRedeemed, amount)
	return nil
}

func (l *Ledger) transfer(from, to string, amount *big.Int) error {
	if err := l.requireNotPaused(); err != nil {
		return err
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if l.blacklist[from] {
		return apierror.NewAPIError(apierror.ErrComplianceViolation, "sender is blacklisted", from)
	}
	if l.blacklist[to] {
		return apierror.NewAPIError(apierror.ErrComplianceViolation, "recipient is blacklisted", to)
	}
	if l.balanceOf(from).Cmp(amount) < 0 {
		return apierror.NewAPIError(apierror.ErrInsufficientBalance, "insufficient balance", from)
	}
	l.balances[from] = new(big.Int).Sub(l.balanceOf(from), amount)
	l.balances[to] = new(big.Int).Add(l.balanceOf(to), amount)
	return nil
}
