package loan_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/balabank/infra/repository"
	"github.com/amirasaad/balabank/pkg/domain"
	loandomain "github.com/amirasaad/balabank/pkg/domain/loan"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	familysvc "github.com/amirasaad/balabank/pkg/service/family"
	loansvc "github.com/amirasaad/balabank/pkg/service/loan"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/amirasaad/balabank/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	loans    *loansvc.Service
	users    *usersvc.Service
	families *familysvc.Service
	parent   *dto.UserRead
	child    *dto.UserRead
	uow      *infrarepo.UoW
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	uow := infrarepo.NewUoW(db)
	logger := slog.New(slog.DiscardHandler)
	cfg := testutils.NewTestConfig()

	families := familysvc.New(uow, cfg.Bank, logger)

	parent, _, err := families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111",
		Password:    "secret123",
		Surname:     "Stark",
		Name:        "Ned",
		Age:         45,
	}, "The Starks")
	require.NoError(t, err)

	child, err := families.AddChild(ctx, parent, usersvc.RegisterInput{
		PhoneNumber: "+996555222222",
		Password:    "secret123",
		Surname:     "Stark",
		Name:        "Arya",
		Age:         14,
	})
	require.NoError(t, err)

	return &fixture{
		loans:    loansvc.New(uow, logger),
		users:    usersvc.New(uow, logger),
		families: families,
		parent:   parent,
		child:    child,
		uow:      uow,
	}
}

func (f *fixture) balance(t *testing.T, u *dto.UserRead) decimal.Decimal {
	t.Helper()
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	fresh, err := users.Get(context.Background(), u.ID)
	require.NoError(t, err)
	return fresh.Balance
}

func (f *fixture) request(t *testing.T, amount string) *dto.LoanRead {
	t.Helper()
	created, err := f.loans.Request(context.Background(), f.child, decimal.RequireFromString(amount), "bike")
	require.NoError(t, err)
	return created
}

func TestRequest(t *testing.T) {
	f := setup(t)

	created := f.request(t, "1000.00")
	assert.Equal(t, string(loandomain.StatusRequested), created.Status)
	assert.True(t, created.InterestRate.IsZero())
	assert.True(t, created.TotalToPay.Equal(created.Amount))
	assert.Nil(t, created.LenderID)
}

func TestRequest_ParentCannot(t *testing.T) {
	f := setup(t)
	_, err := f.loans.Request(context.Background(), f.parent, decimal.RequireFromString("100.00"), "")
	assert.ErrorIs(t, err, userdomain.ErrNotAChild)
}

func TestApprove_MovesPrincipal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created := f.request(t, "1000.00")

	due := time.Now().AddDate(0, 1, 0)
	approved, err := f.loans.Approve(ctx, f.parent, created.ID, decimal.RequireFromString("5.00"), due)
	require.NoError(t, err)
	assert.Equal(t, string(loandomain.StatusActive), approved.Status)
	assert.True(t, approved.TotalToPay.Equal(decimal.RequireFromString("1050.00")))
	require.NotNil(t, approved.LenderID)
	assert.Equal(t, f.parent.ID, *approved.LenderID)

	assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("9000.00")))
	assert.True(t, f.balance(t, f.child).Equal(decimal.RequireFromString("1000.00")))

	history, err := f.users.Transactions(ctx, f.child)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Loan issued: bike", history[0].Description)
}

func TestApprove_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	due := time.Now().AddDate(0, 1, 0)

	t.Run("child cannot approve", func(t *testing.T) {
		created := f.request(t, "100.00")
		_, err := f.loans.Approve(ctx, f.child, created.ID, decimal.Zero, due)
		assert.ErrorIs(t, err, userdomain.ErrNotAParent)
	})

	t.Run("approve twice", func(t *testing.T) {
		created := f.request(t, "100.00")
		_, err := f.loans.Approve(ctx, f.parent, created.ID, decimal.Zero, due)
		require.NoError(t, err)
		_, err = f.loans.Approve(ctx, f.parent, created.ID, decimal.Zero, due)
		assert.ErrorIs(t, err, loandomain.ErrLoanNotRequested)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		created := f.request(t, "999999.00")
		before := f.balance(t, f.child)
		_, err := f.loans.Approve(ctx, f.parent, created.ID, decimal.Zero, due)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, f.balance(t, f.child).Equal(before))
	})
}

func TestApprove_OtherFamily(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created := f.request(t, "100.00")

	outsider, _, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996777888888",
		Password:    "secret123",
		Surname:     "Lannister",
		Name:        "Tywin",
		Age:         60,
	}, "The Lannisters")
	require.NoError(t, err)

	_, err = f.loans.Approve(ctx, outsider, created.ID, decimal.Zero, time.Now().AddDate(0, 1, 0))
	assert.ErrorIs(t, err, loandomain.ErrNotFamilyLoan)

	err = f.loans.Reject(ctx, outsider, created.ID)
	assert.ErrorIs(t, err, loandomain.ErrNotFamilyLoan)
}

func TestRepay(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created := f.request(t, "1000.00")

	_, err := f.loans.Approve(ctx, f.parent, created.ID, decimal.RequireFromString("5.00"), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)

	// The child holds only the principal; top up so the interest is covered.
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	topped := decimal.RequireFromString("1100.00")
	require.NoError(t, users.Update(ctx, f.child.ID, &dto.UserUpdate{Balance: &topped}))

	require.NoError(t, f.loans.Repay(ctx, f.child, created.ID))

	assert.True(t, f.balance(t, f.child).Equal(decimal.RequireFromString("50.00")))
	assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("10050.00")))

	loans, err := f.loans.List(ctx, f.child)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, string(loandomain.StatusPaid), loans[0].Status)

	t.Run("repay twice", func(t *testing.T) {
		err := f.loans.Repay(ctx, f.child, created.ID)
		assert.ErrorIs(t, err, loandomain.ErrLoanNotActive)
		assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("10050.00")))
	})

	t.Run("ledger has both directions", func(t *testing.T) {
		history, err := f.users.Transactions(ctx, f.child)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "Loan repaid: bike", history[0].Description)
		assert.Equal(t, f.child.ID, history[0].SenderID)
		assert.Equal(t, f.parent.ID, history[0].ReceiverID)
	})
}

func TestRepay_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("still requested", func(t *testing.T) {
		created := f.request(t, "100.00")
		err := f.loans.Repay(ctx, f.child, created.ID)
		assert.ErrorIs(t, err, loandomain.ErrLoanNotActive)
	})

	t.Run("not the borrower", func(t *testing.T) {
		created := f.request(t, "100.00")
		_, err := f.loans.Approve(ctx, f.parent, created.ID, decimal.Zero, time.Now().AddDate(0, 1, 0))
		require.NoError(t, err)
		err = f.loans.Repay(ctx, f.parent, created.ID)
		assert.ErrorIs(t, err, loandomain.ErrNotYourLoan)
	})

	t.Run("insufficient funds leaves loan active", func(t *testing.T) {
		created := f.request(t, "100.00")
		_, err := f.loans.Approve(ctx, f.parent, created.ID, decimal.RequireFromString("50.00"), time.Now().AddDate(0, 1, 0))
		require.NoError(t, err)

		users, err := f.uow.UserRepository()
		require.NoError(t, err)
		broke := decimal.RequireFromString("1.00")
		require.NoError(t, users.Update(ctx, f.child.ID, &dto.UserUpdate{Balance: &broke}))

		err = f.loans.Repay(ctx, f.child, created.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		loans, err := f.loans.List(ctx, f.child)
		require.NoError(t, err)
		var status string
		for _, l := range loans {
			if l.ID == created.ID {
				status = l.Status
			}
		}
		assert.Equal(t, string(loandomain.StatusActive), status)
	})
}

func TestReject(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created := f.request(t, "100.00")

	require.NoError(t, f.loans.Reject(ctx, f.parent, created.ID))

	loans, err := f.loans.List(ctx, f.child)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, string(loandomain.StatusRejected), loans[0].Status)

	// Terminal: no approval afterwards, no balance movement ever.
	_, err = f.loans.Approve(ctx, f.parent, created.ID, decimal.Zero, time.Now().AddDate(0, 1, 0))
	assert.ErrorIs(t, err, loandomain.ErrLoanNotRequested)
	assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("10000.00")))
}

func TestList_ParentSeesFamilyLoans(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.request(t, "100.00")
	f.request(t, "200.00")

	parentView, err := f.loans.List(ctx, f.parent)
	require.NoError(t, err)
	assert.Len(t, parentView, 2)

	childView, err := f.loans.List(ctx, f.child)
	require.NoError(t, err)
	assert.Len(t, childView, 2)
}
