package task_test

import (
	"context"
	"log/slog"
	"testing"

	infrarepo "github.com/amirasaad/balabank/infra/repository"
	"github.com/amirasaad/balabank/pkg/domain"
	taskdomain "github.com/amirasaad/balabank/pkg/domain/task"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	familysvc "github.com/amirasaad/balabank/pkg/service/family"
	tasksvc "github.com/amirasaad/balabank/pkg/service/task"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/amirasaad/balabank/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tasks  *tasksvc.Service
	users  *usersvc.Service
	parent *dto.UserRead
	child  *dto.UserRead
	uow    *infrarepo.UoW
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
		tasks:  tasksvc.New(uow, logger),
		users:  usersvc.New(uow, logger),
		parent: parent,
		child:  child,
		uow:    uow,
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

func (f *fixture) refresh(t *testing.T, u *dto.UserRead) *dto.UserRead {
	t.Helper()
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	fresh, err := users.Get(context.Background(), u.ID)
	require.NoError(t, err)
	return fresh
}

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Dishes",
		Reward:  decimal.RequireFromString("50.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(taskdomain.StatusNew), created.Status)
	assert.Equal(t, f.child.ID, created.ChildID)
	assert.Equal(t, f.parent.ID, created.CreatorID)
}

func TestCreate_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("child cannot create", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, f.child, tasksvc.CreateInput{
			Title:   "Dishes",
			Reward:  decimal.RequireFromString("50.00"),
			ChildID: f.child.ID,
		})
		assert.ErrorIs(t, err, userdomain.ErrNotAParent)
	})

	t.Run("assignee must be a child of the family", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
			Title:   "Dishes",
			Reward:  decimal.RequireFromString("50.00"),
			ChildID: f.parent.ID,
		})
		assert.Error(t, err)
	})
}

func TestApprove_PaysReward(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Dishes",
		Reward:  decimal.RequireFromString("50.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.tasks.Submit(ctx, f.child, created.ID))
	require.NoError(t, f.tasks.Approve(ctx, f.parent, created.ID))

	assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("9950.00")))
	assert.True(t, f.balance(t, f.child).Equal(decimal.RequireFromString("50.00")))

	history, err := f.users.Transactions(ctx, f.child)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Payment for task: Dishes", history[0].Description)
	assert.Equal(t, f.parent.ID, history[0].SenderID)
	assert.Equal(t, f.child.ID, history[0].ReceiverID)
}

func TestApprove_TwiceIsSinglePayout(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Dishes",
		Reward:  decimal.RequireFromString("50.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.tasks.Submit(ctx, f.child, created.ID))
	require.NoError(t, f.tasks.Approve(ctx, f.parent, created.ID))

	err = f.tasks.Approve(ctx, f.parent, created.ID)
	assert.ErrorIs(t, err, taskdomain.ErrTaskAlreadyDone)

	assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("9950.00")))
	assert.True(t, f.balance(t, f.child).Equal(decimal.RequireFromString("50.00")))
}

func TestApprove_InsufficientFunds(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Big job",
		Reward:  decimal.RequireFromString("99999.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.tasks.Submit(ctx, f.child, created.ID))

	err = f.tasks.Approve(ctx, f.parent, created.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Nothing moved, status untouched.
	assert.True(t, f.balance(t, f.parent).Equal(decimal.RequireFromString("10000.00")))
	assert.True(t, f.balance(t, f.child).IsZero())
	tasks, err := f.tasks.List(ctx, f.refresh(t, f.child))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, string(taskdomain.StatusWaitingApproval), tasks[0].Status)
}

func TestSubmit_OnlyAssignedChild(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Dishes",
		Reward:  decimal.RequireFromString("50.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)

	err = f.tasks.Submit(ctx, f.parent, created.ID)
	assert.ErrorIs(t, err, taskdomain.ErrNotYourTask)
}

func TestReject_ResetsForResubmission(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Dishes",
		Reward:  decimal.RequireFromString("50.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.tasks.Submit(ctx, f.child, created.ID))
	require.NoError(t, f.tasks.Reject(ctx, f.parent, created.ID))

	tasks, err := f.tasks.List(ctx, f.refresh(t, f.child))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, string(taskdomain.StatusNew), tasks[0].Status)

	// No payout happened.
	assert.True(t, f.balance(t, f.child).IsZero())

	// The child can go again.
	require.NoError(t, f.tasks.Submit(ctx, f.child, created.ID))
	require.NoError(t, f.tasks.Approve(ctx, f.parent, created.ID))
	assert.True(t, f.balance(t, f.child).Equal(decimal.RequireFromString("50.00")))
}

func TestList_SplitsByRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.tasks.Create(ctx, f.parent, tasksvc.CreateInput{
		Title:   "Dishes",
		Reward:  decimal.RequireFromString("50.00"),
		ChildID: f.child.ID,
	})
	require.NoError(t, err)

	parentView, err := f.tasks.List(ctx, f.refresh(t, f.parent))
	require.NoError(t, err)
	assert.Len(t, parentView, 1)

	childView, err := f.tasks.List(ctx, f.refresh(t, f.child))
	require.NoError(t, err)
	assert.Len(t, childView, 1)
}
