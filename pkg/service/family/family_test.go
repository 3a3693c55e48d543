package family_test

import (
	"context"
	"log/slog"
	"testing"

	infrarepo "github.com/amirasaad/balabank/infra/repository"
	familydomain "github.com/amirasaad/balabank/pkg/domain/family"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	familysvc "github.com/amirasaad/balabank/pkg/service/family"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/amirasaad/balabank/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	families *familysvc.Service
	users    *usersvc.Service
	uow      *infrarepo.UoW
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutils.NewTestDB(t)
	uow := infrarepo.NewUoW(db)
	logger := slog.New(slog.DiscardHandler)
	cfg := testutils.NewTestConfig()
	return &fixture{
		families: familysvc.New(uow, cfg.Bank, logger),
		users:    usersvc.New(uow, logger),
		uow:      uow,
	}
}

func (f *fixture) register(t *testing.T, phone string, age int) *dto.UserRead {
	t.Helper()
	u, err := f.users.Register(context.Background(), usersvc.RegisterInput{
		PhoneNumber: phone,
		Password:    "secret123",
		Surname:     "Stark",
		Name:        "Arya",
		Age:         age,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) refresh(t *testing.T, u *dto.UserRead) *dto.UserRead {
	t.Helper()
	users, err := f.uow.UserRepository()
	require.NoError(t, err)
	fresh, err := users.Get(context.Background(), u.ID)
	require.NoError(t, err)
	return fresh
}

func TestRegisterWithFamily(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parent, fam, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111",
		Password:    "secret123",
		Surname:     "Stark",
		Name:        "Ned",
		Age:         45,
	}, "The Starks")
	require.NoError(t, err)

	assert.Equal(t, string(userdomain.RoleParent), parent.Role)
	require.NotNil(t, parent.FamilyID)
	assert.Equal(t, fam.ID, *parent.FamilyID)
	assert.True(t, parent.Balance.Equal(decimal.RequireFromString("10000.00")))
	assert.Len(t, fam.InviteCode, 6)
}

func TestRegisterWithFamily_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("under age", func(t *testing.T) {
		_, _, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
			PhoneNumber: "+996555111112",
			Password:    "secret123",
			Surname:     "Stark",
			Name:        "Arya",
			Age:         14,
		}, "Kids Only")
		assert.ErrorIs(t, err, familysvc.ErrTooYoungForParent)
	})

	t.Run("duplicate phone rolls back family too", func(t *testing.T) {
		in := usersvc.RegisterInput{
			PhoneNumber: "+996555111113",
			Password:    "secret123",
			Surname:     "Stark",
			Name:        "Ned",
			Age:         45,
		}
		_, _, err := f.families.RegisterWithFamily(ctx, in, "First")
		require.NoError(t, err)
		_, _, err = f.families.RegisterWithFamily(ctx, in, "Second")
		assert.ErrorIs(t, err, userdomain.ErrPhoneTaken)
	})
}

func TestCreate_GrantsBonusAndParentRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.register(t, "+996555111111", 30)
	assert.True(t, u.Balance.IsZero())

	fam, err := f.families.Create(ctx, u, "The Starks")
	require.NoError(t, err)

	fresh := f.refresh(t, u)
	assert.Equal(t, string(userdomain.RoleParent), fresh.Role)
	require.NotNil(t, fresh.FamilyID)
	assert.Equal(t, fam.ID, *fresh.FamilyID)
	assert.True(t, fresh.Balance.Equal(decimal.RequireFromString("10000.00")))

	t.Run("cannot create a second family", func(t *testing.T) {
		_, err := f.families.Create(ctx, fresh, "Another")
		assert.ErrorIs(t, err, familydomain.ErrAlreadyInFamily)
	})
}

func TestJoinFlow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parent, fam, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111",
		Password:    "secret123",
		Surname:     "Stark",
		Name:        "Ned",
		Age:         45,
	}, "The Starks")
	require.NoError(t, err)

	joiner := f.register(t, "+996555222222", 14)

	req, err := f.families.RequestJoin(ctx, joiner, fam.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, string(familydomain.RequestPending), req.Status)

	t.Run("duplicate pending request", func(t *testing.T) {
		_, err := f.families.RequestJoin(ctx, joiner, fam.InviteCode)
		assert.ErrorIs(t, err, familydomain.ErrDuplicateRequest)
	})

	t.Run("unknown invite code", func(t *testing.T) {
		_, err := f.families.RequestJoin(ctx, joiner, "nope00")
		assert.ErrorIs(t, err, familydomain.ErrFamilyNotFound)
	})

	t.Run("visible on both sides", func(t *testing.T) {
		mine, err := f.families.MyRequests(ctx, joiner)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "The Starks", mine[0].FamilyName)

		incoming, err := f.families.IncomingRequests(ctx, parent)
		require.NoError(t, err)
		require.Len(t, incoming, 1)
		assert.Equal(t, joiner.ID, incoming[0].UserID)
	})

	require.NoError(t, f.families.Approve(ctx, parent, req.ID, userdomain.RoleChild))

	fresh := f.refresh(t, joiner)
	assert.Equal(t, string(userdomain.RoleChild), fresh.Role)
	require.NotNil(t, fresh.FamilyID)
	assert.Equal(t, fam.ID, *fresh.FamilyID)
	assert.True(t, fresh.Balance.IsZero(), "children get no signup bonus")

	t.Run("approve twice", func(t *testing.T) {
		err := f.families.Approve(ctx, parent, req.ID, userdomain.RoleChild)
		assert.ErrorIs(t, err, familydomain.ErrRequestNotPending)
	})
}

func TestApprove_IntoParentRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parent, fam, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111",
		Password:    "secret123",
		Surname:     "Stark",
		Name:        "Ned",
		Age:         45,
	}, "The Starks")
	require.NoError(t, err)

	t.Run("adult gets bonus", func(t *testing.T) {
		adult := f.register(t, "+996555222222", 40)
		req, err := f.families.RequestJoin(ctx, adult, fam.InviteCode)
		require.NoError(t, err)
		require.NoError(t, f.families.Approve(ctx, parent, req.ID, userdomain.RoleParent))

		fresh := f.refresh(t, adult)
		assert.Equal(t, string(userdomain.RoleParent), fresh.Role)
		assert.True(t, fresh.Balance.Equal(decimal.RequireFromString("10000.00")))
	})

	t.Run("minor cannot become parent", func(t *testing.T) {
		minor := f.register(t, "+996555333333", 14)
		req, err := f.families.RequestJoin(ctx, minor, fam.InviteCode)
		require.NoError(t, err)
		err = f.families.Approve(ctx, parent, req.ID, userdomain.RoleParent)
		assert.ErrorIs(t, err, familysvc.ErrTooYoungForParent)

		// Rolled back: still pending, still familyless.
		fresh := f.refresh(t, minor)
		assert.Nil(t, fresh.FamilyID)
		mine, err := f.families.MyRequests(ctx, minor)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, string(familydomain.RequestPending), mine[0].Status)
	})
}

func TestApprove_OtherFamilyRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, famA, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111", Password: "secret123",
		Surname: "Stark", Name: "Ned", Age: 45,
	}, "The Starks")
	require.NoError(t, err)

	parentB, _, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996777888888", Password: "secret123",
		Surname: "Lannister", Name: "Tywin", Age: 60,
	}, "The Lannisters")
	require.NoError(t, err)

	joiner := f.register(t, "+996555222222", 14)
	req, err := f.families.RequestJoin(ctx, joiner, famA.InviteCode)
	require.NoError(t, err)

	err = f.families.Approve(ctx, parentB, req.ID, userdomain.RoleChild)
	assert.Error(t, err)
	err = f.families.Reject(ctx, parentB, req.ID)
	assert.Error(t, err)
}

func TestApprove_UserAlreadyInOtherFamily(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parentA, famA, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111", Password: "secret123",
		Surname: "Stark", Name: "Ned", Age: 45,
	}, "The Starks")
	require.NoError(t, err)

	parentB, famB, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996777888888", Password: "secret123",
		Surname: "Lannister", Name: "Tywin", Age: 60,
	}, "The Lannisters")
	require.NoError(t, err)

	// One user files pending requests against both families.
	joiner := f.register(t, "+996555222222", 40)
	reqA, err := f.families.RequestJoin(ctx, joiner, famA.InviteCode)
	require.NoError(t, err)
	reqB, err := f.families.RequestJoin(ctx, joiner, famB.InviteCode)
	require.NoError(t, err)

	require.NoError(t, f.families.Approve(ctx, parentA, reqA.ID, userdomain.RoleParent))

	// The second family's still-pending request must not poach the user or
	// reset their balance.
	err = f.families.Approve(ctx, parentB, reqB.ID, userdomain.RoleChild)
	assert.ErrorIs(t, err, familydomain.ErrAlreadyInFamily)

	fresh := f.refresh(t, joiner)
	require.NotNil(t, fresh.FamilyID)
	assert.Equal(t, famA.ID, *fresh.FamilyID)
	assert.Equal(t, string(userdomain.RoleParent), fresh.Role)
	assert.True(t, fresh.Balance.Equal(decimal.RequireFromString("10000.00")))
}

func TestReject(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parent, fam, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111", Password: "secret123",
		Surname: "Stark", Name: "Ned", Age: 45,
	}, "The Starks")
	require.NoError(t, err)

	joiner := f.register(t, "+996555222222", 14)
	req, err := f.families.RequestJoin(ctx, joiner, fam.InviteCode)
	require.NoError(t, err)

	require.NoError(t, f.families.Reject(ctx, parent, req.ID))

	fresh := f.refresh(t, joiner)
	assert.Nil(t, fresh.FamilyID)

	t.Run("rejected is terminal", func(t *testing.T) {
		err := f.families.Approve(ctx, parent, req.ID, userdomain.RoleChild)
		assert.ErrorIs(t, err, familydomain.ErrRequestNotPending)
	})

	t.Run("can request again after rejection", func(t *testing.T) {
		_, err := f.families.RequestJoin(ctx, joiner, fam.InviteCode)
		require.NoError(t, err)
	})
}

func TestAddChild(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parent, fam, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111", Password: "secret123",
		Surname: "Stark", Name: "Ned", Age: 45,
	}, "The Starks")
	require.NoError(t, err)

	child, err := f.families.AddChild(ctx, parent, usersvc.RegisterInput{
		PhoneNumber: "+996555222222", Password: "secret123",
		Surname: "Stark", Name: "Arya", Age: 14,
	})
	require.NoError(t, err)
	assert.Equal(t, string(userdomain.RoleChild), child.Role)
	require.NotNil(t, child.FamilyID)
	assert.Equal(t, fam.ID, *child.FamilyID)
	assert.True(t, child.Balance.IsZero())

	t.Run("child cannot add children", func(t *testing.T) {
		_, err := f.families.AddChild(ctx, child, usersvc.RegisterInput{
			PhoneNumber: "+996555333333", Password: "secret123",
			Surname: "Stark", Name: "Rickon", Age: 6,
		})
		assert.ErrorIs(t, err, userdomain.ErrNotAParent)
	})

	t.Run("members list", func(t *testing.T) {
		members, err := f.users.FamilyMembers(ctx, f.refresh(t, parent))
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})
}

func TestMyFamily(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	parent, fam, err := f.families.RegisterWithFamily(ctx, usersvc.RegisterInput{
		PhoneNumber: "+996555111111", Password: "secret123",
		Surname: "Stark", Name: "Ned", Age: 45,
	}, "The Starks")
	require.NoError(t, err)

	info, err := f.families.MyFamily(ctx, parent)
	require.NoError(t, err)
	assert.Equal(t, "The Starks", info.Name)
	assert.Equal(t, fam.InviteCode, info.InviteCode)
	assert.Equal(t, string(userdomain.RoleParent), info.Role)

	t.Run("no family", func(t *testing.T) {
		loner := f.register(t, "+996555444444", 20)
		_, err := f.families.MyFamily(ctx, loner)
		assert.ErrorIs(t, err, familydomain.ErrNoFamily)
	})
}
