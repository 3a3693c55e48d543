// Command seed populates the database with two demo families for local
// development: a parent and a child in each, password "123456" everywhere.
package main

import (
	"context"
	"fmt"

	"github.com/amirasaad/balabank/infra/initializer"
	"github.com/amirasaad/balabank/pkg/config"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/repository"
	"github.com/amirasaad/balabank/pkg/utils"
	log "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const demoPassword = "123456"

type member struct {
	phone      string
	surname    string
	name       string
	patronymic string
	age        int
	role       userdomain.Role
	balance    string
}

type demoFamily struct {
	name       string
	inviteCode string
	members    []member
}

var families = []demoFamily{
	{
		name:       "The Starks",
		inviteCode: "winter",
		members: []member{
			{"+996555111111", "Stark", "Ned", "Rickardovich", 45, userdomain.RoleParent, "10000.00"},
			{"+996555222222", "Stark", "Arya", "Nedovna", 14, userdomain.RoleChild, "0.00"},
		},
	},
	{
		name:       "The Lannisters",
		inviteCode: "goldie",
		members: []member{
			{"+996777888888", "Lannister", "Tywin", "Tytosovich", 60, userdomain.RoleParent, "10000.00"},
			{"+996777999999", "Lannister", "Tyrion", "Tywinovich", 16, userdomain.RoleChild, "500.00"},
		},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	hashed, err := utils.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	ctx := context.Background()
	err = deps.Uow.Do(ctx, func(uow repository.UnitOfWork) error {
		familyRepo, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		for _, fam := range families {
			familyID := uuid.New()
			if err := familyRepo.Create(ctx, &dto.FamilyCreate{
				ID:         familyID,
				Name:       fam.name,
				InviteCode: fam.inviteCode,
			}); err != nil {
				return fmt.Errorf("seed family %q: %w", fam.name, err)
			}
			logger.Info("family created", "name", fam.name, "inviteCode", fam.inviteCode)
			for _, m := range fam.members {
				balance, err := decimal.NewFromString(m.balance)
				if err != nil {
					return err
				}
				if err := userRepo.Create(ctx, &dto.UserCreate{
					ID:          uuid.New(),
					PhoneNumber: m.phone,
					Password:    hashed,
					Surname:     m.surname,
					Name:        m.name,
					Patronymic:  m.patronymic,
					Age:         m.age,
					Role:        string(m.role),
					FamilyID:    &familyID,
					Balance:     balance,
				}); err != nil {
					return fmt.Errorf("seed user %s: %w", m.phone, err)
				}
				logger.Info("user created", "phone", m.phone, "role", m.role)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("seed complete", "password", demoPassword)
	return nil
}
