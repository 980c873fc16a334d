package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/repository"
)

type seedUser struct {
	username string
	password string
	fullName string
	role     models.UserRole
}

var seedUsers = []seedUser{
	{username: "admin", password: "admin", fullName: "Administrator", role: models.RoleAdmin},
	{username: "editor", password: "editor", fullName: "Editor", role: models.RoleEditor},
}

var seedRoles = []models.Role{
	{Name: "Admin", Description: "Manages categories, posts and roles"},
	{Name: "Editor", Description: "Manages posts"},
	{Name: "Mocked", Description: "Placeholder role for demos"},
}

const seedCategory = "General"

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo users, roles and a starter category",
		Long: "Seed upserts the admin/admin and editor/editor accounts, ensures the Admin, Editor " +
			"and Mocked roles exist and adds a starter category when the table is empty. " +
			"It is safe to run repeatedly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := seed(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
			return nil
		},
	}
}

func seed(ctx context.Context, e *env) error {
	users := repository.NewUserRepository(e.db)
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		if err := users.Upsert(ctx, &models.User{
			Username:     u.username,
			PasswordHash: string(hash),
			FullName:     u.fullName,
			Role:         u.role,
			Active:       true,
		}); err != nil {
			return err
		}
		e.logger.Sugar().Infow("seeded user", "username", u.username, "role", u.role)
	}

	roles := repository.NewRoleRepository(e.db)
	for _, r := range seedRoles {
		if err := roles.EnsureByName(ctx, r.Name, r.Description); err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}

	categories := repository.NewCategoryRepository(e.db)
	_, total, err := categories.List(ctx, models.ListQuery{End: 1})
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if total == 0 {
		if err := categories.Create(ctx, &models.Category{Title: seedCategory}); err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		e.logger.Sugar().Infow("seeded category", "title", seedCategory)
	}
	return nil
}
