package main

import (
	"errors"
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/config"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func createUserCmd() *cobra.Command {
	var email, name string
	var admin bool

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}

			user := entity.User{Email: email, Name: name}
			if admin {
				user.Role = entity.RoleAdmin
			}
			if err := db.WithContext(cmd.Context()).Create(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("a user with email %s already exists", email)
				}
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Println(user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	return cmd
}

// issueTokenCmd prints a bearer token for an existing user. Session issuance
// proper is handled by the identity provider in front of the API.
func issueTokenCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "issue-token [user-id]",
		Short: "Print a bearer token for a user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}

			var user entity.User
			query := db.WithContext(cmd.Context())
			switch {
			case len(args) == 1:
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid user id: %w", err)
				}
				err = query.First(&user, "id = ?", id).Error
				if err != nil {
					return fmt.Errorf("failed to find user: %w", err)
				}
			case email != "":
				if err := query.First(&user, "email = ?", email).Error; err != nil {
					return fmt.Errorf("failed to find user: %w", err)
				}
			default:
				return errors.New("pass a user id or --email")
			}

			token, err := utils.GenerateJWT([]byte(cfg.JWTSecret), user.ID.String())
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "look the user up by email")
	return cmd
}
