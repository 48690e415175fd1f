package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparkslearn/console/internal/api/handler/v1/request"
	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/repository"
	"github.com/sparkslearn/console/internal/repository/dao"
	"github.com/sparkslearn/console/internal/service"
)

// operatorPasswordEnv lets scripts pass the password without leaving it in shell history.
const operatorPasswordEnv = "SPARKS_OPERATOR_PASSWORD"

func newOperatorCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage console operator accounts",
	}

	cmd.AddCommand(newOperatorCreateCmd(root))

	return cmd
}

func newOperatorCreateCmd(root *rootOptions) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a console operator without opening public signup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(operatorPasswordEnv)
			}

			operator, err := newOperator(email, name, password)
			if err != nil {
				return err
			}

			gdb, err := bootstrap.OpenDB(root.conf)
			if err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}

			svc := service.NewAuthService(repository.NewOperatorRepository(dao.NewOperatorDAO(gdb)))
			created, err := svc.Signup(cmd.Context(), operator)
			if err != nil {
				return fmt.Errorf("svc.Signup -> %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "operator %d created for %s\n", created.ID, created.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Operator email")
	cmd.Flags().StringVar(&name, "name", "", "Operator display name")
	cmd.Flags().StringVar(&password, "password", "", "Operator password (defaults to $"+operatorPasswordEnv+")")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newOperator applies the same rules as the signup endpoint.
func newOperator(email, name, password string) (domain.Operator, error) {
	req := request.SignupRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		Name:            name,
	}
	if err := req.Validate(); err != nil {
		return domain.Operator{}, fmt.Errorf("invalid operator -> %w", err)
	}

	return domain.Operator{Email: email, Name: name, Password: password}, nil
}
