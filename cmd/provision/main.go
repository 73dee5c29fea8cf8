// Command provision creates officer and admin accounts. Public registration
// only ever yields citizens, so privileged accounts come from here.
package main

import (
	"fmt"
	"os"

	"ecoreport/internal/adapters/persistence/models"
	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/config"
	"ecoreport/internal/core/domain"

	"github.com/spf13/cobra"
)

var (
	accountEmail    string
	accountPassword string
	accountName     string
	accountPhone    string
)

var rootCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision privileged EcoReport accounts",
	Long: `Provision officer and admin accounts directly in the database.

Running the same command twice is safe: an existing email is reported and
left untouched.`,
	SilenceUsage: true,
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return provision(cmd, domain.RoleAdmin)
	},
}

var officerCmd = &cobra.Command{
	Use:   "officer",
	Short: "Create an officer account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return provision(cmd, domain.RoleOfficer)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&accountEmail, "email", "", "Account email")
	rootCmd.PersistentFlags().StringVar(&accountPassword, "password", "", "Account password (min 8 characters)")
	rootCmd.PersistentFlags().StringVar(&accountName, "name", "", "Display name")
	rootCmd.PersistentFlags().StringVar(&accountPhone, "phone", "", "Contact phone")
	_ = rootCmd.MarkPersistentFlagRequired("email")
	_ = rootCmd.MarkPersistentFlagRequired("password")

	rootCmd.AddCommand(adminCmd, officerCmd)
}

func provision(cmd *cobra.Command, role domain.Role) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		return err
	}

	name := accountName
	if name == "" {
		name = string(role)
	}
	phone := accountPhone
	if phone == "" {
		phone = "-"
	}

	seeder := config.NewSeeder(repositories.NewUserRepository(db))
	created, err := seeder.ProvisionAccount(cmd.Context(), config.AccountInput{
		Name:     name,
		Email:    accountEmail,
		Phone:    phone,
		Password: accountPassword,
		Role:     role,
	})
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s\n", role, accountEmail)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "account %s already exists\n", accountEmail)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
