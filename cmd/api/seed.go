package main

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/employee-service/internal/seed"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "load the admin account and demo departments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, cleanup, err := openContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		seeder := &seed.Seeder{
			Auth:        c.Auth,
			Departments: c.Departments,
			Employees:   c.Employees,
			Users:       c.Repos.Users,
			DeptRepo:    c.Repos.Departments,
			Logger:      c.Logger,
		}
		result, err := seeder.Run(cmd.Context(), seedOpts)
		if err != nil {
			return err
		}

		if result.AdminCreated {
			cmd.Printf("admin account: %s / %s\n", result.AdminEmail, result.AdminPassword)
		} else {
			cmd.Println("admin account already exists")
		}
		cmd.Printf("departments created: %d, employees created: %d\n", len(result.DepartmentsCreated), result.EmployeesCreated)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOpts.AdminEmail, "admin-email", seed.DefaultAdminEmail, "admin login email")
	seedCmd.Flags().StringVar(&seedOpts.AdminPassword, "admin-password", "", "admin password; generated when empty")
	seedCmd.Flags().IntVar(&seedOpts.EmployeesPerDepartment, "per-department", 5, "employees created in each department")
}

