package main

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/spec-kit/employee-service/internal/seed"
	"github.com/spec-kit/employee-service/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "operator account management",
}

var userInput service.CreateUserInput
var generatePassword bool

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create an operator account that can log in to the API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if userInput.Email == "" {
			return errors.New("--email is required")
		}
		if userInput.Name == "" {
			userInput.Name = strings.Split(userInput.Email, "@")[0]
		}

		switch {
		case generatePassword:
			pw, err := seed.GeneratePassword()
			if err != nil {
				return err
			}
			userInput.Password = pw
		case userInput.Password == "":
			pw, err := promptPassword()
			if err != nil {
				return err
			}
			userInput.Password = pw
		}

		c, cleanup, err := openContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := c.Auth.CreateUser(cmd.Context(), userInput)
		if err != nil {
			return err
		}
		cmd.Printf("created user %d <%s>\n", user.ID, user.Email)
		if generatePassword {
			cmd.Printf("password: %s\n", userInput.Password)
		}
		return nil
	},
}

func promptPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < 8 {
				return errors.New("at least 8 characters")
			}
			return nil
		},
	}
	pw, err := prompt.Run()
	if err != nil {
		return "", err
	}

	confirm := promptui.Prompt{Label: "Confirm password", Mask: '*'}
	again, err := confirm.Run()
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

func init() {
	userCreateCmd.Flags().StringVar(&userInput.Name, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userInput.Email, "email", "", "login email")
	userCreateCmd.Flags().StringVar(&userInput.Password, "password", "", "password; prompted when empty")
	userCreateCmd.Flags().BoolVar(&generatePassword, "generate", false, "generate a random password and print it")
	userCmd.AddCommand(userCreateCmd)
}
