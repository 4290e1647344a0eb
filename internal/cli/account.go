package cli

import (
	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage registered player accounts",
	}

	cmd.AddCommand(newAccountRegisterCmd())
	cmd.AddCommand(newAccountVerifyCmd())

	return cmd
}

func newAccountRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a name so joining with it requires the password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.RegisterAccount(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newAccountVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <username> <password>",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.VerifyAccount(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
