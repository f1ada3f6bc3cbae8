package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kidzplay/internal/config"
	"kidzplay/internal/services"
	"kidzplay/internal/validate"
)

func tokenCmd() *cobra.Command {
	var (
		email  string
		fields map[string]string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed identity token for calling gated endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.TokenSecret == "" {
				return errors.New("ACCESS_TOKEN_SECRET is required")
			}
			payload := map[string]any{}
			for k, v := range fields {
				payload[k] = v
			}
			if email != "" {
				addr, ok := validate.Email(email)
				if !ok {
					return fmt.Errorf("not an email address: %q", email)
				}
				payload["email"] = addr
			}
			tok, err := services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL).Issue(payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "identity email")
	cmd.Flags().StringToStringVar(&fields, "field", nil, "extra payload fields (key=value)")
	return cmd
}
