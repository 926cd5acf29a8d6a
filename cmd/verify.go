// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/tdms-auth/internal/config"
	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/pkg/authentication"
)

func newVerifyCmd() *cobra.Command {
	var credentialsPath string

	c := &cobra.Command{
		Use:   "verify [token]",
		Short: "Verify a Firebase ID token and print its claims",
		Long:  `Verify a Firebase ID token with the same configuration as the server and print the decoded claims as JSON. The token is read from stdin when not passed as argument.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := new(config.EnvSpec)
			if err := envconfig.Process("", specs); err != nil {
				return fmt.Errorf("issues with environment sourcing: %w", err)
			}

			if credentialsPath != "" {
				specs.FirebaseCredentialsPath = credentialsPath
			}

			token, err := readToken(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(specs.LogLevel)
			defer logger.Sync()

			tracer := tracing.NewNoopTracer()
			monitor := monitoring.NewNoopMonitor("tdms-auth", logger)

			verifier, err := authentication.NewInitializer(authenticationConfig(specs), tracer, monitor, logger).Initialize(context.Background())
			if err != nil {
				return err
			}

			claims, err := verifier.VerifyIDToken(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("invalid token: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(claims)
		},
	}

	c.Flags().StringVar(&credentialsPath, "credentials", "", "Service account file, overrides FIREBASE_CREDENTIALS_PATH")

	return c
}

func readToken(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "Bearer "))
	if token == "" {
		return "", fmt.Errorf("no token given")
	}

	return token, nil
}

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}
