// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/rkeene-labs/smsmasque"
	"github.com/rkeene-labs/smsmasque/internal/logger"
	"github.com/rkeene-labs/smsmasque/ms/gateway"
	"github.com/rkeene-labs/smsmasque/plaintext"
)

var (
	logLevel    string
	maxPages    int
	multiplier  int
	policyFlag  string
	usePlain    bool
	simulate    bool
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:     "smsmasque [message]",
	Short:   "Masquerade unicode text as gateway-safe UCS-2",
	Long:    "smsmasque re-encodes unicode text so it survives a strict UTF-8 gateway on its way to a UCS-2 handset, masquerading unencodable graphemes as valid standalone UTF-16 code units and paginating the result the way the gateway does.",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
	RunE: runRoot,
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 5, "maximum number of pages the planner may emit")
	rootCmd.Flags().IntVar(&multiplier, "truncation-multiplier", 1, "loss weight applied to each truncated grapheme")
	rootCmd.Flags().StringVar(&policyFlag, "policy", "replace", "unsupported-codepoint policy: replace, ignore, error, pass")
	rootCmd.Flags().BoolVar(&usePlain, "plaintext", false, "transliterate to ASCII instead of masquerading")
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, "round-trip the result through the reference gateway and phone model")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "dump the masqueraded message's codepoints")
}

func runRoot(cmd *cobra.Command, args []string) error {
	text, err := readMessage(args)
	if err != nil {
		return err
	}

	if usePlain {
		out := plaintext.Coerce(text)
		fmt.Println(out)
		return nil
	}

	policy, err := smsmasque.ParsePolicy(policyFlag)
	if err != nil {
		return err
	}

	msg, err := smsmasque.Coerce(text,
		smsmasque.WithMaxPages(maxPages),
		smsmasque.WithTruncatedTextErrorMultiplier(multiplier),
		smsmasque.WithPolicy(policy),
	)
	if err != nil {
		logger.Log().Error("coercion failed", "error", err)
		return err
	}

	if debug {
		logger.Log().Debug("masqueraded message", "runes", len([]rune(msg)))
		spew.Fdump(os.Stderr, []rune(msg))
	}

	fmt.Println(msg)

	if simulate {
		pages, err := gateway.Deliver(url.QueryEscape(msg))
		if err != nil {
			logger.Log().Error("gateway rejected message", "error", err)
			return err
		}
		logger.Log().Info("gateway accepted message", "pages", len(pages))
		fmt.Println(gateway.Render(pages))
	}
	return nil
}

func readMessage(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
