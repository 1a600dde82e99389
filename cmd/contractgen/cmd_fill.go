package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contractgen/pkg/prompt"
)

var maxRounds int

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the form interactively and generate the contract",
	RunE:  runFill,
}

func runFill(cmd *cobra.Command, args []string) error {
	stack, err := newStack()
	if err != nil {
		return err
	}
	if err := prefill(stack.Controller); err != nil {
		return err
	}

	session := prompt.NewSession(stack.Controller,
		prompt.WithPromptDriver(prompt.NewSurveyDriver(cmd.OutOrStdout())),
		prompt.WithMaxRounds(maxRounds),
		prompt.WithLogger(logger),
	)
	outcome, err := session.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
	return nil
}
