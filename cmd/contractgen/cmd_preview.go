package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/cover"
	"github.com/goliatone/go-contractgen/pkg/openapi"
	"github.com/goliatone/go-contractgen/pkg/payload"
	"github.com/goliatone/go-contractgen/pkg/registry"
	"github.com/goliatone/go-contractgen/pkg/summary"
	"github.com/goliatone/go-contractgen/pkg/validation"
)

var showPayload bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the summary and violations for a values file without submitting",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

var checkPayloadCmd = &cobra.Command{
	Use:   "check-payload [payload.json...]",
	Short: "Check renderer payloads against the embedded service contract",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheckPayload,
}

func runPreview(cmd *cobra.Command, args []string) error {
	stack, err := newStack()
	if err != nil {
		return err
	}
	ctrl := stack.Controller
	if err := prefill(ctrl); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if showPayload {
		return printPayload(cmd.Context(), out, ctrl.State(), ctrl.Variant())
	}

	text, err := summary.Render(registry.Default(), ctrl.State(), ctrl.Variant())
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)

	violations := ctrl.Validate()
	if len(violations) == 0 {
		fmt.Fprintln(out, "\nФорма готова к отправке")
		return nil
	}
	mapping := validation.MapWith(registry.Default(), violations)
	fmt.Fprintln(out)
	for _, msg := range mapping.Form {
		fmt.Fprintln(out, msg)
	}
	fields := make([]string, 0, len(mapping.Fields))
	for field := range mapping.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range mapping.Fields[field] {
			fmt.Fprintf(out, "  %s: %s\n", field, msg)
		}
	}
	return violations.Err()
}

func printPayload(ctx context.Context, out io.Writer, form contract.FormState, v contract.Variant) error {
	var encoded string
	if form.CoverImage != nil {
		var err error
		encoded, err = cover.Encode(ctx, form.CoverImage)
		if err != nil {
			return err
		}
	}
	p, err := payload.Build(form, encoded, payload.WithVariant(v))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(p)
}

func runCheckPayload(cmd *cobra.Command, args []string) error {
	doc, err := openapi.Default()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		p, err := readPayload(path)
		if err != nil {
			return err
		}
		err = doc.ValidatePayload(p)
		var rejected *openapi.PayloadError
		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: ok\n", path)
		case errors.As(err, &rejected):
			failed++
			for _, issue := range rejected.Issues {
				fmt.Fprintf(out, "%s: %s\n", path, issue)
			}
		default:
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d payloads rejected", failed, len(args))
	}
	return nil
}

func readPayload(path string) (payload.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p payload.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
