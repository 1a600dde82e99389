package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contractgen/pkg/remote"
	"github.com/goliatone/go-contractgen/pkg/rendering"
)

var nextNumberCmd = &cobra.Command{
	Use:   "next-number",
	Short: "Print the number the next contract will receive",
	Args:  cobra.NoArgs,
	RunE:  runNextNumber,
}

var uploadTemplateCmd = &cobra.Command{
	Use:   "upload-template [template.docx]",
	Short: "Replace the renderer's DOCX template",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadTemplate,
}

func runNextNumber(cmd *cobra.Command, args []string) error {
	stack, err := newStack()
	if err != nil {
		return err
	}
	number, err := stack.Numbers.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("next number: %s", remote.Message(err, "сервис недоступен"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), number)
	return nil
}

func runUploadTemplate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !rendering.IsTemplateFile(filepath.Base(path), "") {
		return fmt.Errorf("upload-template: expected %s, got %s", rendering.TemplateFileName, filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stack, err := newStack()
	if err != nil {
		return err
	}
	resp, err := stack.Renderer.UploadTemplate(cmd.Context(), rendering.TemplateFileName, f)
	if err != nil {
		return fmt.Errorf("upload: %s", remote.Message(err, "Ошибка загрузки"))
	}
	msg := resp.Message
	if msg == "" {
		msg = "Шаблон загружен"
	}
	if resp.FileSize > 0 {
		msg = fmt.Sprintf("%s (%d байт)", msg, resp.FileSize)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
