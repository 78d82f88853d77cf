package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leonardotrapani/whisptube/internal/models/whisper"
)

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage local whisper.cpp models",
	}

	cmd.AddCommand(modelListCmd())
	cmd.AddCommand(modelDownloadCmd())
	cmd.AddCommand(modelRemoveCmd())

	return cmd
}

func modelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List whisper models and their install state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelList(cmd.OutOrStdout())
		},
	}
}

func runModelList(w io.Writer) error {
	dir, err := whisper.GetModelsDir()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, name := range whisper.Names() {
		info := whisper.GetModel(name)
		if info == nil {
			continue
		}
		id := name
		if canonical := whisper.Canonical(name); canonical != name {
			id = fmt.Sprintf("%s (= %s)", name, canonical)
		}
		languages := "multilingual"
		if !info.Multilingual {
			languages = "english"
		}
		state := "-"
		if whisper.IsInstalled(name) {
			state = "installed"
		}
		rows = append(rows, []string{id, humanize.Bytes(uint64(info.SizeBytes)), languages, state})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"Model", "Size", "Languages", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	fmt.Fprintf(w, "Models directory: %s\n", dir)
	return nil
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-name>",
		Short: "Download a whisper.cpp model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelDownload(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func runModelDownload(ctx context.Context, w io.Writer, modelName string) error {
	info := whisper.GetModel(modelName)
	if info == nil {
		return fmt.Errorf("unknown model: %s", modelName)
	}

	if whisper.IsInstalled(modelName) {
		fmt.Fprintf(w, "model '%s' is already installed at %s\n", modelName, whisper.GetModelPath(modelName))
		return nil
	}

	fmt.Fprintf(w, "downloading %s (%s)...\n", info.ID, humanize.Bytes(uint64(info.SizeBytes)))

	err := whisper.Download(ctx, modelName, newDownloadProgress(w, info.ID))
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Fprintf(w, "download complete: %s\n", whisper.GetModelPath(modelName))
	return nil
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model-name>",
		Short: "Remove a downloaded whisper.cpp model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelRemove(cmd.OutOrStdout(), args[0])
		},
	}
}

func runModelRemove(w io.Writer, modelName string) error {
	if whisper.GetModel(modelName) == nil {
		return fmt.Errorf("unknown model: %s", modelName)
	}

	if !whisper.IsInstalled(modelName) {
		return fmt.Errorf("model '%s' is not installed", modelName)
	}

	if err := whisper.Remove(modelName); err != nil {
		return fmt.Errorf("failed to remove model: %w", err)
	}

	fmt.Fprintf(w, "model '%s' removed successfully\n", modelName)
	return nil
}
