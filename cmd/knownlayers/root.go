package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"mapportal/internal/catalog/cache"
	"mapportal/internal/catalog/store/memory"
	"mapportal/internal/knownlayer"
	"mapportal/internal/knownlayer/handler"
	"mapportal/internal/knownlayer/registry"
	"mapportal/internal/knownlayer/service"
)

type options struct {
	layersFile  string
	recordsFile string
	kind        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "knownlayers",
		Short: "Inspect known layer configuration offline",
		Long: `Inspect known layer configuration against a catalog export without
running the portal.

Examples:
  # Group an exported catalog against the configured layers
  knownlayers group --layers config/layers.yaml --records config/records.json

  # Only the vocabulary layers
  knownlayers group --records config/records.json --kind vocabulary

  # List configured layers
  knownlayers layers --layers config/layers.yaml`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.layersFile, "layers", "config/layers.yaml", "Known layer YAML file")

	group := &cobra.Command{
		Use:   "group",
		Short: "Group catalog records by known layer and print JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGroup(cmd, opts)
		},
	}
	group.Flags().StringVarP(&opts.recordsFile, "records", "r", "", "JSON array of catalog records")
	group.Flags().StringVarP(&opts.kind, "kind", "k", "", "Restrict grouping to layers of this kind")
	_ = group.MarkFlagRequired("records")

	layers := &cobra.Command{
		Use:   "layers",
		Short: "List configured known layers as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadFile(opts.layersFile)
			if err != nil {
				return err
			}
			out := make([]handler.LayerResponse, 0, reg.Len())
			for _, l := range reg.Layers() {
				out = append(out, handler.NewLayerResponse(l))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	root.AddCommand(group, layers)
	return root
}

func runGroup(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	reg, err := registry.LoadFile(opts.layersFile)
	if err != nil {
		return err
	}

	store := memory.New("file")
	if err := store.LoadJSONFile(ctx, opts.recordsFile); err != nil {
		return err
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	records, err := cache.New([]cache.Source{store}, cache.WithLogger(quiet))
	if err != nil {
		return err
	}
	if err := records.Refresh(ctx); err != nil {
		return err
	}

	svc, err := service.New(records, reg, service.WithLogger(quiet))
	if err != nil {
		return err
	}

	var grouping *knownlayer.Grouping
	if cmd.Flags().Changed("kind") {
		grouping, err = svc.GroupKnownLayerRecordsOfKind(ctx, kindFlag(opts.kind))
	} else {
		grouping, err = svc.GroupKnownLayerRecords(ctx)
	}
	if err != nil {
		return fmt.Errorf("group records: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), handler.NewGroupingResponse(grouping))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// kindFlag normalizes --kind; a blank value stays blank and is rejected.
func kindFlag(raw string) knownlayer.Kind {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return knownlayer.ParseKind(raw)
}
