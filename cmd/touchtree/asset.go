package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/phanxgames/touchtree/medialib"
	"github.com/phanxgames/touchtree/medialib/sqlite"
	"github.com/spf13/cobra"
)

func newAssetCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Look up and store media asset metadata",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default $TOUCHTREE_MEDIA_DB)")

	openStore := func() (*sqlite.Store, error) {
		path := dbPath
		if path == "" {
			path = a.cfg.MediaDB
		}
		return sqlite.Open(path)
	}

	var full bool
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one asset's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fetcher := medialib.NewFetcher(store,
				medialib.WithLogger(a.logger),
				medialib.WithFullInfo(full),
				medialib.WithTimeout(a.cfg.FetchTimeout),
			)
			defer fetcher.Close()

			info, err := fetcher.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	getCmd.Flags().BoolVar(&full, "full", false, "Include local uri, location and exif")

	putCmd := &cobra.Command{
		Use:   "put <assets.json>",
		Short: "Store asset records from a JSON object or array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read assets: %w", err)
			}
			assets, err := decodeAssets(data)
			if err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			for _, info := range assets {
				if err := store.PutAsset(cmd.Context(), info); err != nil {
					return fmt.Errorf("asset %q: %w", info.ID, err)
				}
			}
			a.logger.Info("stored assets", "count", len(assets))
			return nil
		},
	}

	cmd.AddCommand(getCmd, putCmd)
	return cmd
}

// decodeAssets accepts either a single AssetInfo object or an array of them.
func decodeAssets(data []byte) ([]medialib.AssetInfo, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var assets []medialib.AssetInfo
		if err := json.Unmarshal(trimmed, &assets); err != nil {
			return nil, fmt.Errorf("decode assets: %w", err)
		}
		return assets, nil
	}
	var info medialib.AssetInfo
	if err := json.Unmarshal(trimmed, &info); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	return []medialib.AssetInfo{info}, nil
}
