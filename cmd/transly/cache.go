package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/cache"
)

func (a *app) createCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the translation cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached translations, least recently used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := cache.SnapshotFor(a.v.GetString("cache.file"))
			entries, found, err := snap.Load(cmd.Context())
			if err != nil {
				return err
			}
			if !found || len(entries) == 0 {
				fmt.Fprintf(a.stdout, "No cached translations in %s\n", snap.Location())
				return nil
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SOURCE\tTARGET\tTEXT\tTRANSLATION")
			for _, e := range entries {
				text, src, tgt, err := transly.ParseCacheKey(e.Key)
				if err != nil {
					// Entries written by other versions keep their raw key.
					text, src, tgt = e.Key, "?", "?"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", src, tgt, text, e.Value)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "\n%d entries in %s\n", len(entries), snap.Location())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the translation cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := cache.SnapshotFor(a.v.GetString("cache.file"))
			if err := snap.Remove(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Cleared %s\n", snap.Location())
			return nil
		},
	})

	return cmd
}
