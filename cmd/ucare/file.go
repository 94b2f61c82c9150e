package main

import (
	"github.com/spf13/cobra"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/file"
)

var (
	listLimit    int
	listOrdering string
	listStored   bool
	listRemoved  bool
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Work with the /files/ resource",
}

var fileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project files",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := fileService()
		if err != nil {
			return err
		}

		params := file.ListParams{
			Limit:    listLimit,
			Ordering: file.Ordering(listOrdering),
		}
		if cmd.Flags().Changed("stored") {
			params.Stored = &listStored
		}
		if cmd.Flags().Changed("removed") {
			params.Removed = &listRemoved
		}

		list, err := svc.List(cmd.Context(), params)
		if err != nil {
			return err
		}
		return printJSON(list)
	},
}

var fileInfoCmd = &cobra.Command{
	Use:   "info <file-id>",
	Short: "Show file info",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := fileService()
		if err != nil {
			return err
		}
		info, err := svc.Info(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var fileStoreCmd = &cobra.Command{
	Use:   "store <file-id>...",
	Short: "Store one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := fileService()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			info, err := svc.Store(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(info)
		}
		info, err := svc.BatchStore(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var fileDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>...",
	Short: "Delete one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := fileService()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			info, err := svc.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(info)
		}
		info, err := svc.BatchDelete(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

func fileService() (*file.Service, error) {
	client, err := newRestClient()
	if err != nil {
		return nil, err
	}
	return file.NewService(client), nil
}

func init() {
	fileListCmd.Flags().IntVar(&listLimit, "limit", 100, "files per page")
	fileListCmd.Flags().StringVar(&listOrdering, "ordering", "", "ordering (datetime_uploaded, -datetime_uploaded, size, -size)")
	fileListCmd.Flags().BoolVar(&listStored, "stored", false, "only stored (or, with =false, only temporary) files")
	fileListCmd.Flags().BoolVar(&listRemoved, "removed", false, "only removed files")

	fileCmd.AddCommand(fileListCmd, fileInfoCmd, fileStoreCmd, fileDeleteCmd)
	rootCmd.AddCommand(fileCmd)
}
