package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/upload"
)

var (
	uploadStore    bool
	uploadFilename string
	uploadFromURL  string
)

var uploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Upload a file directly or from a public URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newUploadClient()
		if err != nil {
			return err
		}
		svc := upload.NewService(client)

		toStore := upload.ToStoreFalse
		if uploadStore {
			toStore = upload.ToStoreTrue
		}

		if uploadFromURL != "" {
			data, err := svc.FromURL(cmd.Context(), upload.FromURLParams{
				SourceURL: uploadFromURL,
				ToStore:   toStore,
				Filename:  uploadFilename,
			})
			if err != nil {
				return err
			}
			return printJSON(data)
		}

		if len(args) == 0 {
			return errors.New("either a path or --from-url is required")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "open file")
		}
		defer f.Close()

		name := uploadFilename
		if name == "" {
			name = filepath.Base(args[0])
		}

		result, err := svc.File(cmd.Context(), upload.FileParams{
			Name:    name,
			Data:    f,
			ToStore: toStore,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadStore, "store", false, "store the file after upload")
	uploadCmd.Flags().StringVar(&uploadFilename, "filename", "", "override the uploaded file name")
	uploadCmd.Flags().StringVar(&uploadFromURL, "from-url", "", "upload from a public URL instead of a local path")
	rootCmd.AddCommand(uploadCmd)
}
