package main

import (
	"github.com/spf13/cobra"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Show account project info",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRestClient()
		if err != nil {
			return err
		}
		info, err := project.NewService(client).Info(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
}
