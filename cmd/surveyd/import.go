package main

import (
	"fmt"
	"os"

	"facility-survey/internal/common/config"
	"facility-survey/internal/survey/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newImportCmd(cfg **config.Config) *cobra.Command {
	var building, floor, description, uploadedBy string

	cmd := &cobra.Command{
		Use:   "import-floorplan <file>",
		Short: "Upload a floor plan image and make it the active version",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			repo, err := openRepository(ctx, *cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			store, err := openStore(ctx, *cfg)
			if err != nil {
				return err
			}

			plans := service.NewFloorPlanService(repo, store, (*cfg).MaxUploadBytes)
			fp, err := plans.Upload(ctx, service.FloorPlanUpload{
				Building:    building,
				Floor:       floor,
				Description: description,
				UploadedBy:  uploadedBy,
				Data:        data,
			})
			if err != nil {
				return err
			}

			color.Green("Imported %s / %s as version %d (%s)", fp.Building, fp.FloorLevel, fp.Version, fp.ObjectKey)
			return nil
		},
	}

	cmd.Flags().StringVarP(&building, "building", "b", "", "Building name")
	cmd.Flags().StringVarP(&floor, "floor", "f", "", "Floor level (basement, first, second, ...)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&uploadedBy, "uploaded-by", "cli", "Uploader recorded on the row")
	cmd.MarkFlagRequired("building")
	cmd.MarkFlagRequired("floor")
	return cmd
}
