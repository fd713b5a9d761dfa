package main

import (
	"log"

	"github.com/spf13/cobra"

	"qc-station/config"
	"qc-station/internal/container"
)

var (
	replayDir    string
	cameraDevice int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the inspection loop until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("replay") {
			cfg.ReplayDir = replayDir
		}
		if cmd.Flags().Changed("camera") {
			cfg.CameraDevice = cameraDevice
		}
		return runStation(cmd)
	},
}

func init() {
	runCmd.Flags().StringVar(&replayDir, "replay", "", "directory of recorded frames to use instead of the camera")
	runCmd.Flags().IntVar(&cameraDevice, "camera", 0, "camera device index")
	rootCmd.AddCommand(runCmd)
}

func runStation(cmd *cobra.Command) error {
	ctx := cmd.Context()

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	c, err := container.New(cfg, catalog, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()

	if c.Telegram != nil {
		go func() {
			if err := c.Telegram.Run(ctx); err != nil {
				log.Printf("Telegram error: %v", err)
			}
		}()
	}

	return c.Station.Run(ctx)
}
