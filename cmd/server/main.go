package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/alexpaden/fartcaster/internal/assets"
	"github.com/alexpaden/fartcaster/internal/config"
	imagepkg "github.com/alexpaden/fartcaster/internal/image"
	"github.com/alexpaden/fartcaster/internal/logging"
	"github.com/alexpaden/fartcaster/internal/lookup"
	"github.com/alexpaden/fartcaster/internal/neynar"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "fartcaster",
	Short:         "Farcaster mini app that puts a fart bubble on someone's profile picture",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml, json or toml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("fartcaster failed")
		os.Exit(1)
	}
}

// app bundles the components shared by every command.
type app struct {
	conf       *config.Config
	assets     afero.Fs
	users      *lookup.Service
	compositor *imagepkg.Compositor
}

func setup(cmd *cobra.Command) (*app, error) {
	conf, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.Setup(conf.Log.Level, conf.Log.Format)
	if !conf.HasAPIKey() {
		log.Warn().Msg("NEYNAR_API_KEY not set, user lookups will fail")
	}

	fs := assets.FS(conf.AssetsDir)
	return &app{
		conf:       conf,
		assets:     fs,
		users:      lookup.NewService(neynar.NewClient(conf.Neynar), conf.Neynar.SearchLimit),
		compositor: imagepkg.NewCompositor(imagepkg.NewLoader(fs, conf.Image), conf.Image.JPEGQuality),
	}, nil
}
