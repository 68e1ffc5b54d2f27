package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	imagepkg "github.com/alexpaden/fartcaster/internal/image"
	"github.com/alexpaden/fartcaster/internal/share"
	"github.com/alexpaden/fartcaster/internal/util"
)

var renderOpts struct {
	username string
	from     string
	out      string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Look a user up and write their fart bubble image to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		user, err := a.users.Find(ctx, renderOpts.username)
		if err != nil {
			return err
		}
		res, err := a.compositor.Compose(ctx, imagepkg.CompositeRequest{
			ProfileImageURL: user.PfpURL,
			Username:        user.Username,
			CurrentUser:     share.Requester(renderOpts.from),
		})
		if err != nil {
			return err
		}

		path, err := util.WriteFile(renderOpts.out, share.Filename(user.Username), res.Data)
		if err != nil {
			return err
		}
		log.Info().Str("user", user.Name()).Int64("fid", user.FID).Str("path", path).Msg("image written")
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.username, "username", "u", "", "Farcaster username to render")
	f.StringVar(&renderOpts.from, "from", "", "name of the requesting user")
	f.StringVarP(&renderOpts.out, "out", "o", ".", "output directory")
	_ = renderCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(renderCmd)
}
