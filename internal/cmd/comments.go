package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"redlytics/internal/dash"
	"redlytics/internal/reconcile"
)

var commentsCmd = &cli.Command{
	Name:      "comments",
	Usage:     "Fetch the comments of one post",
	ArgsUsage: "<post-id>",
	Action: func(ctx context.Context, c *cli.Command) error {
		postID := c.Args().First()
		if postID == "" {
			return fmt.Errorf("post id required")
		}

		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		detail := &reconcile.Detail{}
		detail.Open(postID)

		comments, err := e.client.Comments(ctx, postID)
		if err != nil {
			return err
		}
		detail.Apply(postID, comments)

		return dash.RenderComments(os.Stdout, detail.Comments())
	},
}
