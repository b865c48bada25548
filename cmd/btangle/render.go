package main

import (
	"fmt"
	"os"

	"github.com/russross/blackfriday"
	"github.com/spf13/cobra"
)

func newRenderCmd(strict *bool) *cobra.Command {
	var outline bool

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render documents to HTML, or print their section outline",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveInputs(args)
			if err != nil {
				return err
			}
			for _, path := range files {
				if outline {
					if err := renderOutline(path, *strict); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					continue
				}
				if err := renderHTML(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outline, "outline", false, "print the section outline instead of HTML")
	return cmd
}

// mdExtensions is the blackfriday extension set used for rendering.
const mdExtensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak

func renderHTML(path string) error {
	body, _, err := loadDocument(path)
	if err != nil {
		return err
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	out := blackfriday.Run(body,
		blackfriday.WithExtensions(mdExtensions),
		blackfriday.WithRenderer(renderer),
	)
	_, err = os.Stdout.Write(out)
	return err
}

func renderOutline(path string, strict bool) error {
	doc, _, err := parseFile(path, strict)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%+v\n", doc.Root)
	return nil
}
