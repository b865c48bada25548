package main

import (
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(strict *bool) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "watch [files...]",
		Short: "Watch documents and re-tangle them on every save",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveInputs(args)
			if err != nil {
				return err
			}
			return watchFiles(files, *strict, tag)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only tangle code blocks whose resolved tag matches")
	return cmd
}

func watchFiles(files []string, strict bool, tag string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range files {
		if err := w.Add(path); err != nil {
			return err
		}
		if err := tangleFile(path, strict, false, tag); err != nil {
			log.Printf("%s: %v", path, err)
		}
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := tangleFile(ev.Name, strict, false, tag); err != nil {
				log.Printf("%s: %v", ev.Name, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
