package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/project"
)

func newTemplateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage saved shape templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(c.dataPath("templates.json"))
			if err != nil {
				return err
			}
			if len(store.Templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no templates saved")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSHAPES\tPALLET\tDESCRIPTION")
			for _, t := range store.Templates {
				count := len(model.ExpandRequests(t.Shapes))
				fmt.Fprintf(tw, "%s\t%d\t%dx%d\t%s\n", t.Name, count, t.Settings.PalletWidth, t.Settings.PalletHeight, t.Description)
			}
			return tw.Flush()
		},
	}

	save := &cobra.Command{
		Use:   "save NAME",
		Short: "Save shapes and settings as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings()
			if err != nil {
				return err
			}
			shapes, err := c.shapes(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			path := c.dataPath("templates.json")
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			store.Put(model.NewShapeTemplate(args[0], c.v.GetString("description"), shapes, settings))
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved template %q\n", args[0])
			return nil
		},
	}
	addShapeFlags(save.Flags())
	addSettingsFlags(save.Flags())
	save.Flags().String("description", "", "template description")

	remove := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.dataPath("templates.json")
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			t := store.FindByName(args[0])
			if t == nil {
				return fmt.Errorf("unknown template %q", args[0])
			}
			store.Remove(t.ID)
			return project.SaveTemplates(path, store)
		},
	}

	cmd.AddCommand(list, save, remove)
	return cmd
}
