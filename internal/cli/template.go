package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// newTemplateCmd creates the template command group.
func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect and validate sheet templates",
	}

	cmd.AddCommand(newTemplateValidateCmd())
	cmd.AddCommand(newTemplateShowCmd())

	return cmd
}

func newTemplateValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <template.toml>",
		Short: "Check a template file for geometry and field errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := sheet.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("Template %q is valid", tpl.Name)
			printDetail("%d labels per page", tpl.Capacity())
			return nil
		},
	}
}

func newTemplateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [template.toml]",
		Short: "Print a template's geometry (the built-in one when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl := sheet.Default()
			if len(args) == 1 {
				loaded, err := sheet.Load(args[0])
				if err != nil {
					return err
				}
				tpl = loaded
			}

			printSuccess("Template: %s", tpl.Name)
			printKeyValue("Page", fmt.Sprintf("%.1f x %.1f mm", tpl.PageWidth, tpl.PageHeight))
			printKeyValue("Margins", fmt.Sprintf("top %.1f right %.1f bottom %.1f left %.1f mm",
				tpl.MarginTop, tpl.MarginRight, tpl.MarginBottom, tpl.MarginLeft))
			printKeyValue("Grid", fmt.Sprintf("%d columns x %d rows (%d labels per page)",
				tpl.Columns, tpl.Rows, tpl.Capacity()))
			printKeyValue("Label", fmt.Sprintf("%.1f x %.1f mm", tpl.LabelWidth, tpl.LabelHeight))
			printKeyValue("Gaps", fmt.Sprintf("%.1f x %.1f mm", tpl.GapX, tpl.GapY))

			for _, f := range tpl.Fields {
				printDetail("field %s (%s, %.1f mm)", f.Key, f.Style, f.Height)
			}
			if tpl.Code.Include {
				printDetail("code at %s, level %s, size %.2f", tpl.Code.Corner, tpl.Code.Level, tpl.Code.Size)
			} else {
				printDetail("no code")
			}
			return nil
		},
	}
}
