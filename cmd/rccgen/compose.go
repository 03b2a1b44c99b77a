package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/yacobolo/rccgen"
	"github.com/yacobolo/rccgen/rcc"
)

var composeCmd = &cobra.Command{
	Use:   "compose <stylesheet> <Component> [flag=value...]",
	Short: "Print the classes a component composes for flag values",
	Long: `Load one stylesheet and compose the class string of a component.
A bare flag name sets the flag to true, flag=false clears it and any other
value selects a ternary value, e.g. size=lg.`,
	Example: `  rccgen compose button.css DeleteBtn size=lg primary
  rccgen compose button.css Btn size=sm --tag button --html`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE:              runCompose,
	ValidArgsFunction: completeCompose,
}

func init() {
	f := composeCmd.Flags()
	addPrecompileFlags(f)
	f.String("debug-prefix", "", "Component display name prefix (default: S.)")
	f.String("tag", "", "Element the component renders as")
	f.String("class", "", "Extra class placed after the default class")
	f.Bool("html", false, "Print the rendered element instead of the class string")
	f.Bool("debug", false, "Add the display name attribute to the rendered element")
}

func runCompose(cmd *cobra.Command, args []string) error {
	config := buildGenerateConfig()

	model, warnings, err := rccgen.LoadFile(cmd.Context(), config, args[0])
	if err != nil {
		return err
	}
	if !getBoolWithFallback("quiet", false) {
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
	}

	values, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}

	tag, _ := cmd.Flags().GetString("tag")
	class, _ := cmd.Flags().GetString("class")
	asHTML, _ := cmd.Flags().GetBool("html")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := []rcc.Option{rcc.WithDebug(debug)}
	if config.DebugPrefix != "" {
		opts = append(opts, rcc.WithDebugPrefix(config.DebugPrefix))
	}
	lib := rcc.NewLibrary(model, opts...)

	var variant *rcc.Variant
	if tag != "" {
		variant, err = lib.Tagged(args[1], tag)
	} else {
		variant, err = lib.Component(args[1])
	}
	if err != nil {
		return err
	}
	instance := variant.New()

	out := cmd.OutOrStdout()
	if !asHTML {
		fmt.Fprintln(out, instance.ClassName(values, class))
		return nil
	}

	var attrs []html.Attribute
	if class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: class})
	}
	rendered, err := rcc.RenderHTML(instance.Element(values, attrs))
	if err != nil {
		return fmt.Errorf("render %s: %w", variant.DisplayName(), err)
	}
	fmt.Fprintln(out, rendered)
	return nil
}

// parseAssignments reads "flag=value" arguments; a bare "flag" means true
func parseAssignments(args []string) (rcc.Values, error) {
	values := make(rcc.Values, len(args))
	for _, arg := range args {
		name, text, ok := strings.Cut(arg, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid flag assignment %q", arg)
		}
		if !ok {
			values[name] = rcc.Bool(true)
			continue
		}
		values[name] = rcc.ParseValue(text)
	}
	return values, nil
}

// completeCompose completes component names after the stylesheet and
// "flag=" prefixes after the component
func completeCompose(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	model, _, err := rccgen.LoadFile(ctx, rccgen.Config{}, args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return model.ComponentNames(), cobra.ShellCompDirectiveNoFileComp
	}

	c, ok := model.Component(args[1])
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var flags []string
	for _, flag := range c.Flags() {
		flags = append(flags, flag+"=")
	}
	sort.Strings(flags)
	return flags, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
