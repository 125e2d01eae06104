package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BrandRed).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(BrandOrange).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(BrandOrange).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(BrandYellow).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(BrandRed).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(SignalGray).
				Italic(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling.
// Help for a command lists its own arguments and flags followed by the
// global flags.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render(appName))
		sb.WriteString("\n")
		desc := node.Help
		if node == ctx.Model.Node || desc == "" {
			desc = appTagline
		}
		sb.WriteString(helpDescStyle.Render(desc))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(usageLine(ctx, node))
		sb.WriteString("\n")

		writeItems(&sb, "Commands:", getCommands(node), helpArgStyle)
		writeItems(&sb, "Arguments:", getArguments(node), helpArgStyle)
		writeItems(&sb, "Flags:", getFlags(node, node == ctx.Model.Node), helpFlagStyle)
		if node != ctx.Model.Node {
			writeItems(&sb, "Global Flags:", getFlags(ctx.Model.Node, true), helpFlagStyle)
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	})
}

type helpItem struct {
	name       string
	help       string
	defaultVal string
}

func writeItems(sb *strings.Builder, title string, items []helpItem, style lipgloss.Style) {
	if len(items) == 0 {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("  ")
		sb.WriteString(style.Render(item.name))
		if item.help != "" {
			sb.WriteString("  ")
			sb.WriteString(item.help)
		}
		if item.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + item.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func usageLine(ctx *kong.Context, node *kong.Node) string {
	if node == ctx.Model.Node {
		return fmt.Sprintf("%s <command> [flags]", ctx.Model.Name)
	}

	parts := []string{node.FullPath()}
	for _, arg := range node.Positional {
		parts = append(parts, arg.Summary())
	}
	parts = append(parts, "[flags]")
	return strings.Join(parts, " ")
}

func getCommands(node *kong.Node) []helpItem {
	var items []helpItem
	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		items = append(items, helpItem{name: child.Name, help: child.Help})
	}
	return items
}

func getArguments(node *kong.Node) []helpItem {
	var items []helpItem
	for _, arg := range node.Positional {
		items = append(items, helpItem{name: arg.Summary(), help: arg.Help})
	}
	return items
}

func getFlags(node *kong.Node, withHelp bool) []helpItem {
	var items []helpItem

	if withHelp {
		items = append(items, helpItem{
			name: "-h, --help",
			help: "Show context-sensitive help.",
		})
	}

	for _, f := range node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		name := fmt.Sprintf("--%s", f.Name)
		if f.Short != 0 {
			name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		}
		if !f.IsBool() {
			name += "=" + strings.ToUpper(f.FormatPlaceHolder())
		}

		help := f.Help
		if len(f.Envs) > 0 {
			help += " ($" + strings.Join(f.Envs, ", $") + ")"
		}

		// Only show default if it's a meaningful value
		defaultVal := ""
		if f.HasDefault && !f.IsBool() && f.Default != "" {
			defaultVal = f.Default
		}

		items = append(items, helpItem{name: name, help: help, defaultVal: defaultVal})
	}

	return items
}
