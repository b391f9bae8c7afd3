// Package cli provides the command-line interface for prompt-styler:
// listing categories and styles, fuzzy search, one-shot style application,
// and multi-slot application, all against the same service the API and TUI
// use.
package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/dpshade/prompt-styler/internal/clipboard"
	"github.com/dpshade/prompt-styler/internal/errors"
	"github.com/dpshade/prompt-styler/internal/models"
	"github.com/dpshade/prompt-styler/internal/service"
	"github.com/dpshade/prompt-styler/internal/styler"
	"github.com/dpshade/prompt-styler/internal/validation"
)

// CLI handles command-line operations
type CLI struct {
	service      *service.Service
	errorHandler *errors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service, verbose bool) *CLI {
	return &CLI{
		service:      svc,
		errorHandler: errors.NewCLIErrorHandler(verbose),
	}
}

// Run dispatches a CLI command
func (c *CLI) Run(args []string) error {
	if len(args) == 0 {
		return c.errorHandler.HandleError(errors.InvalidCommandError("", "no command given"))
	}

	command := args[0]
	rest := args[1:]

	var err error
	switch command {
	case "categories":
		err = c.runCategories()
	case "styles", "list", "ls":
		err = c.runStyles(rest)
	case "names":
		err = c.runNames()
	case "show":
		err = c.runShow(rest)
	case "search":
		err = c.runSearch(rest)
	case "apply":
		err = c.runApply(rest)
	case "multi":
		err = c.runMulti(rest)
	default:
		err = errors.CommandNotFoundError(command)
	}

	if err != nil {
		return c.errorHandler.HandleError(err)
	}
	return nil
}

// runCategories lists category names with style counts
func (c *CLI) runCategories() error {
	categoryMap := c.service.CategoryMap()
	for _, category := range c.service.Categories() {
		fmt.Printf("%s (%d)\n", category, len(categoryMap[category]))
	}
	return nil
}

// runStyles lists flat keys, optionally limited to one category
func (c *CLI) runStyles(args []string) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	category := fs.String("category", "", "limit to one category")
	if err := fs.Parse(args); err != nil {
		return errors.InvalidCommandError("styles", err.Error())
	}

	for _, key := range c.service.FlatKeys() {
		if *category != "" && !strings.HasPrefix(key, *category+": ") {
			continue
		}
		fmt.Println(key)
	}
	return nil
}

// runNames lists bare style names across all categories
func (c *CLI) runNames() error {
	for _, name := range c.service.StyleNames() {
		fmt.Println(name)
	}
	return nil
}

// runShow prints one template by flat key
func (c *CLI) runShow(args []string) error {
	if len(args) < 1 {
		return errors.InvalidCommandError("show", "usage: show \"Category: Name\"")
	}

	tmpl := c.service.GetTemplate(args[0])
	if tmpl == nil {
		return errors.NotFoundError(fmt.Sprintf("Style '%s'", args[0]))
	}

	fmt.Printf("Key:      %s\n", tmpl.FlatKey())
	fmt.Printf("Prompt:   %s\n", tmpl.Prompt)
	if tmpl.NegativePrompt != "" {
		fmt.Printf("Negative: %s\n", tmpl.NegativePrompt)
	}
	fmt.Printf("File:     %s\n", tmpl.FilePath)
	return nil
}

// runSearch fuzzy-searches styles
func (c *CLI) runSearch(args []string) error {
	if len(args) < 1 {
		return errors.InvalidCommandError("search", "usage: search <query>")
	}

	results := c.service.SearchStyles(strings.Join(args, " "))
	if len(results) == 0 {
		fmt.Println("No styles found.")
		return nil
	}
	for _, tmpl := range results {
		fmt.Printf("%s — %s\n", tmpl.FlatKey(), tmpl.Prompt)
	}
	return nil
}

// runApply applies a single style to a prompt pair
func (c *CLI) runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	pos := fs.String("pos", "", "positive prompt")
	neg := fs.String("neg", "", "negative prompt")
	category := fs.String("category", "", "style category")
	style := fs.String("style", "", "style name within the category")
	weight := fs.Float64("weight", 1.0, "emphasis weight")
	copyOut := fs.Bool("copy", false, "copy the styled positive prompt to the clipboard")
	quiet := fs.Bool("quiet", false, "suppress the applied-style log line")
	if err := fs.Parse(args); err != nil {
		return errors.InvalidCommandError("apply", err.Error())
	}

	if result := validation.ValidateApply(*category, *style, *weight); !result.Valid {
		return result.ToAppError()
	}

	single := styler.NewSingle(c.service.Index())
	posOut, negOut := single.Apply(*pos, *neg, *category, *style, *weight, !*quiet)

	fmt.Printf("Positive: %s\n", posOut)
	fmt.Printf("Negative: %s\n", negOut)

	if *copyOut {
		if err := clipboard.Copy(posOut); err != nil {
			return errors.Wrap(err, errors.ErrCodeCommandFailed, "Failed to copy to clipboard")
		}
		fmt.Println("Copied positive prompt to clipboard.")
	}
	return nil
}

// parseSlotSpec parses one positional slot argument of the form
//
//	"Category: Name[@weight][!p][!n]"
//
// where !p disables the positive branch and !n the negative branch.
// "None" (or "-") leaves the slot empty.
func parseSlotSpec(spec string) (models.StyleSlot, error) {
	slot := models.StyleSlot{Weight: 1.0, PositiveOn: true, NegativeOn: true}

	for strings.HasSuffix(spec, "!p") || strings.HasSuffix(spec, "!n") {
		if strings.HasSuffix(spec, "!p") {
			slot.PositiveOn = false
		} else {
			slot.NegativeOn = false
		}
		spec = spec[:len(spec)-2]
	}

	if at := strings.LastIndex(spec, "@"); at >= 0 {
		w, err := strconv.ParseFloat(spec[at+1:], 64)
		if err != nil {
			return slot, fmt.Errorf("bad weight in slot spec '%s'", spec)
		}
		slot.Weight = w
		spec = spec[:at]
	}

	spec = strings.TrimSpace(spec)
	if spec == "-" {
		spec = models.NoneKey
	}
	slot.Key = spec
	return slot, nil
}

// runMulti applies an ordered list of slot specs to a prompt pair
func (c *CLI) runMulti(args []string) error {
	fs := flag.NewFlagSet("multi", flag.ContinueOnError)
	pos := fs.String("pos", "", "positive prompt")
	posWeight := fs.Float64("pos-weight", 1.0, "base positive weight")
	neg := fs.String("neg", "", "negative prompt")
	negWeight := fs.Float64("neg-weight", 1.0, "base negative weight")
	slotCount := fs.Int("slots", styler.DefaultSlotCount, "applicator size (2, 4, 6, or 8)")
	quiet := fs.Bool("quiet", false, "suppress the final-prompt log lines")
	if err := fs.Parse(args); err != nil {
		return errors.InvalidCommandError("multi", err.Error())
	}

	slots := make([]models.StyleSlot, 0, fs.NArg())
	for _, spec := range fs.Args() {
		slot, err := parseSlotSpec(spec)
		if err != nil {
			return errors.InvalidCommandError("multi", err.Error())
		}
		slots = append(slots, slot)
	}

	if result := validation.ValidateMultiApply(*slotCount, *posWeight, *negWeight, slots); !result.Valid {
		return result.ToAppError()
	}

	multi := styler.NewMulti(c.service.Index(), *slotCount)
	posOut, negOut := multi.Apply(*pos, *posWeight, *neg, *negWeight, slots, !*quiet)

	fmt.Printf("Positive: %s\n", posOut)
	fmt.Printf("Negative: %s\n", negOut)
	return nil
}
