// Package ui implements the interactive style browser: a filterable list of
// every loaded template with a live preview pane showing the selected style
// applied to a sample prompt at an adjustable weight.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-styler/internal/clipboard"
	"github.com/dpshade/prompt-styler/internal/models"
	"github.com/dpshade/prompt-styler/internal/service"
	"github.com/dpshade/prompt-styler/internal/styler"
)

const samplePrompt = "a cat on a windowsill"

var (
	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

type keyMap struct {
	raiseWeight key.Binding
	lowerWeight key.Binding
	copyPrompt  key.Binding
	quit        key.Binding
}

var keys = keyMap{
	raiseWeight: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise weight")),
	lowerWeight: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "lower weight")),
	copyPrompt:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy styled prompt")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Browser is the bubbletea model for the style browser
type Browser struct {
	list     list.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	weight   float64
	status   string
	width    int
	height   int
	ready    bool
}

// NewBrowser creates a browser over every template the service loaded
func NewBrowser(svc *service.Service) (*Browser, error) {
	templates := svc.ListTemplates()
	items := make([]list.Item, len(templates))
	for i, tmpl := range templates {
		items[i] = *tmpl
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Styles"
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.raiseWeight, keys.lowerWeight, keys.copyPrompt}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Browser{
		list:     l,
		viewport: viewport.New(60, 20),
		renderer: renderer,
		weight:   1.0,
	}, nil
}

// Run starts the browser and blocks until the user quits
func (b *Browser) Run() error {
	_, err := tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (b *Browser) Init() tea.Cmd {
	return nil
}

// selected returns the currently highlighted template, if any
func (b *Browser) selected() *models.Template {
	item, ok := b.list.SelectedItem().(models.Template)
	if !ok {
		return nil
	}
	return &item
}

// styledSample applies the selected template to the sample prompt at the
// current weight
func (b *Browser) styledSample(tmpl *models.Template) (string, string) {
	pos, neg := tmpl.ApplyWeighted(samplePrompt, "", true, true, b.weight)
	return styler.CollapseWhitespace(pos), styler.CollapseWhitespace(neg)
}

// refreshPreview re-renders the preview pane for the selected template
func (b *Browser) refreshPreview() {
	tmpl := b.selected()
	if tmpl == nil {
		b.viewport.SetContent("No styles loaded.")
		return
	}

	pos, neg := b.styledSample(tmpl)

	md := fmt.Sprintf("# %s\n\n**Prompt:** `%s`\n\n", tmpl.FlatKey(), tmpl.Prompt)
	if tmpl.NegativePrompt != "" {
		md += fmt.Sprintf("**Negative:** `%s`\n\n", tmpl.NegativePrompt)
	}
	md += fmt.Sprintf("## Preview (weight %s)\n\n%s\n", models.FormatWeight(b.weight), pos)
	if neg != "" {
		md += fmt.Sprintf("\nNegative: %s\n", neg)
	}

	rendered, err := b.renderer.Render(md)
	if err != nil {
		rendered = md
	}
	b.viewport.SetContent(rendered)
	b.viewport.GotoTop()
}

// Update implements tea.Model
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		listWidth := b.width * 2 / 5
		b.list.SetSize(listWidth, b.height-2)
		b.viewport.Width = b.width - listWidth - 4
		b.viewport.Height = b.height - 4
		b.ready = true
		b.refreshPreview()
		return b, nil

	case tea.KeyMsg:
		// Let the list's filter input swallow keys while filtering
		if b.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.quit):
			return b, tea.Quit

		case key.Matches(msg, keys.raiseWeight):
			if b.weight < styler.WeightMax {
				b.weight += styler.WeightStep
			}
			b.refreshPreview()
			return b, nil

		case key.Matches(msg, keys.lowerWeight):
			if b.weight > styler.WeightMin {
				b.weight -= styler.WeightStep
			}
			b.refreshPreview()
			return b, nil

		case key.Matches(msg, keys.copyPrompt):
			if tmpl := b.selected(); tmpl != nil {
				pos, _ := b.styledSample(tmpl)
				if err := clipboard.Copy(pos); err != nil {
					b.status = "Copy failed: " + err.Error()
				} else {
					b.status = "Copied styled prompt"
				}
			}
			return b, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	b.list, cmd = b.list.Update(msg)
	cmds = append(cmds, cmd)

	b.viewport, cmd = b.viewport.Update(msg)
	cmds = append(cmds, cmd)

	b.refreshPreview()
	return b, tea.Batch(cmds...)
}

// View implements tea.Model
func (b *Browser) View() string {
	if !b.ready {
		return "Loading..."
	}

	status := b.status
	if status == "" {
		status = fmt.Sprintf("weight %s  •  +/- adjust, c copy, / filter, q quit", models.FormatWeight(b.weight))
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		b.list.View(),
		previewBorder.Render(b.viewport.View()),
	)

	return main + "\n" + statusStyle.Render(status)
}
