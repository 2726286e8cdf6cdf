package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"genaikit/internal/report"
	"genaikit/internal/stats"
)

// Menu styles
var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")).Padding(0, 1)
	menuItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	menuSelectedStyle = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("205")).Bold(true)
	menuHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type menuStage int

const (
	stageMenu menuStage = iota
	stageInput
	stageResult
)

// menuAction is one entry of the interactive menu. Actions that need
// parameters declare input prompts; run receives the collected values
// in order.
type menuAction struct {
	title   string
	prompts []string
	run     func(values []string) (string, error)
}

type menuModel struct {
	actions []menuAction
	cursor  int

	stage    menuStage
	selected int
	input    textinput.Model
	promptAt int
	values   []string

	result string
	err    error
}

func newMenuModel(actions []menuAction) menuModel {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 48
	return menuModel{actions: actions, input: input}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.stage {
	case stageMenu:
		switch keyMsg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.actions)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
			action := m.actions[m.selected]
			if len(action.prompts) == 0 {
				return m.runSelected(nil)
			}
			m.stage = stageInput
			m.promptAt = 0
			m.values = nil
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}

	case stageInput:
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.stage = stageMenu
			return m, nil
		case "enter":
			m.values = append(m.values, strings.TrimSpace(m.input.Value()))
			m.promptAt++
			if m.promptAt < len(m.actions[m.selected].prompts) {
				m.input.SetValue("")
				return m, nil
			}
			m.input.Blur()
			return m.runSelected(m.values)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case stageResult:
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.stage = stageMenu
			m.result = ""
			m.err = nil
		}
	}
	return m, nil
}

func (m menuModel) runSelected(values []string) (tea.Model, tea.Cmd) {
	result, err := m.actions[m.selected].run(values)
	m.result = result
	m.err = err
	m.stage = stageResult
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder

	switch m.stage {
	case stageMenu:
		b.WriteString(menuTitleStyle.Render("GENAIKIT STORE STATISTICS"))
		b.WriteString("\n\n")
		for i, action := range m.actions {
			line := fmt.Sprintf("%2d. %s", i+1, action.title)
			if i == m.cursor {
				b.WriteString(menuSelectedStyle.Render("> " + line))
			} else {
				b.WriteString(menuItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(menuHelpStyle.Render("up/down to move, enter to select, q to quit"))

	case stageInput:
		b.WriteString(menuTitleStyle.Render(m.actions[m.selected].title))
		b.WriteString("\n\n")
		b.WriteString(m.actions[m.selected].prompts[m.promptAt])
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(menuHelpStyle.Render("enter to confirm, esc to go back"))

	case stageResult:
		if m.err != nil {
			b.WriteString(menuErrorStyle.Render("Error: " + m.err.Error()))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n")
		b.WriteString(menuHelpStyle.Render("any key for menu, q to quit"))
	}

	b.WriteString("\n")
	return b.String()
}

// runInteractiveMenu starts the menu loop. Each action renders its
// report into a string that the result view displays.
func runInteractiveMenu() error {
	path := storePath()

	capture := func(write func(b *strings.Builder) error) (string, error) {
		var b strings.Builder
		if err := write(&b); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	actions := []menuAction{
		{
			title: "Quick overview",
			run: func([]string) (string, error) {
				return capture(func(b *strings.Builder) error {
					overview, err := stats.QuickStats(path)
					if err != nil {
						return err
					}
					report.WriteQuickOverview(b, overview)
					return nil
				})
			},
		},
		{
			title: "Detailed store analysis",
			run: func([]string) (string, error) {
				return capture(func(b *strings.Builder) error {
					db, err := stats.AnalyzeDatabase(path)
					if err != nil {
						return err
					}
					report.WriteDatabaseStats(b, db, true)
					return nil
				})
			},
		},
		{
			title:   "Analyze a collection",
			prompts: []string{"Collection name:"},
			run: func(values []string) (string, error) {
				return capture(func(b *strings.Builder) error {
					s, err := stats.AnalyzeCollection(values[0], path)
					if err != nil {
						return err
					}
					report.WriteCollectionSummary(b, s)
					return nil
				})
			},
		},
		{
			title:   "Show collection chunks",
			prompts: []string{"Collection name:", "How many chunks (0 = all):"},
			run: func(values []string) (string, error) {
				limit, err := parseCount(values[1], 5)
				if err != nil {
					return "", err
				}
				return capture(func(b *strings.Builder) error {
					page, err := stats.GetChunks(values[0], path, limit, 0, false)
					if err != nil {
						return err
					}
					report.WriteChunks(b, page, false)
					return nil
				})
			},
		},
		{
			title:   "Chunk size analysis",
			prompts: []string{"Collection name:"},
			run: func(values []string) (string, error) {
				return capture(func(b *strings.Builder) error {
					s, err := stats.AnalyzeChunkSizes(values[0], path)
					if err != nil {
						return err
					}
					if s == nil {
						fmt.Fprintf(b, "Collection %q has no chunks.\n", values[0])
						return nil
					}
					report.WriteSizeStats(b, values[0], s)
					return nil
				})
			},
		},
		{
			title:   "Filter chunks by source",
			prompts: []string{"Collection name:", "Source filter:"},
			run: func(values []string) (string, error) {
				return capture(func(b *strings.Builder) error {
					matched, err := stats.SearchBySource(values[0], path, values[1])
					if err != nil {
						return err
					}
					if len(matched) == 0 {
						fmt.Fprintf(b, "No chunks with source matching %q.\n", values[1])
						return nil
					}
					page := &stats.ChunkPage{
						CollectionName: values[0],
						TotalChunks:    len(matched),
						Chunks:         matched,
						Pagination:     stats.Pagination{ReturnedCount: len(matched)},
					}
					report.WriteChunks(b, page, false)
					return nil
				})
			},
		},
		{
			title:   "Show chunk by ID",
			prompts: []string{"Collection name:", "Chunk ID:"},
			run: func(values []string) (string, error) {
				return capture(func(b *strings.Builder) error {
					chunk, err := stats.GetChunkByID(values[0], path, values[1])
					if err != nil {
						return err
					}
					if chunk == nil {
						fmt.Fprintf(b, "Chunk %q not found in collection %q.\n", values[1], values[0])
						return nil
					}
					report.WriteChunk(b, chunk)
					return nil
				})
			},
		},
		{
			title:   "Compare collections",
			prompts: []string{"Collection names (comma-separated):"},
			run: func(values []string) (string, error) {
				names := splitNames(values[0])
				if len(names) < 2 {
					return "", fmt.Errorf("need at least two collection names")
				}
				return capture(func(b *strings.Builder) error {
					cmp, err := stats.CompareCollections(path, names)
					if err != nil {
						return err
					}
					report.WriteComparison(b, cmp)
					return nil
				})
			},
		},
		{
			title:   "Export statistics as JSON",
			prompts: []string{"Output file:"},
			run: func(values []string) (string, error) {
				out := values[0]
				if out == "" {
					out = cfg.Export.StatsFile
				}
				if err := report.ExportDatabaseStats(path, out); err != nil {
					return "", err
				}
				return fmt.Sprintf("Statistics exported to %s\n", out), nil
			},
		},
		{
			title:   "Export chunks as JSON",
			prompts: []string{"Collection name:", "Output file:"},
			run: func(values []string) (string, error) {
				out := values[1]
				if out == "" {
					out = cfg.Export.ChunksFile
				}
				if err := report.ExportChunks(values[0], path, out, 0, false); err != nil {
					return "", err
				}
				return fmt.Sprintf("Chunks exported to %s\n", out), nil
			},
		},
	}

	_, err := tea.NewProgram(newMenuModel(actions)).Run()
	return err
}

func parseCount(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return n, nil
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
