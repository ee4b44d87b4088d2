package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/pkg/network"
)

const (
	minVisibleRows = 5
	suggestLimit   = 3
)

var (
	rowCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rowMutedStyle  = lipgloss.NewStyle().Foreground(colorDim)
	rowPlainStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	detailBox      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Browse people, friends and paths interactively",
		Long: `Opens a full-screen browser. Move with the arrow keys (or j/k), press
enter to pin the selected person and see the shortest path from them to
whoever is selected next, esc to unpin and q to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.loadNetwork(cmd.Context())
			switch {
			case err != nil:
				return err
			case n.Len() == 0:
				printInfo("The network is empty")
				return nil
			}
			_, err = tea.NewProgram(NewExploreModel(n), tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// ExploreModel is the bubbletea model behind the explore command. People
// lists everyone in order; Cursor indexes it and Offset is the first
// visible row. Anchor, when set, is the person paths are measured from.
type ExploreModel struct {
	Network *network.Network
	People  []string
	Cursor  int
	Offset  int
	Height  int
	Anchor  string
}

// NewExploreModel starts with the cursor on the first person.
func NewExploreModel(n *network.Network) ExploreModel {
	return ExploreModel{Network: n, People: n.People(), Height: 15}
}

func (m ExploreModel) Init() tea.Cmd { return nil }

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Header, footer and table borders take eight lines.
		m.Height = max(msg.Height-8, minVisibleRows)
		m = m.moveBy(0)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m = m.moveBy(-1)
		case "down", "j":
			m = m.moveBy(1)
		case "home", "g":
			m = m.moveBy(-len(m.People))
		case "end", "G":
			m = m.moveBy(len(m.People))
		case "enter":
			if id, ok := m.selected(); ok {
				m.Anchor = id
			}
		case "esc":
			m.Anchor = ""
		}
	}
	return m, nil
}

// moveBy shifts the cursor, clamped to the list, and scrolls so it stays
// visible.
func (m ExploreModel) moveBy(delta int) ExploreModel {
	if len(m.People) == 0 {
		return m
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.People)-1)
	switch {
	case m.Cursor < m.Offset:
		m.Offset = m.Cursor
	case m.Cursor >= m.Offset+m.Height:
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m ExploreModel) selected() (string, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.People) {
		return "", false
	}
	return m.People[m.Cursor], true
}

func (m ExploreModel) View() string {
	header := StyleTitle.Render("Explore Network") + "  " +
		rowMutedStyle.Render(fmt.Sprintf("%d people · %d friendships", m.Network.Len(), m.Network.FriendshipCount()))
	help := rowMutedStyle.Render("↑/↓ move  ⏎ pin  esc unpin  q quit")

	id, ok := m.selected()
	if !ok {
		return header + "\n" + help + "\n"
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), " ", m.personView(id))
	footer := rowMutedStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People)))
	return lipgloss.JoinVertical(lipgloss.Left, header, help, "", body, "", footer)
}

func (m ExploreModel) listView() string {
	visible := m.People[m.Offset:min(m.Offset+m.Height, len(m.People))]
	rows := make([][]string, len(visible))
	for i, id := range visible {
		marker, pin := "  ", ""
		if m.Offset+i == m.Cursor {
			marker = "▸ "
		}
		if id == m.Anchor {
			pin = "⚓"
		}
		degree, _ := m.Network.Degree(id)
		rows[i] = []string{marker, id, fmt.Sprint(degree), pin}
	}

	return styledTable([]string{"", "Person", "Friends", ""}, rows, func(row, _ int) lipgloss.Style {
		i := m.Offset + row
		if i >= len(m.People) {
			return lipgloss.NewStyle()
		}
		if i == m.Cursor {
			return rowCursorStyle
		}
		if d, _ := m.Network.Degree(m.People[i]); d == 0 {
			return rowMutedStyle
		}
		return rowPlainStyle
	})
}

func (m ExploreModel) personView(id string) string {
	lines := []string{StyleHighlight.Bold(true).Render(id)}
	if p, ok := m.Network.Person(id); ok {
		for _, k := range slices.Sorted(maps.Keys(p.Meta)) {
			lines = append(lines, rowMutedStyle.Render(k+": ")+fmt.Sprint(p.Meta[k]))
		}
	}

	section := func(title string, items []string, empty string) {
		lines = append(lines, "", StyleDim.Render(title))
		if len(items) == 0 {
			lines = append(lines, rowMutedStyle.Render("  "+empty))
		}
		for _, it := range items {
			lines = append(lines, "  "+it)
		}
	}

	friends, _ := m.Network.Neighbors(id)
	for i, f := range friends {
		friends[i] = "• " + f
	}
	section("Friends", friends, "no friends yet")

	sugg, _ := m.Network.Suggest(id, suggestLimit)
	names := make([]string, len(sugg))
	for i, s := range sugg {
		names[i] = s.ID + " " + rowMutedStyle.Render(fmt.Sprintf("(%d mutual)", len(s.Mutual)))
	}
	section("Suggestions", names, "none")

	if m.Anchor != "" && m.Anchor != id {
		route := StyleWarning.Render("not connected")
		if path, ok, _ := m.Network.ShortestPath(m.Anchor, id); ok {
			route = StyleSuccess.Render(strings.Join(path, " "+iconArrow+" "))
		}
		section("Path from "+m.Anchor, []string{route}, "")
	}

	return detailBox.Render(strings.Join(lines, "\n"))
}
