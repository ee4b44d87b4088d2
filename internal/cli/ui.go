package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("37")
	colorGreen  = lipgloss.Color("71")
	colorYellow = lipgloss.Color("214")
	colorBlue   = lipgloss.Color("111")
	colorWhite  = lipgloss.Color("252")
	colorGray   = lipgloss.Color("246")
	colorDim    = lipgloss.Color("241")
)

// Styles shared by commands and the explorer.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

const iconArrow = "→"

// statusOut receives status lines and spinners. Query results go to the
// command's own writer, so piping `socialgraph friends Alex` stays clean.
var statusOut io.Writer = os.Stderr

// statusKind selects the marker and colour of a status line.
type statusKind struct {
	mark  string
	style lipgloss.Style
}

var (
	statusOK   = statusKind{"✓", StyleSuccess}
	statusWarn = statusKind{"!", StyleWarning}
	statusNote = statusKind{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func status(k statusKind, format string, args ...any) {
	fmt.Fprintln(statusOut, k.style.Render(k.mark)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(statusOK, format, args...) }
func printInfo(format string, args ...any)    { status(statusNote, format, args...) }

func printWarning(format string, args ...any) {
	status(statusWarn, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

var keyStyle = lipgloss.NewStyle().Foreground(colorGray).Width(12)

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarises a rendered network, e.g. "6 people · 9 friendships · cached".
func printStats(people, friendships int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		origin = StyleSuccess.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d people", people)),
		StyleDim.Render(fmt.Sprintf("%d friendships", friendships)),
		origin,
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+lipgloss.NewStyle().Foreground(colorBlue).Render(cmd))
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// styledTable renders a rounded table. cell styles body cells; rows are
// indexed from 0 and the header always uses tableHeaderStyle.
func styledTable(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return cell(row, col)
		}).
		Render()
}
