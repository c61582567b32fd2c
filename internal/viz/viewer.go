package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TickMsg time.Time

// Viewer browses a set of series in the terminal: one plotted at a time with
// a cursor that can be scrubbed or played back.
type Viewer struct {
	title    string
	xLabel   string
	series   []Series
	selected int
	cursor   int
	playing  bool
	showHelp bool
	theme    int
	width    int
	height   int
	canvas   *Canvas
}

func NewViewer(title, xLabel string, series []Series) Viewer {
	v := Viewer{
		title:  title,
		xLabel: xLabel,
		series: series,
		width:  60,
		height: 16,
	}
	v.canvas = NewCanvas(v.width, v.height)
	return v
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "tab", "right", "l":
			if len(v.series) > 0 {
				v.selected = (v.selected + 1) % len(v.series)
			}
		case "shift+tab", "left", "h":
			if len(v.series) > 0 {
				v.selected = (v.selected - 1 + len(v.series)) % len(v.series)
			}
		case "[":
			v.scrub(-1)
		case "]":
			v.scrub(1)
		case "{":
			v.scrub(-max(v.length()/20, 1))
		case "}":
			v.scrub(max(v.length()/20, 1))
		case "p":
			v.cursor = v.peakIndex()
		case "home", "g":
			v.cursor = 0
		case "end", "G":
			v.cursor = max(v.length()-1, 0)
		case " ":
			v.playing = !v.playing
			if v.playing {
				return v, tick()
			}
		case "t":
			v.theme = (v.theme + 1) % len(Themes)
		case "?":
			v.showHelp = !v.showHelp
		}
	case tea.WindowSizeMsg:
		v.width = max(msg.Width-36, 20)
		v.height = max(msg.Height-6, 6)
		v.canvas = NewCanvas(v.width, v.height)
	case TickMsg:
		if !v.playing {
			return v, nil
		}
		step := max(v.length()/(v.width*2), 1)
		v.cursor += step
		if v.cursor >= v.length() {
			v.cursor = max(v.length()-1, 0)
			v.playing = false
			return v, nil
		}
		return v, tick()
	}
	return v, nil
}

func (v *Viewer) scrub(delta int) {
	v.cursor += delta
	v.cursor = max(0, min(v.cursor, v.length()-1))
}

func (v Viewer) current() (Series, bool) {
	if len(v.series) == 0 {
		return Series{}, false
	}
	return v.series[v.selected], true
}

func (v Viewer) length() int {
	s, ok := v.current()
	if !ok {
		return 0
	}
	return len(s.Y)
}

func (v Viewer) peakIndex() int {
	s, ok := v.current()
	if !ok {
		return 0
	}
	idx, best := 0, -1.0
	for i, y := range s.Y {
		if a := math.Abs(y); finite(y) && a > best {
			idx, best = i, a
		}
	}
	return idx
}

// Selected returns the name of the series on screen.
func (v Viewer) Selected() string {
	s, _ := v.current()
	return s.Name
}

// Cursor returns the sample index under the cursor.
func (v Viewer) Cursor() int { return v.cursor }

func (v Viewer) View() string {
	s, ok := v.current()
	if !ok {
		return Subtle.Render("nothing to show") + "\n"
	}
	theme := Themes[v.theme]

	lo, hi, finiteAny := bounds(s.Y)
	if finiteAny {
		v.canvas.Plot(s.Y, lo, hi)
		if n := len(s.Y); n > 1 && v.cursor < n {
			x := v.cursor * (v.width*2 - 1) / (n - 1)
			for y := 0; y < v.height*4; y += 3 {
				v.canvas.Set(x, y)
			}
		}
	} else {
		v.canvas.Clear()
	}
	plot := lipgloss.NewStyle().
		Foreground(theme.Plot).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Muted).
		Render(v.canvas.String())

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(v.title) + "\n")
	for i, other := range v.series {
		name := fmt.Sprintf("%-16s", other.Name)
		if i == v.selected {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("> "+name) + "\n")
		} else {
			b.WriteString("  " + Subtle.Render(name) + "\n")
		}
	}
	b.WriteString("\n")

	row := func(label string, val string) {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-10s", label)) + MetricValue.Render(val) + "\n")
	}
	if v.cursor < len(s.Y) {
		if v.cursor < len(s.X) {
			row(v.xLabel, fmt.Sprintf("%.4g", s.X[v.cursor]))
		}
		row("value", fmt.Sprintf("%.6g", s.Y[v.cursor]))
	}
	if finiteAny {
		row("min", fmt.Sprintf("%.6g", lo))
		row("max", fmt.Sprintf("%.6g", hi))
	}
	if p := v.peakIndex(); p < len(s.X) {
		row("peak at", fmt.Sprintf("%.4g", s.X[p]))
	}
	b.WriteString("\n" + Sparkline(s.Y, 30) + "\n")

	status := "PAUSED"
	if v.playing {
		status = "PLAYING"
	}
	b.WriteString("\n" + Subtle.Render(status) + "\n")
	b.WriteString(KeyHint.Render("tab:channel [ ]:scrub p:peak\nspace:play t:theme ?:help q:quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, plot, Panel.Render(b.String()))
	if v.showHelp {
		help := Panel.Render(strings.Join([]string{
			Title.Render("keys"),
			"tab / → / l   next channel",
			"⇧tab / ← / h  previous channel",
			"[ ]           step cursor",
			"{ }           jump 5%",
			"p             jump to peak",
			"g / G         first / last sample",
			"space         play / pause",
			"t             cycle theme",
			"q             quit",
		}, "\n"))
		return help + "\n" + view
	}
	return view
}

// RunViewer opens the viewer full screen until the user quits.
func RunViewer(title, xLabel string, series []Series) error {
	p := tea.NewProgram(NewViewer(title, xLabel, series), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
