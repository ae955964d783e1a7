package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/object"
)

const (
	rowBytes = 16
	numRows  = 16
	winBytes = rowBytes * numRows
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewerModel struct {
	err    error
	eng    *object.Engine
	space  memview.MemorySpace
	window []byte
	base   uint64
	cursor int
	input  textinput.Model
	state  viewerState
}

type viewerState int

const (
	stateBrowse viewerState = iota
	stateGoto
	stateEdit
)

type windowMsg struct {
	err  error
	base uint64
	data []byte
}

type writeDoneMsg struct {
	err error
}

func newViewerModel(space memview.MemorySpace, eng *object.Engine, start uint64) *viewerModel {
	return &viewerModel{
		eng:   eng,
		space: space,
		base:  start,
		state: stateBrowse,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return m.refresh(m.base)
}

// refresh reads the visible window fresh from the backend; on live
// spaces every repaint shows current memory.
func (m *viewerModel) refresh(base uint64) tea.Cmd {
	return func() tea.Msg {
		data, err := m.space.Read(base, winBytes)
		return windowMsg{base: base, data: data, err: err}
	}
}

func (m *viewerModel) writeByte(addr uint64, b byte) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{err: m.space.Write(addr, []byte{b})}
	}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state != stateBrowse {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			} else if m.base >= rowBytes {
				m.cursor = rowBytes - 1
				m.base -= rowBytes
				return m, m.refresh(m.base)
			}

		case "right", "l":
			if m.cursor < winBytes-1 {
				m.cursor++
			}

		case "up", "k":
			if m.cursor >= rowBytes {
				m.cursor -= rowBytes
			} else if m.base >= rowBytes {
				m.base -= rowBytes
				return m, m.refresh(m.base)
			}

		case "down", "j":
			if m.cursor < winBytes-rowBytes {
				m.cursor += rowBytes
			} else {
				m.base += rowBytes
				return m, m.refresh(m.base)
			}

		case "pgup":
			if m.base >= winBytes {
				m.base -= winBytes
			} else {
				m.base = 0
			}
			return m, m.refresh(m.base)

		case "pgdown":
			m.base += winBytes
			return m, m.refresh(m.base)

		case "g":
			m.input = textinput.New()
			m.input.Prompt = "goto: 0x"
			m.input.Width = 20
			m.input.Focus()
			m.state = stateGoto

		case "e":
			m.input = textinput.New()
			m.input.Prompt = fmt.Sprintf("write 0x%x: 0x", m.cursorAddr())
			m.input.Width = 6
			m.input.Focus()
			m.state = stateEdit

		case "r":
			return m, m.refresh(m.base)
		}

	case windowMsg:
		m.base = msg.base
		m.window = msg.data
		m.err = msg.err

	case writeDoneMsg:
		m.err = msg.err
		return m, m.refresh(m.base)
	}

	return m, nil
}

func (m *viewerModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateBrowse
		return m, nil

	case "enter":
		text := strings.TrimPrefix(strings.TrimSpace(m.input.Value()), "0x")
		state := m.state
		m.state = stateBrowse
		switch state {
		case stateGoto:
			addr, err := strconv.ParseUint(text, 16, 64)
			if err != nil {
				m.err = fmt.Errorf("bad address %q", text)
				return m, nil
			}
			m.cursor = 0
			return m, m.refresh(addr)

		case stateEdit:
			b, err := strconv.ParseUint(text, 16, 8)
			if err != nil {
				m.err = fmt.Errorf("bad byte %q", text)
				return m, nil
			}
			return m, m.writeByte(m.cursorAddr(), byte(b))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(tea.Msg(msg))
	return m, cmd
}

func (m *viewerModel) cursorAddr() uint64 {
	return m.base + uint64(m.cursor)
}

func (m *viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("memview"))
	b.WriteString(fmt.Sprintf("  cursor %s\n\n", addrStyle.Render(fmt.Sprintf("0x%08x", m.cursorAddr()))))

	if m.window == nil && m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)))
		return b.String()
	}

	b.WriteString(m.renderHex())
	b.WriteString("\n")
	b.WriteString(m.renderDecode())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	switch m.state {
	case stateBrowse:
		b.WriteString(helpStyle.Render("←↓↑→ move • pgup/pgdn scroll • g goto • e edit byte • r refresh • q quit"))
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter confirm • esc cancel"))
	}

	return b.String()
}

func (m *viewerModel) renderHex() string {
	var b strings.Builder
	for row := 0; row < len(m.window); row += rowBytes {
		b.WriteString(addrStyle.Render(fmt.Sprintf("%08x", m.base+uint64(row))))
		b.WriteString("  ")
		end := row + rowBytes
		if end > len(m.window) {
			end = len(m.window)
		}
		for i := row; i < end; i++ {
			cell := fmt.Sprintf("%02x", m.window[i])
			if i == m.cursor {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
			b.WriteString(" ")
		}
		b.WriteString(" |")
		b.WriteString(printable(m.window[row:end]))
		b.WriteString("|\n")
	}
	return b.String()
}

// renderDecode shows the bytes at the cursor interpreted as each scalar
// width, read through the engine so byte order and bounds behave
// exactly as library callers see them.
func (m *viewerModel) renderDecode() string {
	var b strings.Builder
	addr := m.cursorAddr()
	for _, s := range []ctype.Scalar{ctype.U8, ctype.S8, ctype.U16, ctype.S16, ctype.U32, ctype.S32, ctype.U64, ctype.S64, ctype.F32, ctype.F64} {
		v, err := m.eng.View(m.space, addr, s).Get()
		if err != nil {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-4s %s\n", s.String(), valueStyle.Render(fmt.Sprintf("%v", v))))
	}
	return b.String()
}

func runInteractive(space memview.MemorySpace, cfg memview.Config, start uint64) error {
	eng, err := object.NewEngine(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newViewerModel(space, eng, start), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
