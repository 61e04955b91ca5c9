// Interactive assistant mode. The user plays the game elsewhere and
// feeds each guess and its colors back here; the solver narrows the
// candidate pool and suggests the next guess.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wordnerd/internal/feedback"
	"wordnerd/internal/solver"
	"wordnerd/internal/solver/lexicon"
	"wordnerd/internal/vocab"
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Interactive assistant for a game played elsewhere",
	Long: `Assist helps with a game you are playing in another app. After each
of your guesses, enter the word and the colors you got back as a
pattern of g (green), y (yellow) and b (gray), e.g.

    crane gybbb

and the assistant shows the remaining candidates and its suggested
next guess.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		words, err := vocab.Load(cfg.Vocab.AnswersPath, cfg.Vocab.AllowedPath, cfg.Solver.WordLength)
		if err != nil {
			return err
		}

		backend := lexicon.New()
		acc, err := solver.NewAccumulator(backend, cfg.Solver.WordLength, words.Union(),
			solver.Preferences{
				NoDuplicates:  cfg.Solver.PreferNoDuplicates,
				MaxTwoOfAKind: cfg.Solver.PreferMaxTwoOfAKind,
			}, logger)
		if err != nil {
			return err
		}

		m := newAssistModel(acc, backend, cfg.Solver.WordLength)
		_, err = tea.NewProgram(m).Run()
		return err
	},
}

// assistEntry is one accepted guess+pattern line.
type assistEntry struct {
	guess string
	recs  []feedback.Record
}

type assistModel struct {
	input   textinput.Model
	acc     *solver.Accumulator
	backend *lexicon.Backend
	n       int

	entries    []assistEntry
	suggestion string
	errMsg     string
	solved     bool
	dead       bool
}

func newAssistModel(acc *solver.Accumulator, backend *lexicon.Backend, n int) assistModel {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("guess pattern (e.g. crane %s)", strings.Repeat("g", n))
	ti.Focus()
	ti.CharLimit = 2*n + 1
	ti.Width = 32

	m := assistModel{input: ti, acc: acc, backend: backend, n: n}
	m.refreshSuggestion()
	return m
}

func (m assistModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m assistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m assistModel) handleSubmit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(strings.ToLower(m.input.Value()))
	if line == "" {
		return m, nil
	}
	m.input.Reset()
	m.errMsg = ""

	fields := strings.Fields(line)
	if len(fields) != 2 {
		m.errMsg = "enter exactly two words: the guess and its pattern"
		return m, nil
	}
	guess, pattern := fields[0], fields[1]

	recs, err := feedback.ParsePattern(guess, pattern)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if feedback.Won(recs) {
		m.entries = append(m.entries, assistEntry{guess: guess, recs: recs})
		m.solved = true
		return m, tea.Quit
	}

	cs, err := feedback.Interpret(guess, recs)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if err := m.acc.Merge(cs); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.entries = append(m.entries, assistEntry{guess: guess, recs: recs})
	m.refreshSuggestion()
	return m, nil
}

func (m *assistModel) refreshSuggestion() {
	word, err := m.acc.NextCandidate(context.Background())
	switch {
	case errors.Is(err, solver.ErrUnsatisfiable):
		m.dead = true
		m.suggestion = ""
	case err != nil:
		m.errMsg = err.Error()
	default:
		m.suggestion = word
	}
}

func (m assistModel) View() string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("wordnerd assist"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		fmt.Fprintf(&b, "%2d  %s\n", i+1, renderFeedback(e.recs))
	}
	if len(m.entries) > 0 {
		b.WriteString("\n")
	}

	switch {
	case m.solved:
		b.WriteString(accentStyle.Render(fmt.Sprintf("Solved: %s", m.entries[len(m.entries)-1].guess)))
		b.WriteString("\n")
		return b.String()
	case m.dead:
		b.WriteString(errorStyle.Render("No candidate satisfies that feedback. Check the patterns you entered."))
		b.WriteString("\n")
		return b.String()
	}

	remaining := m.backend.Remaining()
	fmt.Fprintf(&b, "%s %s   %s\n",
		faintStyle.Render("suggest:"), accentStyle.Render(m.suggestion),
		faintStyle.Render(fmt.Sprintf("(%d candidates left)", remaining)))

	if remaining > 1 {
		shown := m.backend.Candidates(8)
		b.WriteString(faintStyle.Render("also: " + strings.Join(shown, " ")))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Enter to submit, Esc to quit"))
	b.WriteString("\n")
	return b.String()
}
