package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// startupCmdWait bounds how long a command produced by a replayed key may
// take before its result is dropped. Timers such as status clearing and
// cursor blink never finish in time, which is intended.
const startupCmdWait = 20 * time.Millisecond

// namedKeys maps the Vim-like tokens accepted by ApplyStartupKeys (matched
// case-insensitively, without the angle brackets) to key presses.
var namedKeys = map[string]tea.KeyPressMsg{
	"esc":       {Code: tea.KeyEscape},
	"escape":    {Code: tea.KeyEscape},
	"c-[":       {Code: tea.KeyEscape},
	"cr":        {Code: tea.KeyEnter},
	"enter":     {Code: tea.KeyEnter},
	"return":    {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"s-tab":     {Code: tea.KeyTab, Mod: tea.ModShift},
	"space":     {Code: ' ', Text: " "},
	"bs":        {Code: tea.KeyBackspace},
	"backspace": {Code: tea.KeyBackspace},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"home":      {Code: tea.KeyHome},
	"end":       {Code: tea.KeyEnd},
	"pgup":      {Code: tea.KeyPgUp},
	"pgdown":    {Code: tea.KeyPgDown},
	"c-c":       {Code: 'c', Mod: tea.ModCtrl},
	"c-d":       {Code: 'd', Mod: tea.ModCtrl},
	"c-r":       {Code: 'r', Mod: tea.ModCtrl},
	"c-u":       {Code: 'u', Mod: tea.ModCtrl},
}

// ApplyStartupKeys replays key presses against m before the program starts.
// Each entry may mix <Name> tokens and literal text ("o<C-u>data.json<CR>").
// A leading backslash makes the whole entry literal. Loads triggered by the
// keys run inline so later keys see the loaded document.
func ApplyStartupKeys(m *Model, keys []string) {
	if m == nil || len(keys) == 0 {
		return
	}
	prev := m.syncLoads
	m.syncLoads = true
	defer func() { m.syncLoads = prev }()

	for _, raw := range keys {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		for _, msg := range ParseKeys(entry) {
			_, cmd := m.Update(msg)
			drain(m, cmd)
		}
	}
}

// ParseKeys turns one startup key entry into key presses. Unknown <Name>
// tokens are typed literally.
func ParseKeys(entry string) []tea.KeyPressMsg {
	if literal, ok := strings.CutPrefix(entry, `\`); ok {
		return typed(literal)
	}
	var out []tea.KeyPressMsg
	rest := entry
	for rest != "" {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			out = append(out, typed(rest)...)
			break
		}
		out = append(out, typed(rest[:start])...)
		end := strings.IndexByte(rest[start:], '>')
		if end < 0 {
			out = append(out, typed(rest[start:])...)
			break
		}
		token := rest[start : start+end+1]
		if msg, ok := namedKey(token); ok {
			out = append(out, msg)
		} else {
			out = append(out, typed(token)...)
		}
		rest = rest[start+end+1:]
	}
	return out
}

func namedKey(token string) (tea.KeyPressMsg, bool) {
	name := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	msg, ok := namedKeys[name]
	return msg, ok
}

func typed(s string) []tea.KeyPressMsg {
	out := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return out
}

// drain runs cmd and feeds quick results back into m. Batches are
// expanded; slow commands are abandoned.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(startupCmdWait):
		return
	}

	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case tea.QuitMsg:
		m.quitting = true
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}
