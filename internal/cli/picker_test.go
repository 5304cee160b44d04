package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kzmshx/php-graph/pkg/graph"
)

func pickerGraph() *graph.Graph {
	g := graph.New()
	g.Ensure(`Lib\Base`).SetPath("lib/Base.php")
	g.Ensure(`App\Child`).SetPath("app/Child.php")
	g.Ensure(`App\User`).SetPath("app/User.php")
	g.Link(`App\Child`, `Lib\Base`)
	g.Link(`App\Child`, `Vendor\Ref`)
	return g
}

func send(m ClassListModel, msgs ...tea.Msg) ClassListModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ClassListModel)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestClassListModel_DeclaredOnly(t *testing.T) {
	m := NewClassListModel(pickerGraph())

	var ids []string
	for _, r := range m.visible {
		ids = append(ids, r.ID)
	}
	if got := strings.Join(ids, ","); got != `App\Child,App\User,Lib\Base` {
		t.Errorf("rows = %s, want declared classes in sorted order", got)
	}
}

func TestClassListModel_Navigate(t *testing.T) {
	m := send(NewClassListModel(pickerGraph()),
		key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyUp), key(tea.KeyEnter))

	if m.Selected != `App\User` {
		t.Errorf("Selected = %q, want %q", m.Selected, `App\User`)
	}
}

func TestClassListModel_Filter(t *testing.T) {
	m := send(NewClassListModel(pickerGraph()), runes("bas"))
	if len(m.visible) != 1 || m.visible[0].ID != `Lib\Base` {
		t.Fatalf("visible after filter = %+v", m.visible)
	}

	m = send(m, key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace))
	if m.Filter != "" || len(m.visible) != 3 {
		t.Errorf("after clearing filter: Filter = %q, visible = %d", m.Filter, len(m.visible))
	}

	m = send(m, runes("zzz"), key(tea.KeyEnter))
	if m.Selected != "" {
		t.Errorf("Selected = %q, want none when nothing matches", m.Selected)
	}
	if !strings.Contains(m.View(), "no matching classes") {
		t.Error("View() should report an empty match")
	}
}

func TestClassListModel_Quit(t *testing.T) {
	_, cmd := NewClassListModel(pickerGraph()).Update(key(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestClassListModel_Scroll(t *testing.T) {
	m := NewClassListModel(pickerGraph())
	m.Height = 2
	m = send(m, key(tea.KeyDown), key(tea.KeyDown))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	if !strings.Contains(m.View(), `Lib\Base`) {
		t.Error("View() should show the row under the cursor")
	}
}

func TestPickClass_NoDeclaredClasses(t *testing.T) {
	g := graph.New()
	g.Link(`A\B`, `C\D`)
	if _, err := pickClass(g); err == nil {
		t.Error("pickClass() should fail when no class was declared")
	}
}
