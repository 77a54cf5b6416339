package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/projectboard/internal/state"
)

// Source is a Controller that also publishes snapshots and notices.
type Source interface {
	Controller
	Subscribe(fn func(state.Snapshot)) func()
	OnNotice(fn func(state.Notice)) func()
}

// Run starts the full-screen UI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, src Source) error {
	p := tea.NewProgram(
		NewModel(src),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	unsubscribe := src.Subscribe(func(s state.Snapshot) { p.Send(SnapshotMsg(s)) })
	defer unsubscribe()
	unnotice := src.OnNotice(func(n state.Notice) { p.Send(NoticeMsg(n)) })
	defer unnotice()

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}
