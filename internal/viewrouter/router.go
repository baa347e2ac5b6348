// Package viewrouter tracks which top-level panel is visible.
package viewrouter

import (
	"fmt"
	"strings"
	"sync"
)

type Panel string

const (
	PanelDashboard Panel = "dashboard"
	PanelSearch    Panel = "search"
)

// ParsePanel maps a request value to a Panel.
func ParsePanel(raw string) (Panel, error) {
	switch Panel(strings.ToLower(strings.TrimSpace(raw))) {
	case PanelDashboard:
		return PanelDashboard, nil
	case PanelSearch:
		return PanelSearch, nil
	default:
		return "", fmt.Errorf("unknown panel %q", raw)
	}
}

// View describes panel visibility and navigation state.
type View struct {
	Active           Panel
	DashboardVisible bool
	SearchVisible    bool
}

type Router struct {
	mu     sync.Mutex
	active Panel
}

// New returns a router showing the dashboard.
func New() *Router {
	return &Router{active: PanelDashboard}
}

func (r *Router) Show(panel Panel) {
	if panel != PanelSearch {
		panel = PanelDashboard
	}
	r.mu.Lock()
	r.active = panel
	r.mu.Unlock()
}

func (r *Router) Active() Panel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Router) View() View {
	return BuildView(r.Active())
}

// BuildView is the pure state-to-view mapping for a panel.
func BuildView(active Panel) View {
	return View{
		Active:           active,
		DashboardVisible: active != PanelSearch,
		SearchVisible:    active == PanelSearch,
	}
}
