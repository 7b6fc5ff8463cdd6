package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/output"
)

// toText serializes a result to YAML for the MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func actionError(action, app string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(toText(struct {
		output.ActionResult `yaml:",inline"`
		Error               string `yaml:"error"`
	}{output.ActionResult{Action: action, AppID: app}, err.Error()}))
}

func (s *Server) handleListItems(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("app", "")
	openOnly := request.GetBool("open", false)

	items := s.items.Snapshot()
	if app != "" {
		appID, err := s.items.Resolve(app)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		item, _ := s.items.Item(appID)
		items = []model.ItemView{item}
	}
	if openOnly {
		filtered := items[:0:0]
		for _, it := range items {
			if it.State.IsOpen() {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	return mcp.NewToolResultText(toText(output.ListResult{
		Backend: s.backend,
		TS:      time.Now().Unix(),
		Items:   items,
	})), nil
}

func (s *Server) handleFocusItem(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "focus"
	app := request.GetString("app", "")
	appID, err := s.items.Resolve(app)
	if err != nil {
		return actionError(action, app, err), nil
	}
	item, _ := s.items.Item(appID)
	if !item.State.IsOpen() {
		return actionError(action, appID, fmt.Errorf("%s has no open windows; use open_item", appID)), nil
	}
	return s.sendIntent(action, appID, 0, launcher.FocusItem{AppID: appID})
}

func (s *Server) handleFocusWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "focus_window"
	app := request.GetString("app", "")
	windowID := uint64(request.GetInt("window_id", 0))
	appID, err := s.items.Resolve(app)
	if err != nil {
		return actionError(action, app, err), nil
	}
	item, _ := s.items.Item(appID)
	found := false
	for _, w := range item.Windows {
		if w.ID == windowID {
			found = true
			break
		}
	}
	if !found {
		return actionError(action, appID, fmt.Errorf("%s has no window %d", appID, windowID)), nil
	}
	return s.sendIntent(action, appID, windowID, launcher.FocusWindow{AppID: appID, WindowID: windowID})
}

func (s *Server) handleOpenItem(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("app", "")
	appID, err := s.items.Resolve(app)
	if err != nil {
		// not a known item: launch it under the given name
		appID = app
	}
	if appID == "" {
		return actionError("open", app, fmt.Errorf("app is required")), nil
	}

	var intent launcher.Intent = launcher.OpenItem{AppID: appID}
	action := "open"
	if item, ok := s.items.Item(appID); ok && item.State.IsOpen() {
		intent = launcher.FocusItem{AppID: appID}
		action = "focus"
	}
	return s.sendIntent(action, appID, 0, intent)
}

func (s *Server) sendIntent(action, appID string, windowID uint64, intent launcher.Intent) (*mcp.CallToolResult, error) {
	if err := s.intents.Send(intent); err != nil {
		return actionError(action, appID, err), nil
	}
	s.logger.Debug("intent sent", "action", action, "app_id", appID)
	return mcp.NewToolResultText(toText(output.ActionResult{
		OK:       true,
		Action:   action,
		AppID:    appID,
		WindowID: windowID,
	})), nil
}
