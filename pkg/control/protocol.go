package control

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	responseOK    = "ok"
	errorPrefix   = "error: "
	fieldSplitter = ">>"
)

type activeResponse struct {
	Route  string `json:"route"`
	ID     string `json:"id,omitempty"`
	Active bool   `json:"active"`
}

type dirtyResponse struct {
	Dirty    bool   `json:"dirty"`
	LayoutID string `json:"layoutID,omitempty"`
	Route    string `json:"route,omitempty"`
}

// Handle executes one request line against the manager and returns the
// response line without the trailing newline.
func (s *Server) Handle(line string) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	resp, err := s.handle(line)
	if err != nil {
		s.log.Debugw("request failed", "request", line, "error", err)
		return errorPrefix + err.Error()
	}
	return resp
}

func (s *Server) handle(line string) (string, error) {
	command, data, _ := strings.Cut(strings.TrimSpace(line), fieldSplitter)

	switch command {
	case "routes":
		return encode(s.routes)

	case "list":
		route, err := s.managedRoute(strings.TrimSpace(data))
		if err != nil {
			return "", err
		}
		return encode(s.manager.ListSelectable(route))

	case "active":
		route, err := s.managedRoute(strings.TrimSpace(data))
		if err != nil {
			return "", err
		}
		id, ok := s.manager.GetActive(route)
		return encode(activeResponse{Route: route, ID: id, Active: ok})

	case "dirty":
		resp := dirtyResponse{Dirty: s.manager.IsDirty()}
		if draft, ok := s.manager.Draft(); ok {
			resp.LayoutID = draft.LayoutID
			resp.Route = draft.RoutePath
		}
		return encode(resp)

	case "select":
		routeArg, id, ok := cutArgs(data)
		if !ok || id == "" {
			return "", fmt.Errorf("select wants ROUTE,ID: %w", ErrInvalidArguments)
		}
		route, err := s.managedRoute(routeArg)
		if err != nil {
			return "", err
		}
		if err := s.manager.SelectLayout(route, id); err != nil {
			return "", err
		}
		return responseOK, nil

	case "edit":
		var arrangement layouts.Arrangement
		if err := json.Unmarshal([]byte(data), &arrangement); err != nil {
			return "", fmt.Errorf("decode arrangement: %w", ErrInvalidArguments)
		}
		if err := s.manager.EditDraft(arrangement); err != nil {
			return "", err
		}
		return responseOK, nil

	case "add":
		var widget layouts.Widget
		if err := json.Unmarshal([]byte(data), &widget); err != nil {
			return "", fmt.Errorf("decode widget: %w", ErrInvalidArguments)
		}
		added, err := s.manager.AddComponent(widget)
		if err != nil {
			return "", err
		}
		return encode(added)

	case "save":
		saved, err := s.manager.SaveLayout()
		if err != nil {
			return "", err
		}
		return encode(saved)

	case "create":
		routeArg, id, _ := cutArgs(data)
		route, err := s.managedRoute(routeArg)
		if err != nil {
			return "", err
		}
		created, err := s.manager.CreateLayout(route, id)
		if err != nil {
			return "", err
		}
		return encode(created)

	case "delete":
		data = strings.TrimSpace(data)
		if data == "" {
			return "", fmt.Errorf("delete wants ID: %w", ErrInvalidArguments)
		}
		if layout, ok := s.manager.Layout(data); ok {
			if _, err := s.managedRoute(layout.RoutePath); err != nil {
				return "", err
			}
		}
		if err := s.manager.DeleteLayout(data); err != nil {
			return "", err
		}
		return responseOK, nil
	}

	return "", fmt.Errorf("%q: %w", command, ErrUnknownCommand)
}

// cutArgs splits ROUTE,ID and trims both halves.
func cutArgs(data string) (route, id string, found bool) {
	route, id, found = strings.Cut(data, ",")
	return strings.TrimSpace(route), strings.TrimSpace(id), found
}

func (s *Server) managedRoute(route string) (string, error) {
	if route == "" {
		return "", fmt.Errorf("missing route: %w", ErrInvalidArguments)
	}
	if _, ok := s.managed[route]; !ok {
		return "", fmt.Errorf("%q: %w", route, ErrRouteNotManaged)
	}
	return route, nil
}

func encode(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	return string(out), nil
}
