package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/devstefancho/claude-hook-logger/internal/query"
)

const maxToolBody = 1 << 20

func (s *Server) handleAPIFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.queries.Files(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	file, err := fileParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	top, err := intParam(r, "top")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if top > 0 {
		sum, err := s.queries.Dashboard(r.Context(), file, top)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
		return
	}

	sum, err := s.queries.Summary(r.Context(), file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleAPISessions(w http.ResponseWriter, r *http.Request) {
	file, err := fileParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	list, err := s.queries.Sessions(r.Context(), file, query.SessionFilter{
		Status: q.Get("status"),
		Since:  q.Get("since"),
		Limit:  limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAPISessionDetail(w http.ResponseWriter, r *http.Request) {
	file, err := fileParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	maxEvents, err := intParam(r, "max_events")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	detail, err := s.queries.SessionDetail(r.Context(), file, r.PathValue("id"), maxEvents)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAPIRecent(w http.ResponseWriter, r *http.Request) {
	file, err := fileParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	minutes, err := intParam(r, "minutes")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	recent, err := s.queries.Recent(r.Context(), file, query.RecentQuery{
		Since:   r.URL.Query().Get("since"),
		Minutes: minutes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recent)
}

func (s *Server) handleAPIUsage(w http.ResponseWriter, r *http.Request) {
	file, err := fileParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	top, err := intParam(r, "top")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	usage, err := s.queries.Usage(r.Context(), file, query.UsageQuery{
		Type:    q.Get("type"),
		Session: q.Get("session"),
		Since:   q.Get("since"),
		Until:   q.Get("until"),
		Top:     top,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	file, err := fileParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	text := q.Get("q")
	if text == "" {
		text = q.Get("text")
	}
	res, err := s.queries.Search(r.Context(), file, query.SearchCriteria{
		Event:   q.Get("event"),
		Tool:    q.Get("tool"),
		Text:    text,
		Session: q.Get("session"),
		Limit:   limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAPIListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.tools.List()})
}

// handleAPICallTool runs a registry tool with the JSON object body as its
// arguments. A file query parameter fills in a missing "file" argument.
func (s *Server) handleAPICallTool(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolBody))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil || args == nil {
			s.writeError(w, r, fmt.Errorf("%w: body must be a JSON object", query.ErrInvalidArgument))
			return
		}
	}
	if _, ok := args["file"]; !ok {
		file, err := fileParam(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if file != "" {
			args["file"] = file
		}
	}

	result, err := s.tools.Call(r.Context(), r.PathValue("name"), args)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tool": r.PathValue("name"), "result": result})
}
