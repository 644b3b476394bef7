package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/meslamib3/storiesdb/internal/errors"
	"github.com/meslamib3/storiesdb/internal/method"
)

const (
	headingList   = "All Methods"
	headingAdd    = "Add a New Method"
	headingUpdate = "Update an Existing Method"
	headingDelete = "Delete a Method"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	methods, err := s.store.List(r.Context())
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	p := newPage(screenList, headingList)
	p.Headers = append([]string{"ID"}, method.Labels()...)
	p.Rows = make([][]string, len(methods))
	for i, m := range methods {
		row := make([]string, 0, len(method.Fields)+1)
		row = append(row, strconv.FormatInt(m.ID, 10))
		for _, v := range m.Pointers() {
			row = append(row, *v)
		}
		p.Rows[i] = row
	}

	s.views.render(w, http.StatusOK, screenList, p)
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.renderAdd(w, newPage(screenAdd, headingAdd))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	m, err := methodFromForm(w, r)
	if err != nil {
		s.badRequest(w, r, screenAdd, err)
		return
	}

	id, err := s.store.Insert(r.Context(), m)
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	slog.Info("Method added", "id", id, "method_name", m.MethodName)
	s.renderAdd(w, newPage(screenAdd, headingAdd).success("Method added successfully!"))
}

func (s *Server) renderAdd(w http.ResponseWriter, p *page) {
	p.Fields = formFields(method.Placeholders())
	s.views.render(w, http.StatusOK, screenAdd, p)
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	selected, err := optionalID(r.URL.Query().Get("id"))
	if err != nil {
		s.badRequest(w, r, screenUpdate, err)
		return
	}
	s.renderUpdate(w, r, newPage(screenUpdate, headingUpdate), selected)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	m, err := methodFromForm(w, r)
	if err != nil {
		s.badRequest(w, r, screenUpdate, err)
		return
	}
	id, err := requiredID(r.PostForm.Get("id"))
	if err != nil {
		s.badRequest(w, r, screenUpdate, err)
		return
	}

	changed, err := s.store.Update(r.Context(), id, m)
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	p := newPage(screenUpdate, headingUpdate)
	if !changed {
		p.warning(fmt.Sprintf("Method %d no longer exists; nothing was updated.", id))
		s.renderUpdate(w, r, p, 0)
		return
	}

	slog.Info("Method updated", "id", id)
	s.renderUpdate(w, r, p.success("Method updated successfully!"), id)
}

// renderUpdate shows the id picker and a form pre-filled with the selected record.
// selected == 0 picks the first record.
func (s *Server) renderUpdate(w http.ResponseWriter, r *http.Request, p *page, selected int64) {
	pk, ok := s.loadPicker(w, r, "/methods/update", "Select Method ID to Update", selected)
	if !ok {
		return
	}
	if pk == nil {
		s.views.render(w, http.StatusOK, screenUpdate, p)
		return
	}

	m, err := s.store.Get(r.Context(), pk.Selected)
	if errors.IsNotFoundError(err) {
		s.notFound(w, r, screenUpdate, pk.Selected)
		return
	}
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	p.Picker = pk
	p.Fields = formFields(m)
	s.views.render(w, http.StatusOK, screenUpdate, p)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	selected, err := optionalID(r.URL.Query().Get("id"))
	if err != nil {
		s.badRequest(w, r, screenDelete, err)
		return
	}
	s.renderDelete(w, r, newPage(screenDelete, headingDelete), selected)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, screenDelete, fmt.Errorf("invalid form: %w", err))
		return
	}
	id, err := requiredID(r.PostForm.Get("id"))
	if err != nil {
		s.badRequest(w, r, screenDelete, err)
		return
	}

	changed, err := s.store.Delete(r.Context(), id)
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	p := newPage(screenDelete, headingDelete)
	if changed {
		slog.Info("Method deleted", "id", id)
		p.success("Method deleted successfully!")
	} else {
		p.warning(fmt.Sprintf("Method %d no longer exists; nothing was deleted.", id))
	}
	s.renderDelete(w, r, p, 0)
}

// renderDelete shows the id picker and the confirmation button.
func (s *Server) renderDelete(w http.ResponseWriter, r *http.Request, p *page, selected int64) {
	pk, ok := s.loadPicker(w, r, "/methods/delete", "Select Method ID to Delete", selected)
	if !ok {
		return
	}
	if pk == nil {
		s.views.render(w, http.StatusOK, screenDelete, p)
		return
	}

	m, err := s.store.Get(r.Context(), pk.Selected)
	if errors.IsNotFoundError(err) {
		s.notFound(w, r, screenDelete, pk.Selected)
		return
	}
	if err != nil {
		s.storageError(w, r, err)
		return
	}

	p.Picker = pk
	p.Summary = summary(m)
	s.views.render(w, http.StatusOK, screenDelete, p)
}

// loadPicker returns nil when there are no records. ok is false when a
// response has already been written.
func (s *Server) loadPicker(w http.ResponseWriter, r *http.Request, path, label string, selected int64) (*picker, bool) {
	ids, err := s.store.IDs(r.Context())
	if err != nil {
		s.storageError(w, r, err)
		return nil, false
	}
	if len(ids) == 0 {
		return nil, true
	}
	if selected == 0 {
		selected = ids[0]
	}
	return &picker{Path: path, Label: label, IDs: ids, Selected: selected}, true
}

func (s *Server) storageError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Storage operation failed", "path", r.URL.Path, "error", err)
	p := newPage(screenError, "Something went wrong")
	p.Notice = &notice{Kind: "error", Text: "The method database is unavailable. Nothing was changed by this request."}
	s.views.render(w, http.StatusInternalServerError, screenError, p)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, screen string, err error) {
	slog.Warn("Rejected request", "path", r.URL.Path, "error", err)
	p := newPage(screen, "Invalid request")
	p.Notice = &notice{Kind: "error", Text: err.Error()}
	s.views.render(w, http.StatusBadRequest, screenError, p)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, screen string, id int64) {
	slog.Warn("Method not found", "path", r.URL.Path, "id", id)
	p := newPage(screen, "Method not found")
	p.Notice = &notice{Kind: "error", Text: fmt.Sprintf("Method %d does not exist.", id)}
	s.views.render(w, http.StatusNotFound, screenError, p)
}

// methodFromForm reads the 25 fields from a submitted form. Missing fields are empty.
func methodFromForm(w http.ResponseWriter, r *http.Request) (method.Method, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return method.Method{}, fmt.Errorf("invalid form: %w", err)
	}

	var m method.Method
	for _, f := range method.Fields {
		m.Set(f.Column, r.PostForm.Get(f.Column))
	}
	return m, nil
}

func optionalID(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return requiredID(raw)
}

func requiredID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid method id %q", raw)
	}
	return id, nil
}

func summary(m method.Method) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{m.MethodName, m.Partner, m.UniqueID} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}
