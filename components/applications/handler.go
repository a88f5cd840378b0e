package applications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/openapi"
	"github.com/goliatone/go-careers/pkg/render"
	"github.com/goliatone/go-careers/pkg/renderers/vanilla"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/submit"
	"github.com/goliatone/go-careers/pkg/validation"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// APIResponse is the JSON body of the application endpoint.
type APIResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RoleSummary is one entry of GET /api/roles.
type RoleSummary struct {
	catalog.Listing
	FormConfigured bool   `json:"formConfigured"`
	URL            string `json:"url"`
	ApplyURL       string `json:"applyUrl,omitempty"`
}

type rolesResponse struct {
	Data []RoleSummary `json:"data"`
}

type handler struct {
	opts      Options
	catalog   CatalogSource
	submitter application.Submitter
	renderer  render.Renderer
	initErr   error
	mux       *http.ServeMux
	flights   singleflight.Group
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// Missing collaborators fall back to the embedded catalog, the default
// endpoint submitter, and the vanilla renderer.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{
		opts:      opts,
		catalog:   opts.Catalog,
		submitter: opts.Submitter,
		renderer:  opts.Renderer,
	}
	if h.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			h.initErr = fmt.Errorf("applications: load default catalog: %w", err)
		}
		h.catalog = StaticCatalog(c)
	}
	if h.submitter == nil {
		h.submitter = submit.New(submit.WithLogger(opts.Logger))
	}
	if h.renderer == nil {
		renderer, err := resolveRenderer(opts.Renderers, opts.RendererName)
		if err != nil {
			h.initErr = errors.Join(h.initErr, fmt.Errorf("applications: resolve renderer: %w", err))
		} else {
			h.renderer = renderer
		}
	}

	h.mux = http.NewServeMux()
	for _, route := range routeTable {
		h.mux.HandleFunc(route.Method+" "+opts.BasePath+route.Path, h.handlerFor(route.Path))
	}
	return h
}

func resolveRenderer(registry *render.Registry, name string) (render.Renderer, error) {
	if registry == nil {
		registry = &render.Registry{}
		if err := vanilla.Register(registry); err != nil {
			return nil, err
		}
	}
	return registry.Get(name)
}

func (h *handler) handlerFor(path string) http.HandlerFunc {
	switch path {
	case pathListings:
		return h.listings
	case pathRole:
		return h.role
	case pathApply:
		return h.apply
	case pathAPIRoles:
		return h.apiRoles
	case pathAPIForm:
		return h.apiForm
	case pathAPIApply:
		return h.apiApply
	case pathAPIOpenAPI:
		return h.apiOpenAPI
	default:
		return http.NotFound
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}
	if h.initErr != nil {
		h.opts.Logger.Error("applications handler unavailable", zap.Error(h.initErr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *handler) current(w http.ResponseWriter) (*catalog.Catalog, bool) {
	c := h.catalog.Current()
	if c == nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return nil, false
	}
	return c, true
}

func (h *handler) listings(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	h.renderPage(w, r, http.StatusOK, render.ListingsPage(h.opts.BasePath, c.Listings()), render.RenderOptions{})
}

func (h *handler) role(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	jobID := r.PathValue("jobId")
	listing, ok := c.Listing(jobID)
	if !ok {
		h.renderPage(w, r, http.StatusNotFound, render.NotFoundPage(h.opts.BasePath), render.RenderOptions{})
		return
	}

	page := render.RolePage(h.opts.BasePath, listing, nil)
	opts := render.RenderOptions{}
	if role, ok := c.Form(jobID); ok {
		page = render.RolePage(h.opts.BasePath, listing, &role)
		opts.Hidden = render.MergeHiddenFields(nil, render.SubmissionToken(""))
	}
	h.renderPage(w, r, http.StatusOK, page, opts)
}

func (h *handler) apply(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	jobID := r.PathValue("jobId")
	listing, ok := c.Listing(jobID)
	if !ok {
		h.renderPage(w, r, http.StatusNotFound, render.NotFoundPage(h.opts.BasePath), render.RenderOptions{})
		return
	}
	role, ok := c.Form(jobID)
	if !ok {
		h.renderPage(w, r, http.StatusNotFound, render.RolePage(h.opts.BasePath, listing, nil), render.RenderOptions{})
		return
	}
	page := render.RolePage(h.opts.BasePath, listing, &role)

	sub, err := h.submit(w, r, c, role)
	if err != nil {
		code := statusCode(err)
		if code != http.StatusRequestEntityTooLarge {
			http.Error(w, http.StatusText(code), code)
			return
		}
		h.renderPage(w, r, code, page, render.RenderOptions{
			Errors: map[string]string{fileFieldName(role): validation.MsgFileTooLarge},
			Status: application.Status{Kind: application.StatusError, Message: validation.MsgFileTooLarge},
			Hidden: render.MergeHiddenFields(nil, render.SubmissionToken(sub.token)),
		})
		return
	}

	opts := render.RenderOptions{
		Errors: sub.outcome.Errors,
		Status: sub.outcome.Status,
		Dialog: sub.outcome.Dialog,
	}
	status := outcomeStatus(sub.outcome)
	if sub.outcome.Submitted() {
		opts.Hidden = render.MergeHiddenFields(nil, render.SubmissionToken(""))
	} else {
		opts.Values = sub.state.Snapshot()
		opts.Hidden = render.MergeHiddenFields(nil, render.SubmissionToken(sub.token))
	}
	h.renderPage(w, r, status, page, opts)
}

func (h *handler) apiRoles(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	data := make([]RoleSummary, 0, c.Len())
	for _, listing := range c.Listings() {
		summary := RoleSummary{
			Listing: listing,
			URL:     h.opts.BasePath + "/careers/" + listing.ID,
		}
		if c.Registry().Has(listing.ID) {
			summary.FormConfigured = true
			summary.ApplyURL = openapi.ApplicationPath(h.opts.BasePath, listing.ID)
		}
		data = append(data, summary)
	}
	writeJSON(w, r, http.StatusOK, rolesResponse{Data: data})
}

func (h *handler) apiForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	role, ok := c.Form(r.PathValue("roleId"))
	if !ok {
		writeJSON(w, r, http.StatusNotFound, APIResponse{Message: application.MsgNotConfigured})
		return
	}
	writeJSON(w, r, http.StatusOK, role)
}

func (h *handler) apiApply(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	role, ok := c.Form(r.PathValue("roleId"))
	if !ok {
		writeJSON(w, r, http.StatusNotFound, APIResponse{Message: application.MsgNotConfigured})
		return
	}

	sub, err := h.submit(w, r, c, role)
	if err != nil {
		code := statusCode(err)
		resp := APIResponse{Message: http.StatusText(code)}
		if code == http.StatusRequestEntityTooLarge {
			resp.Message = validation.MsgFileTooLarge
			resp.Errors = map[string]string{fileFieldName(role): validation.MsgFileTooLarge}
		}
		writeJSON(w, r, code, resp)
		return
	}

	resp := APIResponse{
		Success: sub.outcome.Submitted(),
		Message: sub.outcome.Status.Message,
	}
	if sub.outcome.Invalid() {
		resp.Errors = sub.outcome.Errors
	}
	writeJSON(w, r, outcomeStatus(sub.outcome), resp)
}

func (h *handler) apiOpenAPI(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	doc, err := openapi.Describe(c.Registry(), openapi.Options{
		Title:    h.opts.APITitle,
		BasePath: h.opts.BasePath,
	})
	if err != nil {
		h.opts.Logger.Error("describe api", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body, err := openapi.Encode(doc, openapi.FormatJSON)
	if err != nil {
		h.opts.Logger.Error("encode api description", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

type submission struct {
	state   form.State
	token   string
	outcome application.Outcome
}

// submit parses the posted form and runs it through an application session.
// Concurrent posts that carry the same submission token share one session,
// so the endpoint receives a single request.
func (h *handler) submit(w http.ResponseWriter, r *http.Request, c *catalog.Catalog, role schema.RoleForm) (submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	state, err := form.FromRequest(role, r)
	sub := submission{state: state}
	if err != nil {
		if isTooLarge(err) {
			return sub, StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
		}
		return sub, StatusError{Code: http.StatusBadRequest, Err: err}
	}
	token := strings.TrimSpace(r.FormValue(render.SubmissionTokenField))
	sub.token = token

	run := func() (any, error) {
		session, err := application.NewSession(
			form.NewEngine(c.Registry()),
			role.RoleID,
			h.submitter,
			application.WithState(state),
			application.WithLogger(h.opts.Logger),
		)
		if err != nil {
			return application.Outcome{}, err
		}
		// Shared flights outlive the request that started them.
		return session.Submit(context.WithoutCancel(r.Context()))
	}

	var (
		value  any
		shared bool
	)
	if token == "" {
		value, err = run()
	} else {
		value, err, shared = h.flights.Do(role.RoleID+"/"+token, run)
	}
	if err != nil {
		return sub, StatusError{Code: http.StatusInternalServerError, Err: err}
	}
	sub.outcome = value.(application.Outcome)

	h.opts.Logger.Info("application handled",
		zap.String("role_id", role.RoleID),
		zap.Bool("success", sub.outcome.Submitted()),
		zap.Int("invalid_fields", len(sub.outcome.Errors)),
		zap.Bool("shared", shared),
	)
	return sub, nil
}

func (h *handler) renderPage(w http.ResponseWriter, r *http.Request, status int, page render.Page, opts render.RenderOptions) {
	if opts.Theme == nil {
		opts.Theme = h.opts.Theme
	}
	body, err := h.renderer.Render(r.Context(), page, opts)
	if err != nil {
		h.opts.Logger.Error("render page", zap.String("kind", string(page.Kind)), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func outcomeStatus(outcome application.Outcome) int {
	switch {
	case outcome.Submitted():
		return http.StatusOK
	case outcome.Invalid():
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func fileFieldName(role schema.RoleForm) string {
	if field, ok := role.FileField(); ok {
		return field.Name
	}
	return ""
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func statusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(append(body, '\n'))
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
