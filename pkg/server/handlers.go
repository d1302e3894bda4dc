package server

import (
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ceilplan/pkg/buildinfo"
	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/errors"
	designio "github.com/matzehuels/ceilplan/pkg/io"
	"github.com/matzehuels/ceilplan/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// decodeDesign reads a design from the request body. The Content-Type
// picks the format; anything but TOML or YAML is read as JSON.
func (s *Server) decodeDesign(w http.ResponseWriter, r *http.Request) (ceiling.Config, bool) {
	format := designio.FormatJSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch mt {
		case "application/toml":
			format = designio.FormatTOML
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = designio.FormatYAML
		}
	}

	cfg, err := designio.ReadDesign(r.Body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
			return cfg, false
		}
		s.writeAppError(w, r, err)
		return cfg, false
	}
	return cfg, true
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeDesign(w, r)
	if !ok {
		return
	}
	l, err := s.runner.Layout(r.Context(), cfg)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	data, err := pipeline.MarshalLayout(l)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	cfg, ok := s.decodeDesign(w, r)
	if !ok {
		return
	}
	opts.Design = cfg

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Layout-Hash", result.LayoutHash)
	w.Header().Set("X-Fixture-Count", strconv.Itoa(result.Stats.Fixtures))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// renderOptions reads render settings from the query string, falling
// back to the configured render defaults.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		View:   q.Get("view"),
		Scale:  s.render.Scale,
		Labels: s.render.Labels,
		Coves:  s.render.Coves,
		Logger: s.logger,
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}
	if opts.View != "" {
		if err := pipeline.ValidateView(opts.View); err != nil {
			return opts, err
		}
	}

	floats := map[string]*float64{"scale": &opts.Scale, "png_scale": &opts.PNGScale}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a positive number", name)
			}
			*dst = f
		}
	}

	bools := map[string]*bool{
		"labels":   &opts.Labels,
		"coves":    &opts.Coves,
		"detailed": &opts.Detailed,
		"wiring":   &opts.Wiring,
		"refresh":  &opts.Refresh,
	}
	for name, dst := range bools {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false", name)
			}
			*dst = b
		}
	}
	return opts, nil
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	typ, err := ceiling.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeNotFound(w, err.Error())
		return
	}

	room := ceiling.DefaultRoom()
	q := r.URL.Query()
	dims := map[string]*float64{"width": &room.Width, "length": &room.Length, "height": &room.Height}
	for name, dst := range dims {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeBadRequest(w, name+" must be a number")
				return
			}
			*dst = f
		}
	}
	if err := room.Validate(); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ceiling.NewConfig(room, typ))
}

type publishResponse struct {
	DesignID string `json:"designId"`
	Fixtures int    `json:"fixtures"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "publishing is not configured")
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateTopicSegment(id); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	cfg, ok := s.decodeDesign(w, r)
	if !ok {
		return
	}
	l, err := s.runner.Layout(r.Context(), cfg)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	if err := s.publisher.PublishLayout(r.Context(), id, l); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, publishResponse{DesignID: id, Fixtures: len(l.Positions)})
}
