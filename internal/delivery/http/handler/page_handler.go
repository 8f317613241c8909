package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go-doctor-finder/internal/delivery/http/middleware"
	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/finder"
	"go-doctor-finder/internal/urlstate"
	"go-doctor-finder/internal/usecase"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html"))

// PageHandler renders the doctor finder page. All of its state comes from
// the request URL; controls are plain links to the URL they would produce.
type PageHandler struct {
	doctorUsecase usecase.DoctorUsecase
	log           *logrus.Logger
	renderWait    time.Duration
}

func NewPageHandler(doctorUsecase usecase.DoctorUsecase, log *logrus.Logger, renderWait time.Duration) *PageHandler {
	return &PageHandler{
		doctorUsecase: doctorUsecase,
		log:           log,
		renderWait:    renderWait,
	}
}

type doctorCard struct {
	entity.Doctor
	SpecialtyLine string
	FullStars     []struct{}
	HalfStar      bool
}

type filterOption struct {
	Label    string
	TestID   string
	Selected bool
	Href     string
}

type pageView struct {
	View          string
	Error         string
	State         entity.FilterState
	Summary       string
	Total         int
	Doctors       []doctorCard
	Consultations []filterOption
	Specialties   []filterOption
	Sorts         []filterOption
	ShowClear     bool
	ClearHref     string
	SearchFrom    string
}

// Home serves GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	adapter := urlstate.NewAdapter(urlstate.NewRequestLocation(r.URL))
	state := adapter.Read()

	ctx := r.Context()
	if h.renderWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.renderWait)
		defer cancel()
	}

	listing, err := h.doctorUsecase.List(ctx, state)
	loading := errors.Is(err, usecase.ErrDoctorsLoading)
	if loading {
		err = nil
	}

	view := pageView{
		State:      state,
		Summary:    finder.Summary(state),
		ShowClear:  !state.IsEmpty(),
		ClearHref:  adapter.ClearHref(),
		SearchFrom: r.URL.RawQuery,
		Consultations: []filterOption{
			radioOption(adapter, "Video Consult", "filter-video-consult", urlstate.KeyConsultation, entity.ConsultationVideo, state.Consultation),
			radioOption(adapter, "In Clinic", "filter-in-clinic", urlstate.KeyConsultation, entity.ConsultationClinic, state.Consultation),
		},
		Sorts: []filterOption{
			radioOption(adapter, "Fees (Low to High)", "sort-fees", urlstate.KeySort, entity.SortByFees, state.Sort),
			radioOption(adapter, "Experience (High to Low)", "sort-experience", urlstate.KeySort, entity.SortByExperience, state.Sort),
		},
	}

	visible := 0
	if listing != nil {
		visible = len(listing.Doctors)
		view.Total = visible
		view.Doctors = doctorCards(listing.Doctors)
		for _, name := range listing.Specialties {
			selected := state.Specialties.Contains(name)
			view.Specialties = append(view.Specialties, filterOption{
				Label:    name,
				TestID:   "filter-specialty-" + strings.Join(strings.Fields(name), "-"),
				Selected: selected,
				Href:     adapter.Href(adapter.SpecialtyChange(name, !selected)),
			})
		}
	}

	if loading {
		h.requestLog(r).Info("Rendering loading view, doctor list not ready")
	}

	selected := finder.SelectView(err, loading, visible)
	view.View = selected.String()
	status := http.StatusOK
	if selected == finder.ViewError {
		view.Error = err.Error()
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		h.requestLog(r).Warnf("Failed to render page: %+v", err)
	}
}

// Search serves POST /search: it applies the typed search term on top of
// the query string the form was rendered with and redirects there.
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.requestLog(r).Warnf("Failed to parse search form: %+v", err)
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	loc := urlstate.NewLocation("/", r.PostForm.Get("from"))
	urlstate.NewAdapter(loc).Update(urlstate.Scalar(urlstate.KeySearch, strings.TrimSpace(r.PostForm.Get("q"))))

	target, _ := loc.Target()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *PageHandler) requestLog(r *http.Request) *logrus.Entry {
	requestID, _ := middleware.GetRequestIDFromContext(r.Context())
	return h.log.WithField("request_id", requestID)
}

func radioOption(adapter *urlstate.Adapter, label, testID, key, value, current string) filterOption {
	return filterOption{
		Label:    label,
		TestID:   testID,
		Selected: current == value,
		Href:     adapter.Href(urlstate.Scalar(key, value)),
	}
}

func doctorCards(doctors []entity.Doctor) []doctorCard {
	cards := make([]doctorCard, len(doctors))
	for i, d := range doctors {
		full, half := finder.Stars(d.Rating)
		full = min(full, 5)
		cards[i] = doctorCard{
			Doctor:        d,
			SpecialtyLine: strings.Join(d.Specialties, ", "),
			FullStars:     make([]struct{}, full),
			HalfStar:      half,
		}
	}
	return cards
}
