package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/console/summary"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/httpx"
)

type DashboardHandler struct {
	View  *summary.View
	pages *renderer
}

type dashboardData struct {
	State summary.State
	Cards []summary.Card
	Err   *summary.FetchError
}

// HandlePage loads fresh data and renders the dashboard. A failed fetch
// still renders, with the previous numbers and a retry button.
func (h *DashboardHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	st := h.View.Load(r.Context())
	h.pages.render(w, r, http.StatusOK, "dashboard", page{
		Title: "Dashboard",
		Data: dashboardData{
			State: st,
			Cards: summary.CardsFor(st.Stats),
			Err:   st.Err,
		},
	})
}

func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.View.Load(r.Context())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// redirectNavigator turns card activation into an HTTP redirect.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n redirectNavigator) NavigateTo(path string) {
	http.Redirect(n.w, n.r, path, http.StatusFound)
}

func (h *DashboardHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	key := summary.CardKey(r.PathValue("key"))
	if err := h.View.Activate(key, redirectNavigator{w: w, r: r}); err != nil {
		if errors.Is(err, summary.ErrUnknownCard) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SnapshotResponse is the JSON form of the dashboard.
type SnapshotResponse struct {
	Loading   bool                `json:"loading"`
	Users     []directorysdk.User `json:"users"`
	Roles     []directorysdk.Role `json:"roles"`
	Stats     summary.Stats       `json:"stats"`
	Cards     []summary.Card      `json:"cards"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
	Error     string              `json:"error,omitempty"`
}

func (h *DashboardHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	st := h.View.Load(r.Context())

	resp := SnapshotResponse{
		Loading: st.Loading,
		Users:   st.Users,
		Roles:   st.Roles,
		Stats:   st.Stats,
		Cards:   summary.CardsFor(st.Stats),
	}
	if !st.UpdatedAt.IsZero() {
		resp.UpdatedAt = &st.UpdatedAt
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
