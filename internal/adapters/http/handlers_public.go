package web

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/page"
	"gymdesk/internal/domain/testimonial"
	"gymdesk/internal/domain/tier"
)

// mdRenderer converts page bodies and trainer bios to HTML.
// Raw HTML in the Markdown is escaped because WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// handleHealthz handles GET /healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"time":        gymNow(),
		"subscribers": boardTicker.Subscribers(),
	})
}

func boardDeps() projections.GetClassBoardDeps {
	return projections.GetClassBoardDeps{
		ScheduleStore: stores.ScheduleStore,
		ClosureStore:  stores.ClosureStore,
		TrainerStore:  stores.TrainerStore,
	}
}

// handleClassBoard handles GET /api/classes/board.
// An optional ?at=RFC3339 evaluates the board at another instant in the gym's location.
func handleClassBoard(w http.ResponseWriter, r *http.Request) {
	at := gymNow()
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "at must be an RFC3339 timestamp")
			return
		}
		at = t.In(at.Location())
	}
	board, err := projections.QueryGetClassBoard(r.Context(), at, boardDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// handleClassBoardStream handles GET /api/classes/board/stream.
// It sends the current board immediately, then one "board" event per ticker instant
// until the client disconnects or the ticker stops.
func handleClassBoardStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := http.NewResponseController(w)

	ticks, unsubscribe := boardTicker.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// The server's WriteTimeout would otherwise cut long-lived streams.
	_ = rc.SetWriteDeadline(time.Time{})
	w.WriteHeader(http.StatusOK)

	if err := writeBoardEvent(ctx, w, rc, gymNow()); err != nil {
		slog.Debug("board_stream_closed", "error", err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case at, ok := <-ticks:
			if !ok {
				return
			}
			if err := writeBoardEvent(ctx, w, rc, at); err != nil {
				slog.Debug("board_stream_closed", "error", err)
				return
			}
		}
	}
}

func writeBoardEvent(ctx context.Context, w http.ResponseWriter, rc *http.ResponseController, at time.Time) error {
	board, err := projections.QueryGetClassBoard(ctx, at, boardDeps())
	if err != nil {
		slog.Error("internal_error", "path", "board_stream", "error", err.Error())
		return err
	}
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: board\ndata: %s\n\n", data); err != nil {
		return err
	}
	return rc.Flush()
}

// handleWeeklyClasses handles GET /api/classes
func handleWeeklyClasses(w http.ResponseWriter, r *http.Request) {
	days, err := projections.QueryGetWeeklySchedule(r.Context(), projections.GetWeeklyScheduleDeps{
		ScheduleStore: stores.ScheduleStore,
		TrainerStore:  stores.TrainerStore,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func trainerProfileDeps() projections.GetTrainerProfileDeps {
	return projections.GetTrainerProfileDeps{
		TrainerStore:  stores.TrainerStore,
		AwardStore:    stores.TrainerStore,
		ScheduleStore: stores.ScheduleStore,
	}
}

// handleListTrainers handles GET /api/trainers
func handleListTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := projections.QueryListTrainers(r.Context(), trainerProfileDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trainers)
}

type trainerProfileResponse struct {
	projections.TrainerProfile
	BioHTML string `json:"bio_html"`
}

// handleGetTrainer handles GET /api/trainers/{id}
func handleGetTrainer(w http.ResponseWriter, r *http.Request) {
	profile, err := projections.QueryGetTrainerProfile(r.Context(), r.PathValue("id"), trainerProfileDeps())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	bio, err := renderMarkdown(profile.Bio)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trainerProfileResponse{TrainerProfile: profile, BioHTML: bio})
}

type pageResponse struct {
	page.Page
	HTML string `json:"html"`
}

// handleGetPage handles GET /api/pages/{slug}.
// A page nobody has edited yet is served from its placeholder.
func handleGetPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !page.IsValidSlug(slug) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	p, err := stores.PageStore.GetBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		p, err = page.Placeholder(slug), nil
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	html, err := renderMarkdown(p.Body)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Page: p, HTML: html})
}

// handleListTestimonials handles GET /api/testimonials. Only approved ones are public.
func handleListTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := stores.TestimonialStore.ListByStatus(r.Context(), testimonial.StatusApproved)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if list == nil {
		list = []testimonial.Testimonial{}
	}
	writeJSON(w, http.StatusOK, list)
}

type tierResponse struct {
	tier.Tier
	Price string `json:"price"`
}

// handleListTiers handles GET /api/tiers
func handleListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := stores.TierStore.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	tier.SortByPrice(tiers)
	out := make([]tierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierResponse{Tier: t, Price: t.PriceLabel()})
	}
	writeJSON(w, http.StatusOK, out)
}
